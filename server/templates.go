package server

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Housing Price Dashboard</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',Roboto,sans-serif;font-size:14px;line-height:1.5}
body.theme-dark{background:#111111;color:#f2f5fa}
body.theme-light{background:#f4f6f9;color:#2a3f5f}
a{color:#58a6ff;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#212529;padding:10px 16px;display:flex;gap:16px;align-items:center;flex-wrap:wrap}
nav .brand{color:#fff;font-weight:700;font-size:17px;margin-right:8px}
nav a{color:#adb5bd;padding:4px 8px;border-radius:4px}
nav a.active{color:#fff;background:#343a40}
nav a:hover{color:#fff;text-decoration:none}
nav .switch{margin-left:auto;color:#fff;display:flex;gap:6px;align-items:center;cursor:pointer}
main{padding:24px}
.filters{display:flex;gap:16px;flex-wrap:wrap;margin-bottom:20px}
.filter{flex:1;min-width:200px;display:flex;flex-direction:column;gap:4px}
.filter select{padding:6px 8px;border-radius:4px;border:1px solid #6c757d;font-size:14px}
.theme-dark .filter select{background:#1e1e1e;color:#f2f5fa}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:20px}
.card{border-radius:10px;padding:12px 16px;min-width:140px}
.card .val{font-size:22px;font-weight:700}
.card .lbl{font-size:11px;opacity:.7;margin-top:2px}
.tag{display:inline-block;padding:1px 6px;border-radius:4px;font-size:11px;border:1px solid #6c757d;margin:2px 2px 0 0}
.section{border-radius:10px;margin-bottom:20px;overflow:hidden}
.section-hdr{padding:10px 16px;font-weight:600;border-bottom:1px solid rgba(128,128,128,.3)}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(480px,1fr));gap:12px;padding:12px}
.cell h5{text-align:center;font-size:15px;margin:8px 0}
.chart{min-height:450px}
.columns{display:grid;grid-template-columns:repeat(auto-fit,minmax(280px,1fr));gap:24px;padding:16px}
.column h5{font-size:15px;margin:12px 0 6px}
.column ul{padding-left:18px}
.table-title{text-align:center;padding:8px;margin-bottom:8px}
.table-wrap{overflow-x:auto}
table{width:100%;border-collapse:collapse;font-size:13px}
th{font-weight:700;text-align:left;padding:6px 10px}
td{padding:5px 10px;border-bottom:1px solid rgba(128,128,128,.2)}
.pager{display:flex;gap:16px;justify-content:center;padding:12px}
.error{padding:24px;color:#f87171}
</style>
</head>
<body class="theme-{{.Session.Theme}}">
<nav>
  <span class="brand">Housing Price Dashboard</span>
  {{- range .Nav}}
  <a href="{{.Path}}"{{if eq .Path $.Session.Path}} class="active"{{end}}>{{.Label}}</a>
  {{- end}}
  <label class="switch"><input type="checkbox" id="theme-switch"{{if eq .Session.Theme "dark"}} checked{{end}}> Dark Mode</label>
</nav>
<main id="page-content">{{.Content}}</main>
<script id="initial-state" type="application/json">{{.Initial}}</script>
<script>{{template "client"}}</script>
</body>
</html>
{{end}}
`

// ── Browser client ────────────────────────────────────────────────────────────

const tmplClient = `
{{define "client"}}
(function () {
  const initial = JSON.parse(document.getElementById("initial-state").textContent);
  let session = initial.session;
  session.filters = session.filters || {};

  function apply(outputs) {
    const content = outputs["page-content.children"];
    if (content !== undefined) {
      document.getElementById("page-content").innerHTML = content;
      bind();
    }
    for (const [id, value] of Object.entries(outputs)) {
      const dot = id.lastIndexOf(".");
      const el = document.getElementById(id.slice(0, dot));
      const prop = id.slice(dot + 1);
      if (!el || id === "page-content.children") continue;
      if (prop === "figure") {
        Plotly.react(el, value.data, value.layout, {responsive: true});
      } else if (prop === "children") {
        el.innerHTML = value;
      }
    }
  }

  async function update(changed) {
    const resp = await fetch("/api/update", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({session: session, changed: changed}),
    });
    if (!resp.ok) {
      console.error("update failed", resp.status, await resp.text());
      return;
    }
    const result = await resp.json();
    apply(result.outputs || {});
  }

  function bind() {
    document.querySelectorAll(".filters").forEach(function (bar) {
      const group = bar.dataset.group;
      const selects = bar.querySelectorAll("select[data-component]");
      selects.forEach(function (sel) {
        sel.addEventListener("change", function () {
          session.filters[group] = {
            zoning: bar.querySelector("select[id$='-zoning-filter']").value,
            bldgType: bar.querySelector("select[id$='-bldgtype-filter']").value,
          };
          update([sel.dataset.component]);
        });
      });
    });
  }

  document.getElementById("theme-switch").addEventListener("change", function (e) {
    session.theme = e.target.checked ? "dark" : "light";
    document.cookie = "theme=" + session.theme + "; path=/; max-age=31536000; SameSite=Lax";
    document.body.className = "theme-" + session.theme;
    update(["theme-switch.value"]);
  });

  bind();
  apply(initial.outputs || {});
})();
{{end}}
`

// ── Error page ────────────────────────────────────────────────────────────────

const tmplError = `
{{define "error"}}<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><title>Housing Price Dashboard</title></head>
<body><div class="error">{{.}}</div></body></html>
{{end}}
`
