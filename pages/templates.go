package pages

import (
	"fmt"
	"html/template"
	"io"

	"housing-dashboard/models"
	"housing-dashboard/services"
)

var funcMap = template.FuncMap{
	"money": services.Money,
	"counts": func(m map[string]int) []services.Count {
		return services.SortedCounts(m)
	},
	"add": func(a, b int) int { return a + b },
}

// ── Page content ──────────────────────────────────────────────────────────────

const tmplContent = `
{{define "filters"}}
<div class="filters" data-group="{{.Group}}">
  {{template "dropdown" .Zoning}}
  {{template "dropdown" .BldgType}}
</div>
{{end}}

{{define "dropdown"}}
<div class="filter">
  <label for="{{.ID}}">{{.Label}}</label>
  <select id="{{.ID}}" data-component="{{.ID}}.value">
    <option value="">{{.Placeholder}}</option>
    {{- range .Options}}
    <option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
</div>
{{end}}

{{define "content"}}
{{with .Filters}}{{template "filters" .}}{{end}}
{{if .Summary}}<div id="summary-cards" class="cards"></div>{{end}}
{{range .Sections}}
<div class="section" style="background:{{$.Style.CardColor}}">
  {{if .Header}}<div class="section-hdr" style="color:{{$.TextColor}}">{{.Header}}</div>{{end}}
  <div class="grid">
  {{- range .Charts}}
    <div class="cell">
      {{if .Heading}}<h5 style="color:{{$.TextColor}}">{{.Heading}}</h5>{{end}}
      <div class="chart" id="{{.ID}}"></div>
    </div>
  {{- end}}
  </div>
</div>
{{end}}
{{with .Content}}
<div class="section" style="background:{{$.Style.CardColor}}">
  <div class="section-hdr" style="color:{{$.TextColor}}">Dashboard Visualization Insights</div>
  <div class="columns">
  {{- range .Columns}}
    <div class="column">
    {{- range .Blocks}}
      <h5 style="color:{{$.TextColor}}">{{.Title}}</h5>
      <ul style="color:{{$.TextColor}}">{{range .Points}}<li>{{.}}</li>{{end}}</ul>
    {{- end}}
    </div>
  {{- end}}
  </div>
</div>
{{end}}
{{with .Table}}{{template "table" $}}{{end}}
{{end}}

{{define "table"}}
<h4 class="table-title" style="background:{{.Style.CardColor}};color:{{.TextColor}}">{{.Title}}</h4>
<div class="table-wrap">
<table>
<tr>{{range .Table.Columns}}<th style="background:{{$.Style.HeaderColor}};color:{{$.TextColor}}">{{.}}</th>{{end}}</tr>
{{- range .Table.Rows}}
<tr>{{range .}}<td style="background:{{$.Style.CardColor}};color:{{$.TextColor}}">{{.}}</td>{{end}}</tr>
{{- end}}
</table>
</div>
<div class="pager" style="color:{{.TextColor}}">
  {{if .Table.HasPrev}}<a href="?page={{add .Table.Page -1}}">&larr; prev</a>{{end}}
  <span>page {{.Table.Page}} of {{.Table.Pages}} ({{.Table.Total}} rows)</span>
  {{if .Table.HasNext}}<a href="?page={{add .Table.Page 1}}">next &rarr;</a>{{end}}
  <a href="/export.csv">download CSV</a>
</div>
{{end}}
`

// ── Summary cards ─────────────────────────────────────────────────────────────

const tmplSummary = `
{{define "summary"}}
<div class="card" style="background:{{.Style.CardColor}}"><div class="val">{{.Report.TotalRecords}}</div><div class="lbl">Records</div></div>
<div class="card" style="background:{{.Style.CardColor}}"><div class="val">{{money .Report.AveragePrice}}</div><div class="lbl">Average price</div></div>
<div class="card" style="background:{{.Style.CardColor}}"><div class="val">{{money .Report.MedianPrice}}</div><div class="lbl">Median price</div></div>
<div class="card" style="background:{{.Style.CardColor}}"><div class="val">{{money .Report.MinPrice}} – {{money .Report.MaxPrice}}</div><div class="lbl">Price range</div></div>
<div class="card" style="background:{{.Style.CardColor}}">
  <div class="lbl">By zoning</div>
  {{range counts .Report.ByZoning}}<span class="tag">{{.Label}} ×{{.N}}</span> {{end}}
</div>
<div class="card" style="background:{{.Style.CardColor}}">
  <div class="lbl">By building type</div>
  {{range counts .Report.ByBldgType}}<span class="tag">{{.Label}} ×{{.N}}</span> {{end}}
</div>
{{end}}
`

var templates = template.Must(template.New("pages").Funcs(funcMap).Parse(tmplContent + tmplSummary))

// RenderContent writes the HTML of a page's content area.
func RenderContent(w io.Writer, p *Page) error {
	if err := templates.ExecuteTemplate(w, "content", p); err != nil {
		return fmt.Errorf("pages: render %s: %w", p.Kind, err)
	}
	return nil
}

// RenderSummary writes the summary cards for a report.
func RenderSummary(w io.Writer, r *models.SummaryReport, theme models.Theme) error {
	data := struct {
		Report *models.SummaryReport
		Style  models.Style
	}{r, theme.Style()}
	if err := templates.ExecuteTemplate(w, "summary", data); err != nil {
		return fmt.Errorf("pages: render summary: %w", err)
	}
	return nil
}
