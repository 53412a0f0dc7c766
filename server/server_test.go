package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"housing-dashboard/dashboard"
	"housing-dashboard/models"
	"housing-dashboard/pages"
	"housing-dashboard/services"
	"housing-dashboard/utils"
)

var header = []string{
	"Id", "MSSubClass", "MSZoning", "LotArea", "LotConfig", "BldgType", "OverallCond",
	"YearBuilt", "YearRemodAdd", "Exterior1st", "BsmtFinSF2", "TotalBsmtSF", "SalePrice",
}

var rows = [][]string{
	strings.Split("1;60;A;8450;Inside;X;5;2003;2003;VinylSd;0;856;208500", ";"),
	strings.Split("2;20;A;9600;FR2;Y;8;1976;1976;MetalSd;10;1262;181500", ";"),
	strings.Split("3;60;B;11250;Inside;X;6;2001;2002;VinylSd;0;920;223500", ";"),
	strings.Split("4;70;B;9550;Corner;Y;5;1915;1970;Wd Sdng;32;756;140000", ";"),
}

func newTestServer(t *testing.T, logger *utils.Logger) *httptest.Server {
	t.Helper()
	table, err := services.NewCleaner(logger).Clean(header, rows)
	require.NoError(t, err)
	content, err := pages.LoadContent("")
	require.NoError(t, err)
	ctrl, err := dashboard.NewController(table, pages.NewBuilder(table, content), logger)
	require.NoError(t, err)

	ts := httptest.NewServer(New(table, ctrl, models.ThemeDark, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPageRoutes(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())

	tests := []struct {
		path    string
		want    string
		without string
	}{
		{"/", `id="saleprice-distribution"`, `id="correlation-heatmap"`},
		{"/insights", `id="lotarea-saleprice"`, `id="saleprice-distribution"`},
		{"/insghts", `id="correlation-heatmap"`, `id="lotarea-saleprice"`},
		{"/insghts", "Dashboard Visualization Insights", "Housing Data Table"},
		{"/data", "Housing Data Table", "<select"},
		{"/no/such/page", `id="saleprice-distribution"`, "Housing Data Table"},
	}
	for _, tc := range tests {
		resp, body := get(t, ts, tc.path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, tc.path)
		assert.Contains(t, body, tc.want, tc.path)
		assert.NotContains(t, body, tc.without, tc.path)
	}
}

func TestPageEmbedsInitialFigures(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())
	_, body := get(t, ts, "/")
	assert.Contains(t, body, `saleprice-distribution.figure`)
	assert.Contains(t, body, `summary-cards.children`)
	assert.Contains(t, body, "cdn.plot.ly")
}

func TestThemeResolution(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())

	_, body := get(t, ts, "/")
	assert.Contains(t, body, `class="theme-dark"`)

	resp, body := get(t, ts, "/?theme=light")
	assert.Contains(t, body, `class="theme-light"`)
	var set bool
	for _, c := range resp.Cookies() {
		if c.Name == themeCookie && c.Value == "light" {
			set = true
		}
	}
	assert.True(t, set, "theme query persists in a cookie")

	_, body = get(t, ts, "/", &http.Cookie{Name: themeCookie, Value: "light"})
	assert.Contains(t, body, `class="theme-light"`)

	_, body = get(t, ts, "/?theme=dark", &http.Cookie{Name: themeCookie, Value: "light"})
	assert.Contains(t, body, `class="theme-dark"`, "query wins over cookie")

	_, body = get(t, ts, "/?theme=sepia")
	assert.Contains(t, body, `class="theme-dark"`)
}

func TestQueryFiltersPreselectDropdown(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())
	_, body := get(t, ts, "/insights?zoning=B")
	assert.Contains(t, body, `<option value="B" selected>`)
}

func postUpdate(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := ts.Client().Post(ts.URL+"/api/update", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestUpdateEndpoint(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())

	resp, data := postUpdate(t, ts, `{
		"session": {"path": "/", "theme": "light", "filters": {"trends": {"zoning": "A", "bldgType": ""}}},
		"changed": ["trends-zoning-filter.value"]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var got struct {
		Page    string                     `json:"page"`
		Outputs map[string]json.RawMessage `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "trends", got.Page)
	assert.Len(t, got.Outputs, len(pages.Charts(pages.Trends))+1)

	var fig models.Figure
	require.NoError(t, json.Unmarshal(got.Outputs["saleprice-distribution.figure"], &fig))
	require.Len(t, fig.Data, 1, "only zoning A remains")
	assert.Equal(t, "A", fig.Data[0].Name)
	assert.Equal(t, "plotly_white", fig.Template)
	require.NotNil(t, fig.Layout.Template, "the theme reaches plotly through layout.template")
	assert.Equal(t, "#ffffff", fig.Layout.Template.Layout.PaperBGColor)
}

func TestUpdateEndpointErrors(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())

	resp, _ := get(t, ts, "/api/update")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = postUpdate(t, ts, `{"session": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())

	resp, body := get(t, ts, "/export.csv?zoning=A")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(body), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "MSSubClass,MSZoning"))

	_, body = get(t, ts, "/export.csv?zoning=Z")
	assert.Equal(t, 1, strings.Count(body, "\n"), "header only")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, utils.NewNopLogger())
	_, body := get(t, ts, "/healthz")
	assert.JSONEq(t, `{"status":"ok","records":4}`, body)
}

func TestRequestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ts := newTestServer(t, utils.WrapZap(zap.New(core)))

	resp, _ := get(t, ts, "/healthz")
	id := resp.Header.Get(requestIDHeader)
	assert.Len(t, id, 36)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/update", bytes.NewBufferString("nope"))
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "client-id")
	resp2, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, "client-id", resp2.Header.Get(requestIDHeader))

	entries := logs.FilterMessage("http request").AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusBadRequest), entries[1].ContextMap()["status"])
}

func TestServeStopsOnCancel(t *testing.T) {
	logger := utils.NewNopLogger()
	table, err := services.NewCleaner(logger).Clean(header, rows)
	require.NoError(t, err)
	ctrl, err := dashboard.NewController(table, pages.NewBuilder(table, nil), logger)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(table, ctrl, models.ThemeLight, logger).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
