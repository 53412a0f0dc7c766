package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"housing-dashboard/charts"
	"housing-dashboard/models"
	"housing-dashboard/pages"
	"housing-dashboard/services"
	"housing-dashboard/utils"
)

// Update is the result of one dispatch.
type Update struct {
	Page    pages.Kind `json:"page"`
	Outputs Outputs    `json:"outputs"`
}

// Controller runs callbacks against the shared, read-only table.
type Controller struct {
	table    *models.Table
	pages    *pages.Builder
	insights *services.InsightService
	graph    *Graph
	logger   *utils.Logger
}

// NewController declares the dashboard callbacks and validates their graph.
func NewController(table *models.Table, builder *pages.Builder, logger *utils.Logger) (*Controller, error) {
	c := &Controller{
		table:    table,
		pages:    builder,
		insights: services.NewInsightService(logger),
		logger:   logger,
	}
	g, err := NewGraph(c.callbacks())
	if err != nil {
		return nil, err
	}
	c.graph = g
	return c, nil
}

// Graph exposes the callback graph.
func (c *Controller) Graph() *Graph { return c.graph }

func (c *Controller) callbacks() []Callback {
	cbs := []Callback{{
		Name:    "display-page",
		Inputs:  []string{pages.URLPathname, pages.ThemeSwitch},
		Outputs: []string{pages.PageContent},
		Run:     c.displayPage,
	}}
	for _, group := range pages.FilterGroups() {
		cbs = append(cbs, c.chartCallback(group))
		if group == pages.Trends {
			cbs = append(cbs, Callback{
				Name:    "trends-summary",
				Inputs:  []string{pages.ZoningFilter(group), pages.BldgTypeFilter(group), pages.ThemeSwitch},
				Outputs: []string{pages.SummaryCards},
				Run:     c.summary,
			})
		}
	}
	return cbs
}

func (c *Controller) displayPage(_ context.Context, s Session) (Outputs, error) {
	kind := s.Page()
	page := c.pages.Build(kind, s.Theme, pages.Options{
		Selection: s.Selection(kind),
		TablePage: s.TablePage,
	})
	var b strings.Builder
	if err := pages.RenderContent(&b, page); err != nil {
		return nil, err
	}
	return Outputs{pages.PageContent: b.String()}, nil
}

func (c *Controller) chartCallback(group pages.Kind) Callback {
	kinds := pages.Charts(group)
	outputs := make([]string, len(kinds))
	for i, k := range kinds {
		outputs[i] = pages.Figure(k)
	}
	return Callback{
		Name:    string(group) + "-charts",
		Inputs:  []string{pages.ZoningFilter(group), pages.BldgTypeFilter(group), pages.ThemeSwitch},
		Outputs: outputs,
		Run: func(ctx context.Context, s Session) (Outputs, error) {
			view := services.FilterTable(c.table, s.Selection(group))
			out := make(Outputs, len(kinds))
			for _, k := range kinds {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				fig, err := charts.Build(k, view, s.Theme)
				if err != nil {
					return nil, err
				}
				out[pages.Figure(k)] = fig
			}
			return out, nil
		},
	}
}

func (c *Controller) summary(_ context.Context, s Session) (Outputs, error) {
	report := c.insights.Generate(services.FilterTable(c.table, s.Selection(pages.Trends)))
	var b strings.Builder
	if err := pages.RenderSummary(&b, report, s.Theme); err != nil {
		return nil, err
	}
	return Outputs{pages.SummaryCards: b.String()}, nil
}

// Dispatch runs every callback that reads one of the changed ids and whose
// outputs all exist on the session's page. Callbacks run concurrently and
// share nothing but the table.
func (c *Controller) Dispatch(ctx context.Context, s Session, changed []string) (*Update, error) {
	start := time.Now()
	kind := s.Page()

	present := make(map[string]bool)
	for _, id := range pages.Components(kind) {
		present[id] = true
	}
	var run []Callback
	for _, cb := range c.graph.Affected(changed) {
		if onPage(cb, present) {
			run = append(run, cb)
		}
	}

	results := make([]Outputs, len(run))
	g, gctx := errgroup.WithContext(ctx)
	for i, cb := range run {
		i, cb := i, cb
		g.Go(func() error {
			out, err := cb.Run(gctx, s)
			if err != nil {
				return fmt.Errorf("dashboard: callback %s: %w", cb.Name, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Error("[dashboard] Dispatch on %s failed: %v", kind, err)
		return nil, err
	}

	update := &Update{Page: kind, Outputs: make(Outputs)}
	for _, out := range results {
		for id, v := range out {
			update.Outputs[id] = v
		}
	}
	c.logger.Debug("[dashboard] %s: %d changed, %d callbacks, %d outputs in %v",
		kind, len(changed), len(run), len(update.Outputs), time.Since(start))
	return update, nil
}

// Render is the initial call for a page: every input counts as changed.
func (c *Controller) Render(ctx context.Context, s Session) (*Update, error) {
	return c.Dispatch(ctx, s, c.graph.Inputs())
}

func onPage(cb Callback, present map[string]bool) bool {
	for _, out := range cb.Outputs {
		if !present[out] {
			return false
		}
	}
	return true
}
