package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// Outputs maps component ids to their new values: a *models.Figure for
// figure properties, an HTML string for children.
type Outputs map[string]any

// Callback recomputes its outputs whenever one of its inputs changes.
type Callback struct {
	Name    string
	Inputs  []string
	Outputs []string
	Run     func(ctx context.Context, s Session) (Outputs, error)
}

// Graph is the static input to output dependency graph. Inputs and outputs
// never share an id, so it is bipartite and has no cycles.
type Graph struct {
	callbacks []Callback
	byInput   map[string][]int
	inputs    []string
}

// NewGraph validates the declared callbacks and indexes them by input.
func NewGraph(callbacks []Callback) (*Graph, error) {
	g := &Graph{
		callbacks: callbacks,
		byInput:   make(map[string][]int),
	}
	producer := make(map[string]string)
	for i, cb := range callbacks {
		if cb.Run == nil {
			return nil, fmt.Errorf("dashboard: callback %q has no function", cb.Name)
		}
		if len(cb.Inputs) == 0 || len(cb.Outputs) == 0 {
			return nil, fmt.Errorf("dashboard: callback %q needs at least one input and one output", cb.Name)
		}
		for _, out := range cb.Outputs {
			if prev, dup := producer[out]; dup {
				return nil, fmt.Errorf("dashboard: output %q produced by both %q and %q", out, prev, cb.Name)
			}
			producer[out] = cb.Name
		}
		for _, in := range cb.Inputs {
			if _, seen := g.byInput[in]; !seen {
				g.inputs = append(g.inputs, in)
			}
			g.byInput[in] = append(g.byInput[in], i)
		}
	}

	var errs []error
	for _, in := range g.inputs {
		if cb, ok := producer[in]; ok {
			errs = append(errs, fmt.Errorf("dashboard: %q is an output of %q and also an input", in, cb))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// Inputs lists every input id in declaration order.
func (g *Graph) Inputs() []string {
	return append([]string(nil), g.inputs...)
}

// Callbacks returns the declared callbacks.
func (g *Graph) Callbacks() []Callback {
	return append([]Callback(nil), g.callbacks...)
}

// Affected returns the callbacks reading any of the changed ids, each once,
// in declaration order. Unknown ids are ignored.
func (g *Graph) Affected(changed []string) []Callback {
	hit := make([]bool, len(g.callbacks))
	for _, id := range changed {
		for _, i := range g.byInput[id] {
			hit[i] = true
		}
	}
	var out []Callback
	for i, ok := range hit {
		if ok {
			out = append(out, g.callbacks[i])
		}
	}
	return out
}
