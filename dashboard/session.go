// Package dashboard wires filters, layouts and chart builders together
// through a fixed graph of callbacks. Nothing here is global: every call
// receives the session it works for.
package dashboard

import (
	"housing-dashboard/models"
	"housing-dashboard/pages"
)

// Session is the client-held UI state. The server keeps no copy of it.
type Session struct {
	Path      string                          `json:"path"`
	Theme     models.Theme                    `json:"theme"`
	Filters   map[pages.Kind]models.Selection `json:"filters,omitempty"`
	TablePage int                             `json:"tablePage,omitempty"`
}

// Page is the layout the session's path resolves to.
func (s Session) Page() pages.Kind {
	return pages.Route(s.Path)
}

// Selection returns the filter state of one group. Groups without a stored
// selection are unfiltered.
func (s Session) Selection(group pages.Kind) models.Selection {
	return s.Filters[group]
}

// WithSelection returns a copy of s with group's selection replaced.
func (s Session) WithSelection(group pages.Kind, sel models.Selection) Session {
	filters := make(map[pages.Kind]models.Selection, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	filters[group] = sel
	s.Filters = filters
	return s
}
