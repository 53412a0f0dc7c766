package storage

import (
	"context"

	"housing-dashboard/models"
)

// TableSource is the interface any dataset backend must satisfy. Load is
// called once at start; the returned table is never modified afterwards.
type TableSource interface {
	Load(ctx context.Context) (*models.Table, error)
	Close() error
}

// ViewWriter is the interface for persisting a (possibly filtered) view.
type ViewWriter interface {
	Write(v models.View) error
	Close() error
}
