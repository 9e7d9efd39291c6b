// Package store persists datasets and their hierarchy definitions in
// SQLite, backing the HTTP API and the CLI between invocations.
package store

import (
	"context"
	"time"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
	"github.com/SreeTarak2/datavisuals/internal/drill"
)

// DatasetInfo is the listing view of a stored dataset, without its rows.
type DatasetInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   []string  `json:"columns"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence interface for datasets and hierarchy catalogs.
type Store interface {
	// SaveDataset inserts or replaces a dataset and all its rows.
	SaveDataset(ctx context.Context, ds *dataset.Dataset) error
	// GetDataset loads a dataset with its rows in original order.
	GetDataset(ctx context.Context, id string) (*dataset.Dataset, error)
	// ListDatasets returns metadata for every stored dataset.
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)
	// DeleteDataset removes a dataset, its rows, and its hierarchies.
	DeleteDataset(ctx context.Context, id string) error

	// SaveHierarchies replaces the hierarchy definitions for a dataset.
	SaveHierarchies(ctx context.Context, datasetID string, hierarchies []drill.Hierarchy) error
	// ListHierarchies returns the hierarchy definitions for a dataset.
	ListHierarchies(ctx context.Context, datasetID string) ([]drill.Hierarchy, error)

	Close() error
}
