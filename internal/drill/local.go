package drill

import (
	"context"
	"fmt"

	"github.com/SreeTarak2/datavisuals/internal/chart"
	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

// LocalFetcher satisfies LevelFetcher by aggregating an in-memory dataset,
// with no server round trip. The drilldown HTTP handler performs the same
// computation on the server side.
type LocalFetcher struct {
	ds      *dataset.Dataset
	catalog *Catalog
}

// NewLocalFetcher builds a fetcher over ds using catalog's hierarchy
// definitions.
func NewLocalFetcher(ds *dataset.Dataset, catalog *Catalog) *LocalFetcher {
	return &LocalFetcher{ds: ds, catalog: catalog}
}

// FetchLevel filters rows by the request's filter set, groups them by the
// target level's field, and reduces the hierarchy's value field with the
// level's aggregation kind (count when no value field is declared).
func (f *LocalFetcher) FetchLevel(_ context.Context, req LevelRequest) (LevelResult, error) {
	h, ok := f.catalog.ByField(req.HierarchyField)
	if !ok {
		return LevelResult{}, fmt.Errorf("unknown hierarchy %q", req.HierarchyField)
	}
	return AggregateLevel(f.ds.Rows, h, req.Level, req.Filters)
}

// AggregateLevel produces the aggregated rows for one level of a hierarchy
// over the given row set. Shared by LocalFetcher and the drilldown handler.
func AggregateLevel(rows []dataset.Row, h *Hierarchy, level int, filters map[string]string) (LevelResult, error) {
	lvl, ok := h.LevelAt(level)
	if !ok {
		return LevelResult{}, fmt.Errorf("hierarchy %q has no level %d", h.Field, level)
	}

	kind := chart.Aggregation(lvl.Aggregation)
	if kind == "" || h.ValueField == "" {
		kind = chart.AggCount
	}
	switch kind {
	case chart.AggSum, chart.AggMean, chart.AggCount, chart.AggDistinct:
	default:
		return LevelResult{}, fmt.Errorf("level %d of %q has unknown aggregation %q", level, h.Field, lvl.Aggregation)
	}

	filtered := dataset.Filter(rows, filters)
	grouped := chart.Group(filtered, lvl.Field, h.ValueField, kind)

	data := make([]dataset.Row, len(grouped))
	for i, g := range grouped {
		data[i] = dataset.Row{
			lvl.Field: g.Key,
			"value":   g.Value,
		}
	}

	return LevelResult{
		Data:         data,
		CanDrillDown: level < h.Depth(),
	}, nil
}
