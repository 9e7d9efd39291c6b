// Package chart turns raw dataset rows into plot-ready series: it resolves
// requested column names against the dataset's real columns, groups and
// reduces values, and applies per-chart-type shaping (sorting, capping,
// histogram binning). The rendering layer consumes its output as-is and
// performs no resolution or aggregation of its own.
package chart

import (
	"fmt"
	"strings"
)

// Type identifies a supported chart kind.
type Type string

const (
	TypeBar       Type = "bar"
	TypeLine      Type = "line"
	TypePie       Type = "pie"
	TypeScatter   Type = "scatter"
	TypeHistogram Type = "histogram"
)

// Aggregation identifies the reduction applied to grouped values.
type Aggregation string

const (
	AggSum      Aggregation = "sum"
	AggMean     Aggregation = "mean"
	AggCount    Aggregation = "count"
	AggDistinct Aggregation = "distinct-count"
)

// Spec describes one chart request. Columns hold *requested* names, which
// are resolved against the dataset's actual columns at build time. GroupBy
// optionally overrides the categorical column for grouped chart types.
type Spec struct {
	Type        Type
	Columns     []string
	Aggregation Aggregation
	GroupBy     string
}

// column arity per chart type: histogram takes exactly one numeric column,
// scatter exactly two, the grouped types one (count of occurrences) or two.
var columnArity = map[Type][2]int{
	TypeBar:       {1, 2},
	TypeLine:      {1, 2},
	TypePie:       {1, 2},
	TypeScatter:   {2, 2},
	TypeHistogram: {1, 1},
}

// NewSpec validates and constructs a Spec. An empty aggregation defaults to
// sum. Validation happens here rather than at build time so malformed
// requests are rejected before any data is touched.
func NewSpec(chartType Type, columns []string, agg Aggregation) (*Spec, error) {
	arity, ok := columnArity[chartType]
	if !ok {
		return nil, fmt.Errorf("unknown chart type %q", chartType)
	}

	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) != "" {
			cols = append(cols, strings.TrimSpace(c))
		}
	}

	if len(cols) < arity[0] || len(cols) > arity[1] {
		return nil, fmt.Errorf("chart type %q requires between %d and %d columns, got %d",
			chartType, arity[0], arity[1], len(cols))
	}

	if agg == "" {
		agg = AggSum
	}
	switch agg {
	case AggSum, AggMean, AggCount, AggDistinct:
	default:
		return nil, fmt.Errorf("unknown aggregation %q", agg)
	}

	return &Spec{Type: chartType, Columns: cols, Aggregation: agg}, nil
}
