package chart

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

// FallbackPolicy controls what Build returns when it cannot produce real
// data. EMPTY is the correctness-preserving default; FABRICATE emits a small
// labeled placeholder series and exists only for demo/preview contexts.
// Results carry an explicit Fabricated flag so the two can never be confused.
type FallbackPolicy string

const (
	FallbackEmpty     FallbackPolicy = "empty"
	FallbackFabricate FallbackPolicy = "fabricate"
)

// ParseFallbackPolicy validates a policy string from config.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(s) {
	case FallbackEmpty, FallbackFabricate:
		return FallbackPolicy(s), nil
	case "":
		return FallbackEmpty, nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q", s)
	}
}

// Per-chart-type output caps.
const (
	barCap        = 20
	pieCap        = 8
	lineCap       = 50
	scatterCap    = 500
	histogramBins = 10

	// rows sampled per column when guessing substitute columns
	typeSampleSize = 10
)

// Point is one plot element. Grouped charts fill Label/Value, scatter fills
// X/Y, histogram fills Label (bin range) and Value (count) plus X (lower edge).
type Point struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// Result is a ready-to-render series tagged with the resolved field names so
// the rendering layer can label axes without re-resolving anything.
type Result struct {
	Type          Type     `json:"chart_type"`
	Points        []Point  `json:"points"`
	CategoryField string   `json:"category_field,omitempty"`
	ValueField    string   `json:"value_field,omitempty"`
	Correlation   *float64 `json:"correlation,omitempty"`
	Fabricated    bool     `json:"fabricated,omitempty"`
}

// Builder orchestrates column resolution and aggregation for one chart
// request. Build never fails: anything it cannot chart degrades to the
// configured fallback.
type Builder struct {
	resolver *Resolver
	policy   FallbackPolicy
	logger   *slog.Logger
}

// NewBuilder constructs a Builder. A nil logger discards log output.
func NewBuilder(resolver *Resolver, policy FallbackPolicy, logger *slog.Logger) *Builder {
	if resolver == nil {
		resolver = NewResolver()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if policy == "" {
		policy = FallbackEmpty
	}
	return &Builder{resolver: resolver, policy: policy, logger: logger}
}

// Build produces the plot series for spec over rows. It always returns a
// Result; resolution failure and empty input degrade per the fallback policy.
func (b *Builder) Build(spec *Spec, rows []dataset.Row, available []string) Result {
	if spec == nil || len(spec.Columns) == 0 || len(rows) == 0 {
		return b.fallback(spec)
	}
	if arity, ok := columnArity[spec.Type]; !ok || len(spec.Columns) < arity[0] {
		return b.fallback(spec)
	}

	resolved := make([]string, len(spec.Columns))
	allResolved := true
	for i, requested := range spec.Columns {
		col, ok := b.resolver.Resolve(requested, available)
		if !ok {
			b.logger.Debug("column not resolved", "requested", requested)
			allResolved = false
			continue
		}
		resolved[i] = col
	}

	if !allResolved {
		resolved = b.substitute(spec, resolved, rows, available)
		if resolved == nil {
			return b.fallback(spec)
		}
	}

	switch spec.Type {
	case TypeScatter:
		return b.buildScatter(resolved[0], resolved[1], rows)
	case TypeHistogram:
		return b.buildHistogram(resolved[0], rows)
	default:
		// an explicit group-by overrides the categorical column
		if spec.GroupBy != "" {
			if col, ok := b.resolver.Resolve(spec.GroupBy, available); ok {
				resolved[0] = col
			}
		}
		return b.buildGrouped(spec, resolved, rows)
	}
}

// substitute fills unresolved slots heuristically: the first sampled
// all-string column substitutes for a category, the first all-numeric column
// for a value. Returns nil when no suitable column exists for some slot.
func (b *Builder) substitute(spec *Spec, resolved []string, rows []dataset.Row, available []string) []string {
	firstString := ""
	firstNumeric := ""
	for _, col := range available {
		if firstString == "" && dataset.AllString(rows, col, typeSampleSize) {
			firstString = col
		}
		if firstNumeric == "" && dataset.AllNumeric(rows, col, typeSampleSize) {
			firstNumeric = col
		}
	}

	out := make([]string, len(resolved))
	copy(out, resolved)
	for i := range out {
		if out[i] != "" {
			continue
		}

		// slot 0 is categorical for grouped charts, numeric for
		// scatter/histogram; later slots are always numeric
		var sub string
		if i == 0 && spec.Type != TypeScatter && spec.Type != TypeHistogram {
			sub = firstString
		} else {
			sub = firstNumeric
		}
		if sub == "" {
			b.logger.Debug("no substitute column available",
				"requested", spec.Columns[i], "chart_type", spec.Type)
			return nil
		}
		b.logger.Debug("substituted column", "requested", spec.Columns[i], "actual", sub)
		out[i] = sub
	}
	return out
}

func (b *Builder) buildGrouped(spec *Spec, resolved []string, rows []dataset.Row) Result {
	keyField := resolved[0]
	valueField := ""
	agg := spec.Aggregation

	if len(resolved) > 1 {
		valueField = resolved[1]
	} else {
		// single-column grouped charts degrade to counting occurrences
		agg = AggCount
	}

	points := Group(rows, keyField, valueField, agg)

	switch spec.Type {
	case TypeBar:
		SortDesc(points)
		points = Cap(points, barCap)
	case TypePie:
		SortDesc(points)
		points = Cap(points, pieCap)
	case TypeLine:
		points = Cap(points, lineCap)
	}

	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Label: p.Key, Value: p.Value}
	}
	return Result{
		Type:          spec.Type,
		Points:        out,
		CategoryField: keyField,
		ValueField:    valueField,
	}
}

func (b *Builder) buildScatter(xField, yField string, rows []dataset.Row) Result {
	points, corr := ScatterPoints(rows, xField, yField, scatterCap)
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return Result{
		Type:          TypeScatter,
		Points:        out,
		CategoryField: xField,
		ValueField:    yField,
		Correlation:   &corr,
	}
}

func (b *Builder) buildHistogram(field string, rows []dataset.Row) Result {
	bins := HistogramBins(rows, field, histogramBins)
	if bins == nil {
		return b.fallback(&Spec{Type: TypeHistogram, Columns: []string{field}})
	}
	out := make([]Point, len(bins))
	for i, bin := range bins {
		out[i] = Point{
			Label: fmt.Sprintf("%.2f-%.2f", bin.Low, bin.High),
			Value: float64(bin.Count),
			X:     bin.Low,
		}
	}
	return Result{Type: TypeHistogram, Points: out, ValueField: field}
}

// fallback produces the configured empty or fabricated result. Fabricated
// points are labeled with the originally requested column names so a viewer
// can tell which encoding failed to resolve.
func (b *Builder) fallback(spec *Spec) Result {
	res := Result{}
	if spec != nil {
		res.Type = spec.Type
		if len(spec.Columns) > 0 {
			res.CategoryField = spec.Columns[0]
		}
		if len(spec.Columns) > 1 {
			res.ValueField = spec.Columns[1]
		}
	}

	if b.policy != FallbackFabricate {
		res.Points = []Point{}
		return res
	}

	res.Fabricated = true
	res.Points = []Point{
		{Label: "Sample A", Value: 42},
		{Label: "Sample B", Value: 28},
		{Label: "Sample C", Value: 16},
		{Label: "Sample D", Value: 9},
	}
	return res
}
