package chart

import (
	"math"
	"sort"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

// GroupedPoint is one group's reduced value, keyed by the raw category value.
type GroupedPoint struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Group partitions rows by keyField and reduces valueField per kind,
// returning groups in first-seen order. Rows with a null/empty key are
// skipped. For sum and mean, values that fail numeric parsing are silently
// excluded from the reduction; this is a data-quality policy, not an error.
func Group(rows []dataset.Row, keyField, valueField string, kind Aggregation) []GroupedPoint {
	type bucket struct {
		sum      float64
		parsed   int
		rows     int
		distinct map[string]struct{}
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, row := range rows {
		key := row.String(keyField)
		if key == "" {
			continue
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{distinct: make(map[string]struct{})}
			buckets[key] = b
			order = append(order, key)
		}

		b.rows++
		if v, ok := row.Float(valueField); ok {
			b.sum += v
			b.parsed++
		}
		if raw := row.String(valueField); raw != "" {
			b.distinct[raw] = struct{}{}
		}
	}

	out := make([]GroupedPoint, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		var v float64
		switch kind {
		case AggSum:
			v = b.sum
		case AggMean:
			if b.parsed > 0 {
				v = b.sum / float64(b.parsed)
			}
		case AggCount:
			v = float64(b.rows)
		case AggDistinct:
			v = float64(len(b.distinct))
		}
		out = append(out, GroupedPoint{Key: key, Value: v})
	}
	return out
}

// SortDesc orders points by value descending, stable on input order for ties.
func SortDesc(points []GroupedPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
}

// Cap truncates points to at most n entries.
func Cap(points []GroupedPoint, n int) []GroupedPoint {
	if len(points) > n {
		return points[:n]
	}
	return points
}

// ScatterPoint is one (x, y) pair taken from a single row.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterPoints extracts one point per row where both fields parse as
// numbers, capped to max points. The correlation coefficient is computed
// over the full numeric pair set, not just the capped slice.
func ScatterPoints(rows []dataset.Row, xField, yField string, max int) ([]ScatterPoint, float64) {
	xs := make([]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		x, okX := row.Float(xField)
		y, okY := row.Float(yField)
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	corr := Pearson(xs, ys)

	n := len(xs)
	if n > max {
		n = max
	}
	points := make([]ScatterPoint, n)
	for i := 0; i < n; i++ {
		points[i] = ScatterPoint{X: xs[i], Y: ys[i]}
	}
	return points, corr
}

// Pearson returns the linear correlation coefficient of the paired samples.
// Returns 0 for fewer than two pairs or zero variance in either sample.
func Pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// Bin is one histogram bucket over [Low, High).
// The last bin is closed on the right so the maximum value is counted.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// HistogramBins divides the numeric range of field into binCount equal-width
// bins and counts membership. Width degrades to 1 when all values are equal.
// Bins come back sorted by lower edge ascending; unparseable values are
// skipped. Returns nil when no value parses.
func HistogramBins(rows []dataset.Row, field string, binCount int) []Bin {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := row.Float(field); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := (max - min) / float64(binCount)
	if width == 0 {
		width = 1
	}

	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i].Low = min + float64(i)*width
		bins[i].High = min + float64(i+1)*width
	}

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}
	return bins
}
