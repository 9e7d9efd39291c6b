package chart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

func salesRows() []dataset.Row {
	return []dataset.Row{
		{"Region": "North", "Sales": "100", "Product": "A"},
		{"Region": "North", "Sales": "50", "Product": "B"},
		{"Region": "South", "Sales": "200", "Product": "A"},
		{"Region": "South", "Sales": "not-a-number", "Product": "C"},
		{"Region": "East", "Sales": "75", "Product": "A"},
	}
}

func TestGroup_Sum(t *testing.T) {
	points := Group(salesRows(), "Region", "Sales", AggSum)
	require.Len(t, points, 3)

	// first-seen order
	assert.Equal(t, GroupedPoint{Key: "North", Value: 150}, points[0])
	// unparseable "not-a-number" silently excluded
	assert.Equal(t, GroupedPoint{Key: "South", Value: 200}, points[1])
	assert.Equal(t, GroupedPoint{Key: "East", Value: 75}, points[2])
}

func TestGroup_Mean(t *testing.T) {
	points := Group(salesRows(), "Region", "Sales", AggMean)
	require.Len(t, points, 3)
	assert.Equal(t, 75.0, points[0].Value)  // (100+50)/2
	assert.Equal(t, 200.0, points[1].Value) // only the parseable row counts
}

func TestGroup_Count(t *testing.T) {
	points := Group(salesRows(), "Region", "Sales", AggCount)
	require.Len(t, points, 3)
	// count includes the row whose value failed to parse
	assert.Equal(t, 2.0, points[1].Value)
}

func TestGroup_DistinctCount(t *testing.T) {
	points := Group(salesRows(), "Region", "Product", AggDistinct)
	require.Len(t, points, 3)
	assert.Equal(t, 2.0, points[0].Value) // A, B
	assert.Equal(t, 2.0, points[1].Value) // A, C
	assert.Equal(t, 1.0, points[2].Value) // A
}

func TestGroup_SkipsEmptyKeys(t *testing.T) {
	rows := []dataset.Row{
		{"Region": "North", "Sales": "10"},
		{"Region": "", "Sales": "20"},
		{"Region": nil, "Sales": "30"},
		{"Sales": "40"},
	}
	points := Group(rows, "Region", "Sales", AggSum)
	require.Len(t, points, 1)
	assert.Equal(t, "North", points[0].Key)
}

func TestSortDescAndCap(t *testing.T) {
	points := []GroupedPoint{
		{Key: "a", Value: 1},
		{Key: "b", Value: 5},
		{Key: "c", Value: 3},
	}
	SortDesc(points)
	assert.Equal(t, "b", points[0].Key)
	assert.Equal(t, "c", points[1].Key)
	assert.Equal(t, "a", points[2].Key)

	capped := Cap(points, 2)
	assert.Len(t, capped, 2)
	assert.Len(t, Cap(points, 10), 3)
}

func TestScatterPoints(t *testing.T) {
	rows := []dataset.Row{
		{"x": "1", "y": "2"},
		{"x": "2", "y": "4"},
		{"x": "3", "y": "6"},
		{"x": "bad", "y": "8"},
	}
	points, corr := ScatterPoints(rows, "x", "y", 500)
	require.Len(t, points, 3)
	assert.Equal(t, ScatterPoint{X: 1, Y: 2}, points[0])
	assert.InDelta(t, 1.0, corr, 1e-9)
}

func TestScatterPoints_CapPreservesCorrelation(t *testing.T) {
	rows := make([]dataset.Row, 100)
	for i := range rows {
		rows[i] = dataset.Row{
			"x": fmt.Sprintf("%d", i),
			"y": fmt.Sprintf("%d", -i),
		}
	}
	points, corr := ScatterPoints(rows, "x", "y", 10)
	assert.Len(t, points, 10)
	// correlation computed over all 100 pairs
	assert.InDelta(t, -1.0, corr, 1e-9)
}

func TestPearson_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Pearson(nil, nil))
	assert.Equal(t, 0.0, Pearson([]float64{1}, []float64{2}))
	// zero variance
	assert.Equal(t, 0.0, Pearson([]float64{3, 3, 3}, []float64{1, 2, 3}))
}

func TestHistogramBins_Range1To100(t *testing.T) {
	rows := make([]dataset.Row, 0, 100)
	for i := 1; i <= 100; i++ {
		rows = append(rows, dataset.Row{"v": fmt.Sprintf("%d", i)})
	}

	bins := HistogramBins(rows, "v", 10)
	require.Len(t, bins, 10)

	assert.InDelta(t, 9.9, bins[0].High-bins[0].Low, 1e-9)
	assert.Equal(t, 1.0, bins[0].Low)
	// maximum value lands in the last bin
	assert.Greater(t, bins[9].Count, 0)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 100, total)
}

func TestHistogramBins_ConstantValues(t *testing.T) {
	rows := []dataset.Row{{"v": "5"}, {"v": "5"}, {"v": "5"}}
	bins := HistogramBins(rows, "v", 10)
	require.Len(t, bins, 10)
	// width degrades to 1 when max == min; all values in the first bin
	assert.Equal(t, 1.0, bins[0].High-bins[0].Low)
	assert.Equal(t, 3, bins[0].Count)
}

func TestHistogramBins_NoNumericValues(t *testing.T) {
	rows := []dataset.Row{{"v": "abc"}, {"v": ""}}
	assert.Nil(t, HistogramBins(rows, "v", 10))
}
