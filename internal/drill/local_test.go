package drill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

func geoDataset() *dataset.Dataset {
	return &dataset.Dataset{
		ID:      "ds-geo",
		Name:    "sales",
		Columns: []string{"Region", "State", "City", "Sales"},
		Rows: []dataset.Row{
			{"Region": "North", "State": "CA", "City": "SF", "Sales": "100"},
			{"Region": "North", "State": "CA", "City": "LA", "Sales": "50"},
			{"Region": "North", "State": "WA", "City": "Seattle", "Sales": "30"},
			{"Region": "South", "State": "TX", "City": "Austin", "Sales": "80"},
		},
	}
}

func geoCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Hierarchy{*geoHierarchy()})
	require.NoError(t, err)
	return c
}

func TestLocalFetcher_Level1(t *testing.T) {
	f := NewLocalFetcher(geoDataset(), geoCatalog(t))

	res, err := f.FetchLevel(context.Background(), LevelRequest{
		HierarchyField: "Region",
		Level:          1,
	})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.Equal(t, "North", res.Data[0]["Region"])
	assert.Equal(t, 180.0, res.Data[0]["value"])
	assert.Equal(t, "South", res.Data[1]["Region"])
	assert.Equal(t, 80.0, res.Data[1]["value"])
	assert.True(t, res.CanDrillDown)
}

func TestLocalFetcher_FilteredLevel2(t *testing.T) {
	f := NewLocalFetcher(geoDataset(), geoCatalog(t))

	res, err := f.FetchLevel(context.Background(), LevelRequest{
		HierarchyField: "Region",
		Level:          2,
		Filters:        map[string]string{"Region": "North"},
	})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.Equal(t, "CA", res.Data[0]["State"])
	assert.Equal(t, 150.0, res.Data[0]["value"])
	assert.Equal(t, "WA", res.Data[1]["State"])
	assert.True(t, res.CanDrillDown)
}

func TestLocalFetcher_DeepestLevel(t *testing.T) {
	f := NewLocalFetcher(geoDataset(), geoCatalog(t))

	res, err := f.FetchLevel(context.Background(), LevelRequest{
		HierarchyField: "Region",
		Level:          3,
		Filters:        map[string]string{"Region": "North", "State": "CA"},
	})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.False(t, res.CanDrillDown)
}

func TestLocalFetcher_Errors(t *testing.T) {
	f := NewLocalFetcher(geoDataset(), geoCatalog(t))

	_, err := f.FetchLevel(context.Background(), LevelRequest{HierarchyField: "Nope", Level: 1})
	assert.Error(t, err)

	_, err = f.FetchLevel(context.Background(), LevelRequest{HierarchyField: "Region", Level: 9})
	assert.Error(t, err)
}

func TestAggregateLevel_CountWithoutValueField(t *testing.T) {
	h := geoHierarchy()
	h.ValueField = ""
	require.NoError(t, h.Validate())

	res, err := AggregateLevel(geoDataset().Rows, h, 1, nil)
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, 3.0, res.Data[0]["value"]) // three North rows
}

func TestPath_EndToEndWithLocalFetcher(t *testing.T) {
	catalog := geoCatalog(t)
	p := NewPath("ds-geo", NewLocalFetcher(geoDataset(), catalog), nil)
	ctx := context.Background()

	h, ok := catalog.ByField("Region")
	require.True(t, ok)

	require.NoError(t, p.SelectHierarchy(ctx, h))
	require.Len(t, p.Data(), 2)

	require.NoError(t, p.DrillDown(ctx, "North"))
	require.Len(t, p.Data(), 2) // CA, WA
	assert.Equal(t, "CA", p.Data()[0]["State"])

	require.NoError(t, p.DrillDown(ctx, "CA"))
	assert.False(t, p.CanDrillDown())
	require.Len(t, p.Data(), 2) // SF, LA

	require.NoError(t, p.DrillUp(ctx))
	assert.Equal(t, 2, p.Level())
}
