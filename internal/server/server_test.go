package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SreeTarak2/datavisuals/internal/chart"
	"github.com/SreeTarak2/datavisuals/internal/dataset"
	"github.com/SreeTarak2/datavisuals/internal/drill"
	"github.com/SreeTarak2/datavisuals/internal/store"
	"github.com/SreeTarak2/datavisuals/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *store.SQLiteStore) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	srv := New(Config{
		Store:   s,
		Builder: chart.NewBuilder(nil, chart.FallbackEmpty, testutil.NewTestLogger(t)),
		Logger:  testutil.NewTestLogger(t),
	})
	return srv, s
}

func seedGeoDataset(t *testing.T, s *store.SQLiteStore) string {
	t.Helper()
	ctx := context.Background()

	ds := &dataset.Dataset{
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
	require.NoError(t, s.SaveDataset(ctx, ds))

	require.NoError(t, s.SaveHierarchies(ctx, ds.ID, []drill.Hierarchy{{
		Name:       "Geography",
		Field:      "Region",
		ValueField: "Sales",
		Drillable:  true,
		Levels: []drill.Level{
			{Level: 1, Name: "Region", Field: "Region", Aggregation: "sum"},
			{Level: 2, Name: "State", Field: "State", Parent: "Region", Aggregation: "sum"},
			{Level: 3, Name: "City", Field: "City", Parent: "State", Aggregation: "sum"},
		},
	}}))
	return ds.ID
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_ListDatasets(t *testing.T) {
	srv, s := newTestServer(t)
	seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/datasets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Datasets []store.DatasetInfo `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Datasets, 1)
	assert.Equal(t, "ds-geo", resp.Datasets[0].ID)
	assert.Equal(t, 4, resp.Datasets[0].RowCount)
}

func TestServer_ListHierarchies(t *testing.T) {
	srv, s := newTestServer(t)
	id := seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/datasets/"+id+"/hierarchies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Hierarchies []drill.Hierarchy `json:"hierarchies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Hierarchies, 1)
	assert.Equal(t, "Geography", resp.Hierarchies[0].Name)
	assert.Equal(t, 3, resp.Hierarchies[0].Depth())
}

func TestServer_Chart(t *testing.T) {
	srv, s := newTestServer(t)
	id := seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/datasets/"+id+"/chart", map[string]any{
		"chart_type":  "bar",
		"columns":     []string{"region", "sales"},
		"aggregation": "sum",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res chart.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Points, 2)
	assert.Equal(t, "North", res.Points[0].Label)
	assert.Equal(t, 180.0, res.Points[0].Value)
	assert.Equal(t, "Region", res.CategoryField)
}

func TestServer_Chart_BadRequest(t *testing.T) {
	srv, s := newTestServer(t)
	id := seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/datasets/"+id+"/chart", map[string]any{
		"chart_type": "donut",
		"columns":    []string{"region"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestServer_Chart_DatasetNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/datasets/missing/chart", map[string]any{
		"chart_type": "bar",
		"columns":    []string{"region"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Drilldown(t *testing.T) {
	srv, s := newTestServer(t)
	id := seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/datasets/"+id+"/drilldown", map[string]any{
		"hierarchy_field": "Region",
		"level":           2,
		"filters":         map[string]string{"Region": "North"},
		"path":            []string{"North"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res drill.LevelResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Data, 2)
	assert.True(t, res.CanDrillDown)

	assert.Equal(t, "CA", res.Data[0]["State"])
	assert.Equal(t, 150.0, res.Data[0]["value"])
}

func TestServer_Drilldown_UnknownHierarchy(t *testing.T) {
	srv, s := newTestServer(t)
	id := seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/datasets/"+id+"/drilldown", map[string]any{
		"hierarchy_field": "Nope",
		"level":           1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Drilldown_BadLevel(t *testing.T) {
	srv, s := newTestServer(t)
	id := seedGeoDataset(t, s)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/datasets/"+id+"/drilldown", map[string]any{
		"hierarchy_field": "Region",
		"level":           9,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
