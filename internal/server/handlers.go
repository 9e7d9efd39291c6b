package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SreeTarak2/datavisuals/internal/chart"
	"github.com/SreeTarak2/datavisuals/internal/drill"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}

// handleListDatasets returns metadata for every stored dataset.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListDatasets(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"datasets": infos})
}

// handleListHierarchies returns the drill-down hierarchies for a dataset.
func (s *Server) handleListHierarchies(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")

	hierarchies, err := s.store.ListHierarchies(r.Context(), datasetID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"hierarchies": hierarchies})
}

// chartRequest is the body of POST /api/datasets/{id}/chart.
type chartRequest struct {
	ChartType   string   `json:"chart_type"`
	Columns     []string `json:"columns"`
	Aggregation string   `json:"aggregation"`
}

// handleChart resolves, aggregates, and returns a plot-ready series.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")

	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	spec, err := chart.NewSpec(chart.Type(req.ChartType), req.Columns, chart.Aggregation(req.Aggregation))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	ds, err := s.store.GetDataset(r.Context(), datasetID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return
	}

	s.respondJSON(w, http.StatusOK, s.builder.Build(spec, ds.Rows, ds.Columns))
}

// drilldownRequest is the body of POST /api/datasets/{id}/drilldown. Path is
// the client's post-transition drill path, carried for auditing.
type drilldownRequest struct {
	HierarchyField string            `json:"hierarchy_field"`
	Level          int               `json:"level"`
	Filters        map[string]string `json:"filters"`
	Path           []string          `json:"path"`
}

// handleDrilldown aggregates one hierarchy level under the given filters.
func (s *Server) handleDrilldown(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")

	var req drilldownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	hierarchies, err := s.store.ListHierarchies(r.Context(), datasetID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	var h *drill.Hierarchy
	for i := range hierarchies {
		if hierarchies[i].Field == req.HierarchyField {
			h = &hierarchies[i]
			break
		}
	}
	if h == nil {
		s.respondError(w, http.StatusNotFound,
			fmt.Errorf("unknown hierarchy %q for dataset %s", req.HierarchyField, datasetID))
		return
	}

	ds, err := s.store.GetDataset(r.Context(), datasetID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return
	}

	s.logger.Debug("drilldown request",
		"dataset", datasetID, "hierarchy", req.HierarchyField,
		"level", req.Level, "path", req.Path)

	result, err := drill.AggregateLevel(ds.Rows, h, req.Level, req.Filters)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleEvents streams dataset-refresh pings as server-sent events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case datasetID := <-ch:
			fmt.Fprintf(w, "event: dataset-refresh\ndata: %s\n\n", datasetID)
			flusher.Flush()
		}
	}
}
