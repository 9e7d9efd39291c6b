package server

import "github.com/go-chi/chi/v5"

// routes registers all API endpoints.
func (s *Server) routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleListDatasets)

		r.Route("/datasets/{datasetID}", func(r chi.Router) {
			r.Get("/hierarchies", s.handleListHierarchies)
			r.Post("/chart", s.handleChart)
			r.Post("/drilldown", s.handleDrilldown)
		})

		r.Get("/events", s.handleEvents)
	})
}
