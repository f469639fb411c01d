package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func (s *Server) collectionRoutes(c collection) chi.Router {
	r := chi.NewRouter()
	r.Post("/", s.createEntity(c.table))
	r.Get("/", s.listEntities(c.table))
	r.Get("/{id}", s.getEntity(c.table))
	r.Put("/{id}", s.updateEntity(c.table))
	r.Delete("/{id}", s.deleteEntity(c.table))
	return r
}

// decodeEntity reads the request body into a fresh entity for the table.
func decodeEntity(w http.ResponseWriter, r *http.Request, name string) (any, bool) {
	e, err := types.NewEntity(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return nil, false
	}
	if !parseBody(w, r, e) {
		return nil, false
	}
	return e, true
}

func (s *Server) createEntity(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.tracker.GetTable(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		e, ok := decodeEntity(w, r, name)
		if !ok {
			return
		}
		created, err := table.Create(r.Context(), e)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) listEntities(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.tracker.GetTable(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		all, err := table.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func (s *Server) getEntity(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.tracker.GetTable(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		e, err := table.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func (s *Server) updateEntity(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.tracker.GetTable(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		e, ok := decodeEntity(w, r, name)
		if !ok {
			return
		}
		updated, err := table.Update(r.Context(), chi.URLParam(r, "id"), e)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) deleteEntity(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := s.tracker.GetTable(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := table.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// metrics serves the per-project quality report.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	report, err := s.tracker.Metrics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
