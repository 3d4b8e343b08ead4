package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ccsim/castersim/engine"
)

// Server serves the three REST resources plus a health check (spec.md §6).
type Server struct {
	store *Store
	log   *logrus.Logger
	mux   *http.ServeMux
}

// NewServer builds a Server backed by store.
func NewServer(store *Store, log *logrus.Logger) *Server {
	s := &Server{store: store, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/api/heatschedule", s.handleHeatSchedule)
	s.mux.HandleFunc("/api/cutschedule", s.handleCutSchedule)
	s.mux.HandleFunc("/api/products", s.handleProducts)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleHeatSchedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.store.HeatSchedule())
	case http.MethodPost:
		var heats []*engine.Heat
		if !decodeJSON(w, r, &heats) {
			return
		}
		s.store.ReplaceHeatSchedule(heats)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCutSchedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.store.CutSchedule())
	case http.MethodPost:
		var products []*engine.Product
		if !decodeJSON(w, r, &products) {
			return
		}
		s.store.ReplaceCutSchedule(products)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.store.Products())
	case http.MethodPost:
		var products []*engine.Product
		if !decodeJSON(w, r, &products) {
			return
		}
		s.store.ReplaceProducts(products)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
