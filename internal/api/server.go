// internal/api/server.go

// Package api serves the read-only query surface over the cached snapshot.
// It never contacts the device and never surfaces device errors.
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/deye-bridge/internal/cache"
	"github.com/tamzrod/deye-bridge/internal/status"
)

// BreakerState is the read-only view the health endpoint needs.
type BreakerState interface {
	State() (failures int, openUntil time.Time)
}

// Server answers queries from the cache only.
type Server struct {
	store    *cache.Store
	breaker  BreakerState
	regs     int
	decimals int
	log      *logrus.Logger
}

func New(store *cache.Store, breaker BreakerState, regsLoaded, roundDecimals int, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		store:    store,
		breaker:  breaker,
		regs:     regsLoaded,
		decimals: roundDecimals,
		log:      log,
	}
}

// Routes installs the query endpoints on mux. metrics may be nil.
func (s *Server) Routes(mux *http.ServeMux, metrics http.Handler) {
	mux.HandleFunc("/deye-registers", s.handleRegisters)
	mux.HandleFunc("/health", s.handleHealth)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
}

// handleRegisters serves the latest committed snapshot as one object per
// measurement. Measurements are sorted by name; a field literally named
// "name" overrides the measurement label, like the original proxy.
func (s *Server) handleRegisters(w http.ResponseWriter, r *http.Request) {
	snap, _, _ := s.store.Read()

	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	payload := make([]map[string]any, 0, len(names))
	for _, name := range names {
		obj := map[string]any{"name": name}
		for f, v := range snap[name] {
			obj[f] = v
		}
		payload = append(payload, obj)
	}

	s.writeJSON(w, payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, ts, _ := s.store.Read()
	failures, openUntil := s.breaker.State()

	doc := status.Encode(status.Snapshot{
		CacheTime:        ts,
		BreakerFailures:  failures,
		BreakerOpenUntil: openUntil,
		RegsLoaded:       s.regs,
		RoundDecimals:    s.decimals,
	}, time.Now())

	s.writeJSON(w, doc)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnf("response encode failed: %v", err)
	}
}
