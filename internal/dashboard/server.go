package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/dmarrero/acbtrack/internal/roster"
	"github.com/dmarrero/acbtrack/internal/storage"
)

// Server exposes the unified player records as a read-only JSON API.
type Server struct {
	store  *storage.Storage
	logger zerolog.Logger
}

// NewServer creates a dashboard server over the given stage storage.
func NewServer(store *storage.Storage, logger zerolog.Logger) *Server {
	return &Server{
		store:  store,
		logger: logger.With().Str("component", "dashboard").Logger(),
	}
}

// Router builds the chi router with all dashboard routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(15 * time.Second))

	// Read-only API, open to any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handleListPlayers)
		r.Get("/players/{code}", s.handleGetPlayer)
		r.Get("/filters", s.handleFilters)
	})

	return r
}

// ListenAndServe runs the dashboard until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("dashboard listening")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// loadPlayers reads the unified stage fresh on each request; pipeline runs
// replace the file wholesale so there is nothing worth caching.
func (s *Server) loadPlayers() ([]roster.UnifiedRecord, error) {
	var players []roster.UnifiedRecord
	if err := s.store.LoadLatest(storage.StageUnified, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListPlayers serves the filtered player list.
// GET /api/players?search=&team=&state=&sort=name|team
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.loadPlayers()
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	team := r.URL.Query().Get("team")
	state := r.URL.Query().Get("state")

	filtered := make([]roster.UnifiedRecord, 0, len(players))
	for _, p := range players {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if team != "" && p.Team != team {
			continue
		}
		if state != "" && p.HometownState != state {
			continue
		}
		filtered = append(filtered, p)
	}

	sortBy := r.URL.Query().Get("sort")
	if sortBy != "team" {
		sortBy = "name"
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if sortBy == "team" {
			return filtered[i].Team < filtered[j].Team
		}
		return filtered[i].Name < filtered[j].Name
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(filtered),
		"players": filtered,
	})
}

// handleGetPlayer serves one player by code.
// GET /api/players/{code}
func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	players, err := s.loadPlayers()
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	code := chi.URLParam(r, "code")
	for _, p := range players {
		if p.Code == code {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not found"})
}

// handleFilters serves the distinct teams and hometown states for the
// dashboard's filter dropdowns.
// GET /api/filters
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	players, err := s.loadPlayers()
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	teamSet := make(map[string]bool)
	stateSet := make(map[string]bool)
	for _, p := range players {
		if p.Team != "" {
			teamSet[p.Team] = true
		}
		if p.HometownState != "" {
			stateSet[p.HometownState] = true
		}
	}

	writeJSON(w, http.StatusOK, map[string][]string{
		"teams":  sortedKeys(teamSet),
		"states": sortedKeys(stateSet),
	})
}

// writeLoadError maps a missing unified stage to 503 (the pipeline hasn't
// produced data yet) and anything else to 500.
func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNoStage) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no joined data yet, run the pipeline first"})
		return
	}
	s.logger.Error().Err(err).Msg("loading unified stage")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "loading player data"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
