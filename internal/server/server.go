// ABOUTME: HTTP handler for the self-hosted sync server.
// ABOUTME: POST /sync: shared-secret auth, LWW ingest, watermark delta reply.

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lumenote/lumenote/internal/middleware"
	"github.com/lumenote/lumenote/internal/sync"
)

type Server struct {
	storage *Storage
	log     zerolog.Logger

	// requiredKey, when non-empty, is the only accepted credential. When
	// empty any key is accepted and simply partitions the data, matching a
	// trust-the-network self-hosted deployment.
	requiredKey string

	// now is swapped in tests to pin server time.
	now func() int64
}

func New(storage *Storage, requiredKey string, log zerolog.Logger) *Server {
	return &Server{
		storage:     storage,
		requiredKey: requiredKey,
		log:         log,
		now:         func() int64 { return time.Now().UnixMilli() },
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/sync", s.handleSync)
	})

	return r
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(sync.KeyHeader)
	if key == "" {
		http.Error(w, "missing "+sync.KeyHeader+" header", http.StatusUnauthorized)
		return
	}
	if s.requiredKey != "" && key != s.requiredKey {
		http.Error(w, "invalid sync key", http.StatusUnauthorized)
		return
	}

	var req sync.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	now := s.now()

	for _, rec := range req.Workspaces {
		if err := s.storage.UpsertWorkspace(key, rec); err != nil {
			s.log.Error().Err(err).Str("workspace", rec.ID).Msg("workspace upsert failed")
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
	}
	for _, rec := range req.Folders {
		if err := s.storage.UpsertFolder(key, rec); err != nil {
			s.log.Error().Err(err).Str("folder", rec.ID).Msg("folder upsert failed")
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
	}
	for _, rec := range req.Notes {
		if err := s.storage.UpsertNote(key, rec); err != nil {
			s.log.Error().Err(err).Str("note", rec.ID).Msg("note upsert failed")
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
	}

	resp, err := s.storage.Delta(key, req.LastSyncTime, now)
	if err != nil {
		s.log.Error().Err(err).Msg("delta query failed")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	s.log.Debug().
		Int("notes_in", len(req.Notes)).
		Int("folders_in", len(req.Folders)).
		Int("workspaces_in", len(req.Workspaces)).
		Int("notes_out", len(resp.Notes)).
		Int64("since", req.LastSyncTime).
		Msg("sync exchange")

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
