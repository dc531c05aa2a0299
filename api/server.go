package api

import (
	"encoding/json"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"

	"nextstop/game/config"
	"nextstop/game/service"
	"nextstop/game/session"
)

// Config holds the HTTP settings, decoded from the environment. Flags in
// main override the decoded values.
type Config struct {
	Host           string   `env:"HOST,default=0.0.0.0"`
	Port           int      `env:"PORT,default=8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=*"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Server is the REST API server.
type Server struct {
	configs  *config.Manager
	registry *session.Manager
	router   *mux.Router
	handler  http.Handler
}

// NewServer wires the routes over the registry and city map manager. The
// ws handler is mounted as-is at /ws.
func NewServer(cfg Config, configs *config.Manager, registry *session.Manager, ws http.Handler) *Server {
	s := &Server{
		configs:  configs,
		registry: registry,
		router:   mux.NewRouter(),
	}

	s.setupRoutes(ws)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	s.handler = handlers.LoggingHandler(os.Stdout, cors(s.router))

	return s
}

func (s *Server) setupRoutes(ws http.Handler) {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/cities", s.handleListCities).Methods("GET")

	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")

	s.router.Handle("/ws", ws)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.registry.Count(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListCities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cities": s.configs.ListCities(),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	coords := s.registry.List()

	infos := make([]service.SessionInfo, 0, len(coords))
	for _, coord := range coords {
		infos = append(infos, coord.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(infos),
		"sessions": infos,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, coord.Info())
}

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, coord.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	if err := s.registry.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
		"id":     id.String(),
	})
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*service.Coordinator, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session ID")
		return nil, false
	}

	coord, err := s.registry.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return coord, true
}
