package httpapi

import "net/http"

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/games", s.handleGames)

	mux.HandleFunc("GET /api/cache", s.handleCacheStats)
	mux.HandleFunc("POST /api/cache/ensure", s.handleCacheEnsure)
	mux.HandleFunc("GET /api/cache/artwork/{id}", s.handleCachedArtwork)
	mux.HandleFunc("POST /api/cache/artwork", s.handleCacheArtwork)
	mux.HandleFunc("DELETE /api/cache/artwork", s.handleCacheClear)

	mux.HandleFunc("GET /api/artwork/{id}", s.handleArtwork)

	// The grids route mirrors the candidate service path so that clients in
	// relay mode can use this server as their base URL.
	mux.HandleFunc("GET /api/steamgrid/artwork/{id}", s.handleRelayArtwork)
	mux.HandleFunc("GET /api/steamgrid/grids/steam/{id}", s.handleRelayGrids)

	mux.HandleFunc("GET /api/tasks", s.handleTasks)
	mux.HandleFunc("POST /api/tasks/warm", s.handleWarm)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleRemoveTask)

	mux.HandleFunc("POST /api/logs", s.handleClientLog)
}
