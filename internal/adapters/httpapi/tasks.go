package httpapi

import (
	"maps"
	"net/http"
	"slices"

	"go.trai.ch/shelf/internal/core/domain"
)

func (s *Server) handleTasks(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.deps.Tasks.Tasks())
}

// handleWarm starts a warm-up for the user named by ?user=, or for every
// configured user. The task outlives the request.
func (s *Server) handleWarm(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.deps.Config.Load()
	if err != nil {
		failWith(w, err)
		return
	}

	var users []domain.User
	if name := r.URL.Query().Get("user"); name != "" {
		u, err := cfg.UserOrCurrent(name)
		if err != nil {
			failWith(w, err)
			return
		}
		users = []domain.User{u}
	} else {
		for _, key := range slices.Sorted(maps.Keys(cfg.Users)) {
			u, _ := cfg.UserOrCurrent(key)
			users = append(users, u)
		}
	}
	if len(users) == 0 {
		failWith(w, domain.ErrNoUserSelected)
		return
	}

	task, err := s.deps.Tasks.Start(s.ctx, users)
	if err != nil {
		failWith(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, Response{Data: task})
}

func (s *Server) handleRemoveTask(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Tasks.Remove(r.PathValue("id")); err != nil {
		failWith(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
