package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.trai.ch/shelf/internal/core/domain"
)

const (
	redacted          = "[REDACTED]"
	maxClientLogBytes = 64 << 10
)

type configView struct {
	CacheDir    string              `json:"cacheDir"`
	Listen      string              `json:"listen"`
	CurrentUser string              `json:"currentUser"`
	CatalogFile string              `json:"catalogFile,omitempty"`
	Users       map[string]userView `json:"users"`
	SteamGrid   steamGridView       `json:"steamgriddb"`
}

type userView struct {
	Name    string `json:"name"`
	SteamID string `json:"steamId"`
	APIKey  string `json:"apiKey"`
}

type steamGridView struct {
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseUrl"`
	Relay   bool   `json:"relay"`
}

type itemView struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	RTimeLastPlayed int64  `json:"rtime_last_played"`
}

type gamesView struct {
	User  string     `json:"user"`
	Count int        `json:"count"`
	Games []itemView `json:"games"`
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	ok(w, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	cfg, err := s.deps.Config.Load()
	if err != nil {
		s.deps.Logger.Error(err)
		failWith(w, err)
		return
	}

	users := make(map[string]userView, len(cfg.Users))
	for key, u := range cfg.Users {
		users[key] = userView{Name: u.Name, SteamID: u.SteamID, APIKey: redact(u.APIKey)}
	}
	ok(w, configView{
		CacheDir:    cfg.CacheDir,
		Listen:      cfg.Listen,
		CurrentUser: cfg.CurrentUser,
		CatalogFile: cfg.CatalogFile,
		Users:       users,
		SteamGrid: steamGridView{
			APIKey:  redact(cfg.SteamGrid.APIKey),
			BaseURL: cfg.SteamGrid.BaseURL,
			Relay:   cfg.SteamGrid.Relay,
		},
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.deps.Config.Load()
	if err != nil {
		s.deps.Logger.Error(err)
		failWith(w, err)
		return
	}
	user, err := cfg.UserOrCurrent(r.URL.Query().Get("user"))
	if err != nil {
		failWith(w, err)
		return
	}

	items, err := s.deps.Catalog.GetItems(r.Context(), user)
	if err != nil {
		s.deps.Logger.Error(err, "user", user.Name)
		failWith(w, err)
		return
	}

	games := make([]itemView, len(items))
	for i, it := range items {
		games[i] = itemView{
			AppID:           int(it.ID),
			Name:            it.DisplayName,
			PlaytimeForever: it.PlaytimeMinutes,
			RTimeLastPlayed: it.LastPlayedAt,
		}
	}
	ok(w, gamesView{User: user.Name, Count: len(games), Games: games})
}

func (s *Server) handleClientLog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxClientLogBytes))
	if err != nil {
		badRequest(w, "Log entry too large", err.Error())
		return
	}
	var line bytes.Buffer
	if err := json.Compact(&line, body); err != nil {
		badRequest(w, "Log entry must be JSON", err.Error())
		return
	}

	s.logMu.Lock()
	defer s.logMu.Unlock()

	dst, err := s.clientLogWriter()
	if err == nil && dst != nil {
		line.WriteByte('\n')
		_, err = dst.Write(line.Bytes())
	}
	if err != nil {
		s.deps.Logger.Error(err)
		fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to write log entry", "")
		return
	}
	if dst == nil {
		s.deps.Logger.Info("client log", "entry", line.String())
	}
	ok(w, map[string]bool{"logged": true})
}

func parseID(w http.ResponseWriter, r *http.Request) (domain.ItemID, bool) {
	raw := r.PathValue("id")
	id, err := domain.ParseItemID(raw)
	if err != nil {
		badRequest(w, "Invalid item id", raw)
		return 0, false
	}
	return id, true
}
