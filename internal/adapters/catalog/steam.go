// Package catalog implements ports.Catalog against the Steam Web API and a local YAML file.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultSteamBaseURL is the public Steam Web API.
	DefaultSteamBaseURL = "https://api.steampowered.com"

	ownedGamesPath      = "/IPlayerService/GetOwnedGames/v1/"
	defaultSteamTimeout = 30 * time.Second
	maxCatalogBodyBytes = 32 << 20
)

// ownedGamesResponse is the GetOwnedGames envelope.
// A private profile answers with an empty response object.
type ownedGamesResponse struct {
	Response struct {
		GameCount *int        `json:"game_count"`
		Games     []ownedGame `json:"games"`
	} `json:"response"`
}

type ownedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	RTimeLastPlayed int64  `json:"rtime_last_played"`
}

// Steam lists the games owned by a Steam account.
type Steam struct {
	baseURL    string
	httpClient *http.Client
}

// NewSteam creates a Steam catalog. An empty baseURL selects DefaultSteamBaseURL.
func NewSteam(baseURL string, timeout time.Duration) *Steam {
	if timeout <= 0 {
		timeout = defaultSteamTimeout
	}
	return NewSteamWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewSteamWithClient creates a Steam catalog that sends requests through client.
func NewSteamWithClient(baseURL string, client *http.Client) *Steam {
	if baseURL == "" {
		baseURL = DefaultSteamBaseURL
	}
	return &Steam{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// GetItems returns the games owned by user.
func (s *Steam) GetItems(ctx context.Context, user domain.User) ([]domain.Item, error) {
	if user.APIKey == "" || user.SteamID == "" {
		return nil, zerr.With(zerr.With(domain.ErrAuthFailed, "user", user.Name), "reason", "missing steam id or api key")
	}

	q := url.Values{}
	q.Set("key", user.APIKey)
	q.Set("steamid", user.SteamID)
	q.Set("include_appinfo", "true")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+ownedGamesPath+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogUnavailable.Error())
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// The request URL carries the key; report the user instead.
		return nil, zerr.With(zerr.Wrap(stripURL(err), domain.ErrCatalogUnavailable.Error()), "user", user.Name)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		authErr := zerr.With(domain.ErrAuthFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(authErr, "user", user.Name)
	case resp.StatusCode != http.StatusOK:
		apiErr := zerr.With(domain.ErrCatalogUnavailable, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "user", user.Name)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBodyBytes))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogUnavailable.Error())
	}

	var out ownedGamesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogUnavailable.Error()), "user", user.Name)
	}
	if out.Response.GameCount == nil && out.Response.Games == nil {
		emptyErr := zerr.With(domain.ErrCatalogUnavailable, "user", user.Name)
		return nil, zerr.With(emptyErr, "reason", "empty response, the profile may be private")
	}

	items := make([]domain.Item, 0, len(out.Response.Games))
	for _, g := range out.Response.Games {
		items = append(items, domain.Item{
			ID:              domain.ItemID(g.AppID),
			DisplayName:     g.Name,
			PlaytimeMinutes: g.PlaytimeForever,
			LastPlayedAt:    g.RTimeLastPlayed,
		})
	}
	return items, nil
}

// stripURL drops the request URL from transport errors.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
