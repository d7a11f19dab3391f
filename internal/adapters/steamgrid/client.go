// Package steamgrid implements ports.CandidateSource against the SteamGridDB v2 API.
package steamgrid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultBaseURL is the public SteamGridDB API.
	DefaultBaseURL = "https://www.steamgriddb.com/api/v2"

	// KeyHeader carries the caller's credential when talking to a relay.
	KeyHeader = "X-SteamGridDB-Key"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client queries grid candidates by Steam application id.
// In relay mode the relay owns the credential, so requests go out without one.
type Client struct {
	baseURL    string
	relay      bool
	httpClient *http.Client

	mu     sync.RWMutex
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRelay marks baseURL as a relay that injects the credential itself.
func WithRelay() Option {
	return func(c *Client) {
		c.relay = true
	}
}

// NewClient creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCredential replaces the API key.
func (c *Client) SetCredential(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = strings.TrimSpace(key)
}

func (c *Client) credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// GetCandidates lists the grids known for id.
// An unknown id yields no candidates and no error.
func (c *Client) GetCandidates(ctx context.Context, id domain.ItemID) ([]domain.GridCandidate, error) {
	key := c.credential()
	if key == "" && !c.relay {
		return nil, domain.ErrMissingCredential
	}

	resp, err := c.Fetch(ctx, id, key)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GridCandidate, 0, len(resp.Data))
	for _, g := range resp.Data {
		if g.URL == "" {
			continue
		}
		out = append(out, g.Candidate())
	}
	return out, nil
}

// Relay fetches the grids of id on behalf of a caller. The caller's key wins
// over the configured credential.
func (c *Client) Relay(ctx context.Context, id domain.ItemID, key string) (*GridsResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = c.credential()
	}
	if key == "" && !c.relay {
		return nil, domain.ErrMissingCredential
	}
	return c.Fetch(ctx, id, key)
}

// Fetch performs the raw grids request for id using key.
func (c *Client) Fetch(ctx context.Context, id domain.ItemID, key string) (*GridsResponse, error) {
	url := c.baseURL + "/grids/steam/" + id.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCandidateRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")
	if key != "" {
		if c.relay {
			req.Header.Set(KeyHeader, key)
		} else {
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCandidateRequestFailed.Error()), "item", int(id))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return &GridsResponse{Success: true}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCandidateRequestFailed.Error())
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrCandidateRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "item", int(id))
	}

	var out GridsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCandidateParseFailed.Error()), "item", int(id))
	}
	if !out.Success {
		apiErr := zerr.With(domain.ErrCandidateRequestFailed, "item", int(id))
		return nil, zerr.With(apiErr, "errors", strings.Join(out.Errors, "; "))
	}

	return &out, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
