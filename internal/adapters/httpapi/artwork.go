package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/shelf/internal/adapters/steamgrid"
	"go.trai.ch/shelf/internal/core/domain"
)

const maxPutBodyBytes = 16 << 10

type putRequest struct {
	ID  domain.ItemID `json:"id"`
	URL string        `json:"url"`
}

type storedView struct {
	ID   domain.ItemID `json:"id"`
	Size int           `json:"size"`
	ETag string        `json:"etag"`
}

type relayView struct {
	Success bool        `json:"success"`
	Data    *relayGrids `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type relayGrids struct {
	ID    domain.ItemID    `json:"id"`
	Grids []steamgrid.Grid `json:"grids"`
}

// etag is a strong validator derived from the artwork bytes.
func etag(data []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// notModified applies the weak comparison of If-None-Match: any listed tag,
// with or without the W/ prefix, or "*" matches.
func notModified(header, tag string) bool {
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

func writeImage(w http.ResponseWriter, r *http.Request, data []byte, cacheControl string) {
	tag := etag(data)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", cacheControl)
	if notModified(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	n, err := s.deps.Store.Count()
	if err != nil {
		failWith(w, err)
		return
	}
	ok(w, map[string]int{"entries": n})
}

func (s *Server) handleCacheEnsure(w http.ResponseWriter, _ *http.Request) {
	if err := s.deps.Store.Ensure(); err != nil {
		s.deps.Logger.Error(err)
		failWith(w, err)
		return
	}
	ok(w, map[string]bool{"ready": true})
}

func (s *Server) handleCachedArtwork(w http.ResponseWriter, r *http.Request) {
	id, valid := parseID(w, r)
	if !valid {
		return
	}
	data, err := s.deps.Store.Get(id)
	if err != nil {
		s.deps.Logger.Error(err, "item", int(id))
		failWith(w, err)
		return
	}
	if data == nil {
		notFound(w, "No stored artwork", id.String())
		return
	}
	writeImage(w, r, data, "private, no-cache")
}

func (s *Server) handleCacheArtwork(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPutBodyBytes)).Decode(&req); err != nil {
		badRequest(w, "Invalid request body", err.Error())
		return
	}
	if req.ID <= 0 || req.URL == "" {
		badRequest(w, "id and url are required", "")
		return
	}

	data, err := s.deps.Store.Put(r.Context(), req.ID, req.URL)
	switch {
	case err != nil:
		s.deps.Logger.Error(err, "item", int(req.ID))
		failWith(w, err)
	case data == nil:
		failWith(w, domain.ErrDownloadFailed)
	default:
		created(w, storedView{ID: req.ID, Size: len(data), ETag: etag(data)})
	}
}

func (s *Server) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	n, err := s.deps.Store.Clear()
	if err != nil {
		s.deps.Logger.Error(err)
		failWith(w, err)
		return
	}
	s.deps.Logger.Info("artwork cache cleared", "entries", n)
	ok(w, map[string]int{"removed": n})
}

// handleArtwork runs the full resolution. Bytes are served once and their
// reference is released right after; remote artwork is a redirect.
func (s *Server) handleArtwork(w http.ResponseWriter, r *http.Request) {
	id, valid := parseID(w, r)
	if !valid {
		return
	}

	ref := s.deps.Resolver.Resolve(r.Context(), id)
	switch {
	case ref == nil:
		notFound(w, "No artwork found", id.String())
	case ref.IsRemote():
		http.Redirect(w, r, ref.URL, http.StatusFound)
	default:
		defer func() {
			if err := s.deps.Table.RevokeRef(*ref); err != nil {
				s.deps.Logger.Debug("artwork reference already released", "ref", ref.String())
			}
		}()
		data, err := s.deps.Table.Bytes(ref.Handle)
		if err != nil {
			failWith(w, err)
			return
		}
		writeImage(w, r, data, "private, max-age=3600")
	}
}

func (s *Server) handleRelayArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseItemID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, relayView{Error: err.Error()})
		return
	}

	resp, err := s.deps.Relay.Relay(r.Context(), id, r.Header.Get(steamgrid.KeyHeader))
	if err != nil {
		s.deps.Logger.Warn("artwork relay failed", "item", int(id), "error", err.Error())
		status, _ := classify(err)
		writeJSON(w, status, relayView{Error: err.Error()})
		return
	}

	grids := resp.Data
	if grids == nil {
		grids = []steamgrid.Grid{}
	}
	writeJSON(w, http.StatusOK, relayView{Success: true, Data: &relayGrids{ID: id, Grids: grids}})
}

func (s *Server) handleRelayGrids(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseItemID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, steamgrid.GridsResponse{Errors: []string{err.Error()}})
		return
	}

	resp, err := s.deps.Relay.Relay(r.Context(), id, r.Header.Get(steamgrid.KeyHeader))
	if err != nil {
		s.deps.Logger.Warn("grid relay failed", "item", int(id), "error", err.Error())
		status, _ := classify(err)
		writeJSON(w, status, steamgrid.GridsResponse{Errors: []string{err.Error()}})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
