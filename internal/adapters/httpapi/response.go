package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.trai.ch/shelf/internal/core/domain"
)

// Response is the envelope of every JSON endpoint except the relay routes,
// which keep the candidate service's own shape.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are sent; an encode failure cannot be reported.
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Data: data})
}

func created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Response{Data: data})
}

func fail(w http.ResponseWriter, status int, code, message, details string) {
	writeJSON(w, status, Response{Error: &Error{Code: code, Message: message, Details: details}})
}

func badRequest(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func notFound(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, details)
}

// failWith maps err onto a status code and writes it.
func failWith(w http.ResponseWriter, err error) {
	status, code := classify(err)
	message := err.Error()
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	fail(w, status, code, message, "")
}

var statusBySentinel = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidItemID, http.StatusBadRequest, "BAD_REQUEST"},
	{domain.ErrNoUserSelected, http.StatusBadRequest, "NO_USER"},
	{domain.ErrUnknownUser, http.StatusNotFound, "UNKNOWN_USER"},
	{domain.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrTaskAlreadyRunning, http.StatusConflict, "CONFLICT"},
	{domain.ErrMissingCredential, http.StatusUnauthorized, "MISSING_CREDENTIAL"},
	{domain.ErrAuthFailed, http.StatusBadGateway, "CATALOG_AUTH_FAILED"},
	{domain.ErrCatalogUnavailable, http.StatusBadGateway, "CATALOG_UNAVAILABLE"},
	{domain.ErrCandidateRequestFailed, http.StatusBadGateway, "UPSTREAM_FAILED"},
	{domain.ErrCandidateParseFailed, http.StatusBadGateway, "UPSTREAM_FAILED"},
	{domain.ErrDownloadFailed, http.StatusBadGateway, "DOWNLOAD_FAILED"},
	{domain.ErrStoreNotReady, http.StatusServiceUnavailable, "STORE_NOT_READY"},
}

func classify(err error) (int, string) {
	for _, s := range statusBySentinel {
		if matches(err, s.err) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// matches reports whether err is, or was wrapped from, target.
// zerr wrapping keeps the sentinel message but not its identity.
func matches(err, target error) bool {
	return errors.Is(err, target) || strings.Contains(err.Error(), target.Error())
}
