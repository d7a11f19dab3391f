package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidItemID is returned when an item id cannot be parsed.
	ErrInvalidItemID = zerr.New("invalid item id")

	// ErrStoreCreateFailed is returned when the artwork store cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create artwork store")

	// ErrStoreReadFailed is returned when artwork cannot be read from the store.
	ErrStoreReadFailed = zerr.New("failed to read artwork")

	// ErrStoreWriteFailed is returned when artwork cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write artwork")

	// ErrStoreClearFailed is returned when the store cannot be cleared.
	ErrStoreClearFailed = zerr.New("failed to clear artwork store")

	// ErrStoreNotReady is returned when the store is used before Ensure succeeded.
	ErrStoreNotReady = zerr.New("artwork store is not initialized")

	// ErrDownloadFailed is returned when an artwork image cannot be downloaded.
	ErrDownloadFailed = zerr.New("failed to download artwork")

	// ErrMissingCredential is returned when the candidate service credential is not configured.
	ErrMissingCredential = zerr.New("artwork service credential is not configured")

	// ErrCandidateRequestFailed is returned when the candidate service cannot be queried.
	ErrCandidateRequestFailed = zerr.New("failed to query artwork candidates")

	// ErrCandidateParseFailed is returned when the candidate service response cannot be decoded.
	ErrCandidateParseFailed = zerr.New("failed to parse artwork candidates")

	// ErrAuthFailed is returned when the catalog rejects the configured credentials.
	ErrAuthFailed = zerr.New("catalog rejected credentials")

	// ErrCatalogUnavailable is returned when the catalog cannot be reached or decoded.
	ErrCatalogUnavailable = zerr.New("catalog is unavailable")

	// ErrUnknownUser is returned when the requested user is not configured.
	ErrUnknownUser = zerr.New("unknown user")

	// ErrNoUserSelected is returned when no user is given and none is configured as current.
	ErrNoUserSelected = zerr.New("no user selected")

	// ErrInvalidGeometry is returned when viewport geometry is malformed.
	ErrInvalidGeometry = zerr.New("invalid viewport geometry")

	// ErrRefRevoked is returned when an image reference is used after it was revoked.
	ErrRefRevoked = zerr.New("image reference revoked")

	// ErrRefNotFound is returned when an image reference handle is unknown.
	ErrRefNotFound = zerr.New("image reference not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid config")

	// ErrWatcherFailed is returned when the config file cannot be watched.
	ErrWatcherFailed = zerr.New("failed to watch config file")

	// ErrTaskNotFound is returned when a background task id is unknown.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrTaskAlreadyRunning is returned when a task of the same kind is already running.
	ErrTaskAlreadyRunning = zerr.New("task already running")

	// ErrServerFailed is returned when the HTTP server stops unexpectedly.
	ErrServerFailed = zerr.New("http server failed")
)
