// Package artstore persists artwork bytes per item in a bbolt database.
package artstore

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
	bolt "go.etcd.io/bbolt"
)

const (
	downloadTimeout = 30 * time.Second
	openTimeout     = time.Second
	// maxArtworkBytes caps a single download.
	maxArtworkBytes = 16 << 20
)

var bucketArtwork = []byte("artwork")

// Store implements ports.ArtworkStore.
// An empty root selects memory-only mode, which keeps entries for the lifetime of the process.
type Store struct {
	root       string
	httpClient *http.Client
	logger     ports.Logger

	mu  sync.RWMutex
	db  *bolt.DB
	mem map[domain.ItemID][]byte
}

// NewStore creates a store rooted at root. No IO happens until Ensure.
func NewStore(root string, logger ports.Logger) *Store {
	return newStoreWithClient(root, logger, &http.Client{Timeout: downloadTimeout})
}

func newStoreWithClient(root string, logger ports.Logger, client *http.Client) *Store {
	return &Store{
		root:       root,
		httpClient: client,
		logger:     logger,
	}
}

// Ensure creates the cache root, the database and its bucket when missing.
func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == "" {
		if s.mem == nil {
			s.mem = make(map[domain.ItemID][]byte)
		}
		return nil
	}

	if s.db == nil {
		if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
			return s.ensureFailed(err)
		}
		db, err := bolt.Open(domain.ArtworkDBPath(s.root), domain.PrivateFilePerm, &bolt.Options{Timeout: openTimeout})
		if err != nil {
			return s.ensureFailed(err)
		}
		s.db = db
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArtwork)
		return err
	})
	if err != nil {
		return s.ensureFailed(err)
	}
	return nil
}

func (s *Store) ensureFailed(err error) error {
	err = zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "root", s.root)
	s.logger.Error(err)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns the stored bytes for id, or nil when absent.
func (s *Store) Get(id domain.ItemID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.mem != nil {
		data, ok := s.mem[id]
		if !ok {
			return nil, nil
		}
		return clone(data), nil
	}
	if s.db == nil {
		return nil, domain.ErrStoreNotReady
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArtwork)
		if b == nil {
			return domain.ErrStoreNotReady
		}
		if v := b.Get(key(id)); v != nil {
			data = clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "item", int(id))
	}
	return data, nil
}

// Has reports whether an entry exists for id.
func (s *Store) Has(id domain.ItemID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.mem != nil {
		_, ok := s.mem[id]
		return ok, nil
	}
	if s.db == nil {
		return false, domain.ErrStoreNotReady
	}

	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketArtwork); b != nil {
			ok = b.Get(key(id)) != nil
		}
		return nil
	})
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return ok, nil
}

// Put downloads sourceURL and stores it under id, replacing any previous entry.
// A failed download is logged and reported as nil, nil.
func (s *Store) Put(ctx context.Context, id domain.ItemID, sourceURL string) ([]byte, error) {
	data, err := s.download(ctx, sourceURL)
	if err != nil {
		s.logger.Warn("artwork download failed", "item", id, "url", sourceURL, "error", err)
		return nil, nil
	}

	if err := s.write(id, data); err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *Store) write(id domain.ItemID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mem != nil {
		s.mem[id] = data
		return nil
	}
	if s.db == nil {
		return domain.ErrStoreNotReady
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketArtwork)
		if err != nil {
			return err
		}
		return b.Put(key(id), data)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "item", int(id))
	}
	return nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.mem != nil {
		return len(s.mem), nil
	}
	if s.db == nil {
		return 0, domain.ErrStoreNotReady
	}

	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketArtwork); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return n, nil
}

// Clear removes every entry in one transaction and returns how many were removed.
func (s *Store) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mem != nil {
		n := len(s.mem)
		clear(s.mem)
		return n, nil
	}
	if s.db == nil {
		return 0, domain.ErrStoreNotReady
	}

	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketArtwork); b != nil {
			n = b.Stats().KeyN
			if err := tx.DeleteBucket(bucketArtwork); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketArtwork)
		return err
	})
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrStoreClearFailed.Error())
	}
	return n, nil
}

func (s *Store) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, zerr.With(domain.ErrDownloadFailed, "status_code", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtworkBytes+1))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	if len(data) == 0 {
		return nil, zerr.With(domain.ErrDownloadFailed, "reason", "empty body")
	}
	if len(data) > maxArtworkBytes {
		return nil, zerr.With(domain.ErrDownloadFailed, "reason", "image too large")
	}
	return data, nil
}

func key(id domain.ItemID) []byte {
	return []byte(id.String())
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
