// Package warmer fills the artwork store ahead of time as a tracked background task.
package warmer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskName is the name of warm-up tasks.
const TaskName = "Refresh all artwork"

// Warmer resolves artwork for every item of every configured user that is
// not stored yet, one item at a time with a pause in between.
// At most one warm-up runs at a time.
type Warmer struct {
	catalog  ports.Catalog
	store    ports.ArtworkStore
	resolver ports.ArtworkResolver
	logger   ports.Logger

	clock     clockwork.Clock
	delay     time.Duration
	retention time.Duration

	mu          sync.Mutex
	tasks       map[string]*domain.Task
	running     string
	subscribers map[int]func([]domain.Task)
	nextSub     int
	wg          sync.WaitGroup
}

// Option configures a Warmer.
type Option func(*Warmer)

// WithClock replaces the clock used for pauses and timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(w *Warmer) {
		w.clock = c
	}
}

// WithDelay sets the pause between two items.
func WithDelay(d time.Duration) Option {
	return func(w *Warmer) {
		w.delay = d
	}
}

// WithRetention sets how long finished tasks are listed.
func WithRetention(d time.Duration) Option {
	return func(w *Warmer) {
		w.retention = d
	}
}

// New creates a Warmer.
func New(
	catalog ports.Catalog,
	store ports.ArtworkStore,
	resolver ports.ArtworkResolver,
	logger ports.Logger,
	opts ...Option,
) *Warmer {
	w := &Warmer{
		catalog:     catalog,
		store:       store,
		resolver:    resolver,
		logger:      logger,
		clock:       clockwork.NewRealClock(),
		delay:       domain.WarmDelay,
		retention:   domain.TaskRetention,
		tasks:       make(map[string]*domain.Task),
		subscribers: make(map[int]func([]domain.Task)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches a warm-up for users in the background and returns its initial snapshot.
func (w *Warmer) Start(ctx context.Context, users []domain.User) (domain.Task, error) {
	task, err := w.create()
	if err != nil {
		return domain.Task{}, err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		_ = w.run(ctx, task.ID, users)
	}()
	return task, nil
}

// Run performs a warm-up for users and returns the final snapshot.
// The returned error is set when the task failed.
func (w *Warmer) Run(ctx context.Context, users []domain.User) (domain.Task, error) {
	task, err := w.create()
	if err != nil {
		return domain.Task{}, err
	}

	runErr := w.run(ctx, task.ID, users)

	final, _ := w.Task(task.ID)
	return final, runErr
}

// Wait blocks until every background warm-up returned.
func (w *Warmer) Wait() {
	w.wg.Wait()
}

// Tasks prunes expired tasks and lists the rest, newest first.
func (w *Warmer) Tasks() []domain.Task {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked()
	return w.snapshotLocked()
}

// Task returns the task with id.
func (w *Warmer) Task(id string) (domain.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tasks[id]
	if !ok {
		return domain.Task{}, zerr.With(domain.ErrTaskNotFound, "task", id)
	}
	return *t, nil
}

// Remove forgets a finished task.
func (w *Warmer) Remove(id string) error {
	w.mu.Lock()
	t, ok := w.tasks[id]
	switch {
	case !ok:
		w.mu.Unlock()
		return zerr.With(domain.ErrTaskNotFound, "task", id)
	case !t.Status.Done():
		w.mu.Unlock()
		return zerr.With(domain.ErrTaskAlreadyRunning, "task", id)
	}
	delete(w.tasks, id)
	w.mu.Unlock()

	w.publish()
	return nil
}

// Subscribe registers fn for task list changes and returns a function that
// removes it. fn receives the current list immediately.
func (w *Warmer) Subscribe(fn func([]domain.Task)) func() {
	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subscribers[id] = fn
	tasks := w.snapshotLocked()
	w.mu.Unlock()

	fn(tasks)
	return func() {
		w.mu.Lock()
		delete(w.subscribers, id)
		w.mu.Unlock()
	}
}

func (w *Warmer) create() (domain.Task, error) {
	w.mu.Lock()
	if w.running != "" {
		id := w.running
		w.mu.Unlock()
		return domain.Task{}, zerr.With(domain.ErrTaskAlreadyRunning, "task", id)
	}

	t := &domain.Task{
		ID:        uuid.NewString(),
		Name:      TaskName,
		Status:    domain.TaskPending,
		CreatedAt: w.clock.Now(),
	}
	w.tasks[t.ID] = t
	w.running = t.ID
	snapshot := *t
	w.mu.Unlock()

	w.publish()
	return snapshot, nil
}

func (w *Warmer) run(ctx context.Context, id string, users []domain.User) error {
	w.update(id, func(t *domain.Task) {
		t.Status = domain.TaskRunning
		t.StartedAt = w.clock.Now()
		t.Message = "Collecting items"
	})

	pending, err := w.collect(ctx, users)
	if err != nil {
		return w.finish(id, err)
	}

	w.update(id, func(t *domain.Task) {
		t.Total = len(pending)
		t.Message = fmt.Sprintf("%d items without artwork", len(pending))
	})

	stored := 0
	for i, it := range pending {
		if i > 0 && w.delay > 0 {
			select {
			case <-ctx.Done():
			case <-w.clock.After(w.delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return w.finish(id, err)
		}

		if w.resolver.Prime(ctx, it.ID) {
			stored++
		}
		w.update(id, func(t *domain.Task) {
			t.Progress = i + 1
			t.Message = "Processing " + it.DisplayName
		})
	}

	w.logger.Info("artwork warm-up finished", "stored", stored, "items", len(pending))
	w.update(id, func(t *domain.Task) {
		t.Status = domain.TaskCompleted
		t.EndedAt = w.clock.Now()
		t.Message = fmt.Sprintf("Stored artwork for %d of %d items", stored, len(pending))
	})
	w.release(id)
	return nil
}

// collect gathers the items of all users that have no stored artwork.
// A user whose catalog fails is skipped; the task fails only when every user failed.
func (w *Warmer) collect(ctx context.Context, users []domain.User) ([]domain.Item, error) {
	seen := make(map[domain.ItemID]struct{})
	var pending []domain.Item
	var errs []error

	for _, u := range users {
		items, err := w.catalog.GetItems(ctx, u)
		if err != nil {
			w.logger.Warn("skipping user, catalog unavailable", "user", u.Name, "error", err.Error())
			errs = append(errs, zerr.With(err, "user", u.Name))
			continue
		}
		for _, it := range items {
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}

			ok, err := w.store.Has(it.ID)
			if err != nil {
				w.logger.Warn("artwork store read failed", "item", int(it.ID), "error", err.Error())
			}
			if ok {
				continue
			}
			pending = append(pending, it)
		}
	}

	if len(users) > 0 && len(errs) == len(users) {
		return nil, errors.Join(errs...)
	}
	return pending, nil
}

func (w *Warmer) finish(id string, err error) error {
	w.logger.Error(err, "task", id)
	w.update(id, func(t *domain.Task) {
		t.Status = domain.TaskFailed
		t.EndedAt = w.clock.Now()
		t.Error = err.Error()
	})
	w.release(id)
	return err
}

func (w *Warmer) release(id string) {
	w.mu.Lock()
	if w.running == id {
		w.running = ""
	}
	w.mu.Unlock()
}

func (w *Warmer) update(id string, mutate func(*domain.Task)) {
	w.mu.Lock()
	if t, ok := w.tasks[id]; ok {
		mutate(t)
	}
	w.mu.Unlock()

	w.publish()
}

func (w *Warmer) publish() {
	w.mu.Lock()
	tasks := w.snapshotLocked()
	subs := make([]func([]domain.Task), 0, len(w.subscribers))
	for _, fn := range w.subscribers {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(tasks)
	}
}

// pruneLocked drops finished tasks older than the retention.
func (w *Warmer) pruneLocked() {
	cutoff := w.clock.Now().Add(-w.retention)
	for id, t := range w.tasks {
		if t.Status.Done() && t.EndedAt.Before(cutoff) {
			delete(w.tasks, id)
		}
	}
}

func (w *Warmer) snapshotLocked() []domain.Task {
	out := make([]domain.Task, 0, len(w.tasks))
	for _, t := range w.tasks {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b domain.Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
