// Package linear prints the library and task progress as plain lines for
// pipes, CI logs, and dumb terminals.
package linear

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/ui/output"
	"go.trai.ch/shelf/internal/ui/style"
)

// Renderer writes listings to stdout and task progress to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	tasks map[string]domain.Task
}

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	profile termenv.Profile
}

// WithProfile fixes the color profile instead of reading NO_COLOR.
func WithProfile(p termenv.Profile) Option {
	return func(o *rendererOptions) {
		o.profile = p
	}
}

// NewRenderer creates a Renderer. Nil writers default to os.Stdout and os.Stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	o := rendererOptions{profile: output.Profile(output.Plain)}
	for _, opt := range opts {
		opt(&o)
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, o.profile),
		tasks:  make(map[string]domain.Task),
	}
}

// PrintItems writes one line per item. cached reports whether artwork is stored
// for an item; nil marks every item as uncached.
func (r *Renderer) PrintItems(items []domain.Item, cached func(domain.ItemID) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	withArt := 0
	for _, it := range items {
		mark := r.output.String(style.Circle).Faint().String()
		if cached != nil && cached(it.ID) {
			mark = r.output.String(style.Dot).Foreground(termenv.ANSIGreen).String()
			withArt++
		}
		_, _ = fmt.Fprintf(r.stdout, "%s %-8s %s  %s\n",
			mark, strconv.Itoa(int(it.ID)), it.DisplayName, describe(it))
	}

	_, _ = fmt.Fprintf(r.stderr, "%d items, %d with stored artwork\n", len(items), withArt)
}

// describe summarizes playtime and last play.
func describe(it domain.Item) string {
	played := "never played"
	if it.LastPlayedAt > 0 {
		played = "last played " + time.Unix(it.LastPlayedAt, 0).UTC().Format(time.DateOnly)
	}
	if it.PlaytimeMinutes == 0 {
		return played
	}
	return fmt.Sprintf("%s, %s", formatPlaytime(it.PlaytimeMinutes), played)
}

func formatPlaytime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

// OnTasks prints the transitions between the previous and the given task snapshot.
// It is meant to be passed to the warmer's Subscribe.
func (r *Renderer) OnTasks(tasks []domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tasks {
		prev, seen := r.tasks[t.ID]
		r.tasks[t.ID] = t
		r.printTransitionLocked(prev, seen, t)
	}
}

// printTransitionLocked must be called with r.mu held.
func (r *Renderer) printTransitionLocked(prev domain.Task, seen bool, t domain.Task) {
	prefix := r.output.String(fmt.Sprintf("[%s]", t.Name)).Faint().String()

	switch t.Status {
	case domain.TaskPending:
		return
	case domain.TaskRunning:
		if !seen || prev.Status == domain.TaskPending {
			_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
		}
		if t.Message != "" && (t.Progress != prev.Progress || t.Message != prev.Message) {
			_, _ = fmt.Fprintf(r.stdout, "[%s] %s (%d/%d)\n", t.Name, t.Message, t.Progress, t.Total)
		}
	case domain.TaskCompleted:
		if seen && prev.Status == domain.TaskCompleted {
			return
		}
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v: %s\n",
			prefix, symbol, elapsed(t), t.Message)
	case domain.TaskFailed:
		if seen && prev.Status == domain.TaskFailed {
			return
		}
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %s\n",
			prefix, symbol, elapsed(t), t.Error)
	}
}

func elapsed(t domain.Task) time.Duration {
	if t.StartedAt.IsZero() || t.EndedAt.IsZero() {
		return 0
	}
	return t.EndedAt.Sub(t.StartedAt).Round(time.Millisecond)
}
