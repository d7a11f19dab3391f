package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
		{
			name:         "nil",
			err:          nil,
			wantMessages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantMessages, got)
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	err := zerr.With(zerr.With(zerr.New("base error"), "key1", "value1"), "key2", 42)

	entries := logger.CollectErrorEntries(err)

	assert.Len(t, entries, 1)
	assert.Equal(t, "value1", entries[0].Metadata["key1"])
	assert.Equal(t, 42, entries[0].Metadata["key2"])
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "two entries",
			entries: []logger.ErrorEntry{{Message: "outer"}, {Message: "inner"}},
			want:    "Error: outer\n\n  Caused by:\n    → inner",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a"},
			}},
			want: "Error: error\n       alpha: a\n       zebra: z",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"item": 620}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      item: 620",
		},
		{
			name:    "multiline cause",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "line1\nline2"}},
			want:    "Error: main\n\n  Caused by:\n    → line1\n      line2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
