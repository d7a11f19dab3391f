package detector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/detector"
	"go.trai.ch/shelf/internal/core/domain"
)

func env(vars map[string]string, stdout *os.File) detector.Environment {
	return detector.Environment{
		Stdout: stdout,
		Getenv: func(k string) string { return vars[k] },
	}
}

func regularFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "stdout"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestDetect(t *testing.T) {
	f := regularFile(t)

	tests := []struct {
		name   string
		vars   map[string]string
		stdout *os.File
	}{
		{name: "NotATerminal", stdout: f},
		{name: "NilStdout"},
		{name: "CITrue", vars: map[string]string{"CI": "true"}, stdout: f},
		{name: "CIOne", vars: map[string]string{"CI": "1"}, stdout: f},
		{name: "DumbTerminal", vars: map[string]string{"TERM": "dumb"}, stdout: f},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, detector.ModeLinear, env(tt.vars, tt.stdout).Detect())
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		flag string
		want detector.OutputMode
	}{
		{flag: "", want: detector.ModeAuto},
		{flag: "auto", want: detector.ModeAuto},
		{flag: "tui", want: detector.ModeTUI},
		{flag: "Grid", want: detector.ModeTUI},
		{flag: "linear", want: detector.ModeLinear},
		{flag: "list", want: detector.ModeLinear},
		{flag: " ci ", want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := detector.ParseMode(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode_Invalid(t *testing.T) {
	_, err := detector.ParseMode("fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidConfig.Error())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name      string
		detected  detector.OutputMode
		requested detector.OutputMode
		want      detector.OutputMode
	}{
		{name: "AutoKeepsTUI", detected: detector.ModeTUI, requested: detector.ModeAuto, want: detector.ModeTUI},
		{name: "AutoKeepsLinear", detected: detector.ModeLinear, requested: detector.ModeAuto, want: detector.ModeLinear},
		{name: "TUIOverrides", detected: detector.ModeLinear, requested: detector.ModeTUI, want: detector.ModeTUI},
		{name: "LinearOverrides", detected: detector.ModeTUI, requested: detector.ModeLinear, want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.detected, tt.requested))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "tui", detector.ModeTUI.String())
	assert.Equal(t, "linear", detector.ModeLinear.String())
}
