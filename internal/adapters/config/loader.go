// Package config loads the shelf configuration from a YAML file, a .env file
// and SHELF_ prefixed environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	logger  ports.Logger
	file    string
	dirs    []string
	envFile string

	mu   sync.Mutex
	cfg  *domain.Config
	used string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFile reads the given config file instead of searching for one.
func WithFile(path string) Option {
	return func(l *Loader) {
		l.file = path
	}
}

// WithSearchDirs replaces the directories searched for config.yaml.
func WithSearchDirs(dirs ...string) Option {
	return func(l *Loader) {
		l.dirs = dirs
	}
}

// WithEnvFile replaces the .env file loaded before the environment is read.
// An empty path disables it.
func WithEnvFile(path string) Option {
	return func(l *Loader) {
		l.envFile = path
	}
}

// NewLoader creates a Loader. Without options it honors SHELF_CONFIG and
// otherwise searches the user config dir and the working directory.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		logger:  logger,
		file:    os.Getenv(PathEnv),
		dirs:    []string{domain.DefaultConfigDir(), "."},
		envFile: ".env",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the configuration, reading it on first use.
func (l *Loader) Load() (*domain.Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg != nil {
		return l.cfg, nil
	}
	return l.read()
}

// Reload reads the configuration again. The previous configuration stays
// in effect when the new one is invalid.
func (l *Loader) Reload() (*domain.Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.read()
}

// Path returns the config file in use, or an empty string when none was found.
func (l *Loader) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.used != "" {
		return l.used
	}
	return l.file
}

func (l *Loader) read() (*domain.Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(domain.ConfigFileName)
		v.SetConfigType("yaml")
		for _, dir := range l.dirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var parseErr viper.ConfigParseError
		switch {
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("no config file found, using defaults")
		case errors.As(err, &parseErr):
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", v.ConfigFileUsed())
		default:
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", v.ConfigFileUsed())
		}
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := file.toDomain()
	if err := validate(cfg); err != nil {
		return nil, err
	}

	if used := v.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			l.used = used
		}
	}
	l.cfg = cfg
	return cfg, nil
}

// loadEnvFile loads the .env file without overriding variables already set.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", l.envFile)
	}
	return nil
}
