// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shelf/internal/adapters/artstore"
	_ "go.trai.ch/shelf/internal/adapters/catalog"
	_ "go.trai.ch/shelf/internal/adapters/config"
	_ "go.trai.ch/shelf/internal/adapters/httpapi"
	_ "go.trai.ch/shelf/internal/adapters/logger"
	_ "go.trai.ch/shelf/internal/adapters/steamgrid"
	_ "go.trai.ch/shelf/internal/adapters/telemetry"
	_ "go.trai.ch/shelf/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/shelf/internal/app"
	_ "go.trai.ch/shelf/internal/engine/refs"
	_ "go.trai.ch/shelf/internal/engine/resolver"
	_ "go.trai.ch/shelf/internal/engine/session"
	_ "go.trai.ch/shelf/internal/engine/warmer"
)
