// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/opamlock/internal/adapters/config"
	_ "go.trai.ch/opamlock/internal/adapters/lockfile"
	_ "go.trai.ch/opamlock/internal/adapters/logger"
	_ "go.trai.ch/opamlock/internal/adapters/shell"
	_ "go.trai.ch/opamlock/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/opamlock/internal/app"
)
