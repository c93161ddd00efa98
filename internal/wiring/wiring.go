// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/stitch/internal/adapters/config"
	_ "go.trai.ch/stitch/internal/adapters/logger"
	_ "go.trai.ch/stitch/internal/adapters/notes"
	// Register app nodes.
	_ "go.trai.ch/stitch/internal/app"
)
