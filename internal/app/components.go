package app

import "go.trai.ch/stitch/internal/core/ports"

// Components contains the initialized application components, providing
// controlled access to what the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}
