// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/masq/internal/adapters/artifacts"
	_ "go.trai.ch/masq/internal/adapters/config"
	_ "go.trai.ch/masq/internal/adapters/fs"
	_ "go.trai.ch/masq/internal/adapters/logger"
	_ "go.trai.ch/masq/internal/adapters/pddl"
	// Register app nodes.
	_ "go.trai.ch/masq/internal/app"
)
