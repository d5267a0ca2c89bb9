// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "slopmeter/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// it lives apart from modkit so a module can export its own ports type without an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
