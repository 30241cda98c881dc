// internal/app/features/brokername/endpoints.go
package brokername

import "github.com/dalemusser/dealerhub/internal/app/system/proxy"

// Collection lists and creates broker names.
var Collection = proxy.Endpoint{
	Name:        "brokername",
	Path:        "/brokername",
	RequireAuth: true,
	Fallback:    "Failed to process broker names.",
}

// Item reads, updates and deletes one broker name.
var Item = proxy.Endpoint{
	Name:        "brokername_item",
	Path:        "/brokername/{id}",
	RequireAuth: true,
	Fallback:    "Failed to process broker name.",
}
