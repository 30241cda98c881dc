// internal/app/features/businessentry/endpoints.go
package businessentry

import "github.com/dalemusser/dealerhub/internal/app/system/proxy"

// Collection lists and creates business entries.
var Collection = proxy.Endpoint{
	Name:        "businessentry",
	Path:        "/businessentry",
	RequireAuth: true,
	Fallback:    "Failed to process business entries.",
}

// Item reads, updates and deletes one business entry.
var Item = proxy.Endpoint{
	Name:        "businessentry_item",
	Path:        "/businessentry/{id}",
	RequireAuth: true,
	Fallback:    "Failed to process business entry.",
}
