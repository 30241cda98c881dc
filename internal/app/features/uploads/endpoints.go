// internal/app/features/uploads/endpoints.go
package uploads

import (
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
)

// Upload relays a multipart form holding at least one file.
var Upload = proxy.Endpoint{
	Name:        "uploads",
	Path:        "/uploads",
	RequireAuth: true,
	RequireFile: true,
	Fallback:    "Failed to upload file.",
	Timeout:     timeouts.Upload,
}
