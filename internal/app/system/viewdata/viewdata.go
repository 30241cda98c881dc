// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// DefaultSiteName is shown in the header and page titles.
const DefaultSiteName = "DealerHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from the session middleware)
	IsLoggedIn bool
	Role       string
	UserName   string
	HomePath   string // the user's landing dashboard, "/" when signed out

	// ShowAdminTools enables the admin navigation links.
	ShowAdminTools bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, signedIn := authz.UserCtx(r)

	home := authz.PublicRoot
	if signedIn {
		home = authz.LandingPath(role)
	}

	return BaseVM{
		SiteName:       DefaultSiteName,
		IsLoggedIn:     signedIn,
		Role:           role,
		UserName:       name,
		HomePath:       home,
		ShowAdminTools: authz.IsAdmin(r),
		Title:          title,
		BackURL:        httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:    httpnav.CurrentPath(r),
	}
}
