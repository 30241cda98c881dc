// internal/app/features/dashboard/common.go
package dashboard

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/dealerhub/internal/app/system/viewdata"
)

// placeholder is shown for values the upstream left out.
const placeholder = "—"

// card links a landing page to one of the user's tools.
type card struct {
	Title string
	Desc  string
	Href  string
}

// homeData is the view model for every role landing page.
type homeData struct {
	viewdata.BaseVM
	Heading string
	Cards   []card
}

// listData is the shared shape of the table pages.
type listData struct {
	viewdata.BaseVM
	Heading string
	Columns []string
	Rows    [][]string
	Empty   string
	Error   string
}

// profileData renders a profile as label/value pairs.
type profileData struct {
	viewdata.BaseVM
	Heading string
	Fields  []field
	Error   string
}

type field struct {
	Label string
	Value string
}

func newBase(r *http.Request, title string) viewdata.BaseVM {
	return viewdata.NewBaseVM(r, title, "/dashboard")
}

func str(p *string) string {
	if p == nil || *p == "" {
		return placeholder
	}
	return *p
}

func money(p *float64) string {
	if p == nil {
		return placeholder
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func count(p *int) string {
	if p == nil {
		return placeholder
	}
	return strconv.Itoa(*p)
}
