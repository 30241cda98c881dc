// Package proxy implements the contract shared by every browser-facing API
// route: check credentials, forward one call to the upstream API, relay its
// answer, and collapse failures into a fixed message.
package proxy

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// Endpoint describes one proxied upstream resource.
type Endpoint struct {
	// Name labels logs and metrics.
	Name string
	// Path is the upstream path. "{param}" segments are filled from the
	// chi URL parameter of the same name.
	Path string
	// RequireAuth rejects requests without credentials before forwarding.
	RequireAuth bool
	// RequireFile rejects multipart bodies that carry no file part.
	RequireFile bool
	// Fallback is the message used when the upstream gives none and for
	// every internal failure.
	Fallback string
	// Timeout bounds the upstream call; nil means timeouts.Upstream.
	Timeout func() time.Duration
}

func (e Endpoint) timeout() time.Duration {
	if e.Timeout != nil {
		return e.Timeout()
	}
	return timeouts.Upstream()
}

// upstreamPath binds "{param}" segments of e.Path to r's URL parameters.
// Each value is escaped exactly once.
func (e Endpoint) upstreamPath(r *http.Request) string {
	if !strings.Contains(e.Path, "{") {
		return e.Path
	}
	segs := strings.Split(e.Path, "/")
	for i, s := range segs {
		if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
			segs[i] = url.PathEscape(paramValue(r, s[1:len(s)-1]))
		}
	}
	return strings.Join(segs, "/")
}

// paramValue returns the decoded value of a chi URL parameter. chi matches
// against RawPath when the request has one, so its values are still escaped.
func paramValue(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}
