package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"go.uber.org/zap"
)

// UpstreamCall is one request seen by a FakeUpstream.
type UpstreamCall struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          []byte
}

// FakeUpstream is an httptest server standing in for the upstream API.
// It records every call and answers with the configured reply.
type FakeUpstream struct {
	Server *httptest.Server

	mu     sync.Mutex
	calls  []UpstreamCall
	status int
	ctype  string
	body   string
}

// NewFakeUpstream starts a fake upstream answering 200 {} until Reply is
// called. The server is closed when the test ends.
func NewFakeUpstream(t *testing.T) *FakeUpstream {
	t.Helper()
	f := &FakeUpstream{status: http.StatusOK, ctype: "application/json", body: `{}`}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// Reply sets the answer for subsequent calls.
func (f *FakeUpstream) Reply(status int, contentType, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.ctype, f.body = status, contentType, body
}

// Client returns an upstream client pointed at the fake.
func (f *FakeUpstream) Client() *upstream.Client {
	return upstream.New(f.Server.URL, 5*time.Second, zap.NewNop())
}

// Calls returns a copy of the recorded calls.
func (f *FakeUpstream) Calls() []UpstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]UpstreamCall(nil), f.calls...)
}

// LastCall returns the most recent call; ok is false when there was none.
func (f *FakeUpstream) LastCall() (UpstreamCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return UpstreamCall{}, false
	}
	return f.calls[len(f.calls)-1], true
}

func (f *FakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, UpstreamCall{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	status, ctype, reply := f.status, f.ctype, f.body
	f.mu.Unlock()

	if ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}
