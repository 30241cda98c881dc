package proxy_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/auth"
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingUpstream returns a canned answer and remembers what it got.
type recordingUpstream struct {
	calls int
	last  upstream.Request
	res   upstream.Result
	err   error
}

func (u *recordingUpstream) Forward(ctx context.Context, req upstream.Request) (upstream.Result, error) {
	u.calls++
	u.last = req
	return u.res, u.err
}

var entryEndpoint = proxy.Endpoint{
	Name:        "businessentry",
	Path:        "/businessentry/{id}",
	RequireAuth: true,
	Fallback:    "Failed to process business entry.",
}

var uploadEndpoint = proxy.Endpoint{
	Name:        "uploads",
	Path:        "/uploads",
	RequireAuth: true,
	RequireFile: true,
	Fallback:    "Failed to upload file.",
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON message: %q (%v)", rec.Body.String(), err)
	}
	return body.Message
}

// serve routes req through chi so {id} parameters bind.
func serve(f *proxy.Forwarder, ep proxy.Endpoint, pattern string, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.HandleFunc(pattern, f.Handle(ep))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_MissingAuthorization_Returns401WithoutUpstreamCall(t *testing.T) {
	up := &recordingUpstream{}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	rec := serve(f, entryEndpoint, "/api/businessentry/{id}", httptest.NewRequest("GET", "/api/businessentry/7", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if msg := decodeMessage(t, rec); msg != proxy.MsgAuthRequired {
		t.Errorf("message %q, want %q", msg, proxy.MsgAuthRequired)
	}
	if up.calls != 0 {
		t.Errorf("upstream called %d times, want 0", up.calls)
	}
}

func TestHandle_CookieOnlyCrossSitePost_Returns401WithoutUpstreamCall(t *testing.T) {
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, true, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	saved := httptest.NewRecorder()
	if err := sm.Save(saved, httptest.NewRequest("POST", "/login", nil), &auth.Session{
		Token:     "victim-tok",
		User:      auth.SessionUser{ID: "u1", Role: "admin"},
		ExpiresAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	up := &recordingUpstream{res: upstream.Result{Status: 200, JSON: true, Body: []byte(`{}`)}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())
	ep := proxy.Endpoint{Name: "businessentry", Path: "/businessentry", RequireAuth: true, Fallback: "x"}

	r := chi.NewRouter()
	r.Use(sm.LoadSession)
	r.Post("/api/businessentry", f.Handle(ep))

	req := httptest.NewRequest("POST", "/api/businessentry", strings.NewReader(`{"premium":1}`))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Origin", "https://evil.example")
	for _, c := range saved.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if up.calls != 0 {
		t.Errorf("upstream called %d times, want 0", up.calls)
	}
}

func TestHandle_ForwardsAuthorizationMethodAndEscapedID(t *testing.T) {
	up := &recordingUpstream{res: upstream.Result{Status: 200, JSON: true, Body: []byte(`{}`)}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	req := httptest.NewRequest("DELETE", "/api/businessentry/a%2Fb", nil)
	req.Header.Set("Authorization", "Bearer header-tok")
	serve(f, entryEndpoint, "/api/businessentry/{id}", req)

	if got := up.last.Header.Get("Authorization"); got != "Bearer header-tok" {
		t.Errorf("Authorization: got %q", got)
	}
	if up.last.Method != "DELETE" {
		t.Errorf("method: got %q", up.last.Method)
	}
	if up.last.Path != "/businessentry/a%2Fb" {
		t.Errorf("path: got %q", up.last.Path)
	}
}

func TestHandle_ForwardsBodyAndQuery(t *testing.T) {
	up := &recordingUpstream{res: upstream.Result{Status: 201, JSON: true, Body: []byte(`{"_id":"n1"}`)}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())
	ep := proxy.Endpoint{Name: "brokername", Path: "/brokername", RequireAuth: true, Fallback: "x"}

	req := httptest.NewRequest("POST", "/api/brokername?source=ui", strings.NewReader(`{"name":"Acme"}`))
	req.Header.Set("Authorization", "Bearer t")
	req.Header.Set("Content-Type", "application/json")
	rec := serve(f, ep, "/api/brokername", req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status %d, want 201", rec.Code)
	}
	if rec.Body.String() != `{"_id":"n1"}` {
		t.Errorf("body: got %q", rec.Body.String())
	}
	if string(up.last.Body) != `{"name":"Acme"}` {
		t.Errorf("forwarded body: got %q", up.last.Body)
	}
	if up.last.Query.Get("source") != "ui" {
		t.Errorf("forwarded query: got %v", up.last.Query)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control: got %q", rec.Header().Get("Cache-Control"))
	}
}

func TestHandle_NonJSON404RelayedVerbatim(t *testing.T) {
	up := &recordingUpstream{res: upstream.Result{
		Status:      http.StatusNotFound,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte("<p>Cannot GET /businessentry/9</p>"),
	}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/businessentry/9", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := serve(f, entryEndpoint, "/api/businessentry/{id}", req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
	if rec.Body.String() != "<p>Cannot GET /businessentry/9</p>" {
		t.Errorf("body: got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestHandle_NetworkFailure_Returns500WithFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	reg := prometheus.NewRegistry()
	metrics := proxy.NewMetrics(reg)
	f := proxy.NewForwarder(upstream.New(base, time.Second, zap.NewNop()), metrics, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/businessentry/1", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := serve(f, entryEndpoint, "/api/businessentry/{id}", req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != entryEndpoint.Fallback {
		t.Errorf("message %q, want %q", msg, entryEndpoint.Fallback)
	}
	if rec.Header().Get("X-Incident-ID") == "" {
		t.Error("expected an incident id header")
	}
	if n, err := promtest.GatherAndCount(reg, "dealerhub_proxy_failures_total"); err != nil || n != 1 {
		t.Errorf("failures_total series: got %d (%v), want 1", n, err)
	}
	if got := counterSum(t, reg, "dealerhub_proxy_requests_total"); got != 1 {
		t.Errorf("requests_total: got %v, want 1", got)
	}
}

// counterSum adds up every series of the named counter family.
func counterSum(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sum float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func TestHandle_DecodeFailure_Returns500(t *testing.T) {
	up := &recordingUpstream{err: &upstream.Failure{Reason: upstream.ReasonDecode, Err: context.DeadlineExceeded}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/businessentry/1", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := serve(f, entryEndpoint, "/api/businessentry/{id}", req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != entryEndpoint.Fallback {
		t.Errorf("message %q", msg)
	}
}

// stallingUpstream blocks until the call's context ends.
type stallingUpstream struct{}

func (stallingUpstream) Forward(ctx context.Context, req upstream.Request) (upstream.Result, error) {
	<-ctx.Done()
	return upstream.Result{}, &upstream.Failure{Reason: upstream.ReasonTransport, Err: ctx.Err()}
}

func TestHandle_DeadlineHitIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := proxy.NewForwarder(stallingUpstream{}, nil, zap.New(core))
	ep := entryEndpoint
	ep.Timeout = func() time.Duration { return 20 * time.Millisecond }

	req := httptest.NewRequest("GET", "/api/businessentry/1", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := serve(f, ep, "/api/businessentry/{id}", req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", rec.Code)
	}
	timedOut := logs.FilterMessage("operation timed out").All()
	if len(timedOut) != 1 {
		t.Fatalf("expected one timeout log, got %d", len(timedOut))
	}
	if op := timedOut[0].ContextMap()["operation"]; op != ep.Name {
		t.Errorf("operation field %v, want %q", op, ep.Name)
	}
}

func multipartBody(t *testing.T, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if err := mw.WriteField("policyNumber", "P-100"); err != nil {
		t.Fatal(err)
	}
	if withFile {
		fw, err := mw.CreateFormFile("file", "policy.pdf")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n"))
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf, mw.FormDataContentType()
}

func TestHandle_UploadWithoutFile_Returns400(t *testing.T) {
	up := &recordingUpstream{}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	body, ct := multipartBody(t, false)
	req := httptest.NewRequest("POST", "/api/uploads", body)
	req.Header.Set("Authorization", "Bearer t")
	req.Header.Set("Content-Type", ct)
	rec := serve(f, uploadEndpoint, "/api/uploads", req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != proxy.MsgNoFile {
		t.Errorf("message %q", msg)
	}
	if up.calls != 0 {
		t.Error("upstream must not be called")
	}
}

func TestHandle_UploadNotMultipart_Returns400(t *testing.T) {
	up := &recordingUpstream{}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	req := httptest.NewRequest("POST", "/api/uploads", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Authorization", "Bearer t")
	req.Header.Set("Content-Type", "application/json")
	rec := serve(f, uploadEndpoint, "/api/uploads", req)

	if rec.Code != http.StatusBadRequest || up.calls != 0 {
		t.Errorf("status %d calls %d, want 400 and no call", rec.Code, up.calls)
	}
}

func TestHandle_UploadWithFile_ForwardsBodyVerbatim(t *testing.T) {
	up := &recordingUpstream{res: upstream.Result{Status: 201, JSON: true, Body: []byte(`{"url":"/f/1"}`)}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())

	body, ct := multipartBody(t, true)
	raw := append([]byte(nil), body.Bytes()...)
	req := httptest.NewRequest("POST", "/api/uploads", body)
	req.Header.Set("Authorization", "Bearer t")
	req.Header.Set("Content-Type", ct)
	rec := serve(f, uploadEndpoint, "/api/uploads", req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, want 201", rec.Code)
	}
	if !bytes.Equal(up.last.Body, raw) {
		t.Error("multipart body must be forwarded byte for byte")
	}
	if up.last.Header.Get("Content-Type") != ct {
		t.Errorf("Content-Type: got %q, want %q", up.last.Header.Get("Content-Type"), ct)
	}
}

func TestHandle_UploadUsesEndpointBudgetOverClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uploaded":true}`))
	}))
	t.Cleanup(srv.Close)

	f := proxy.NewForwarder(upstream.New(srv.URL, 100*time.Millisecond, zap.NewNop()), nil, zap.NewNop())
	ep := uploadEndpoint
	ep.Timeout = func() time.Duration { return 2 * time.Second }

	body, ct := multipartBody(t, true)
	req := httptest.NewRequest("POST", "/api/uploads", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer t")
	rec := serve(f, ep, "/api/uploads", req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestHandle_NoAuthEndpointForwardsWithoutCredentials(t *testing.T) {
	up := &recordingUpstream{res: upstream.Result{Status: 401, JSON: true, Body: []byte(`{"message":"Invalid credentials"}`)}}
	f := proxy.NewForwarder(up, nil, zap.NewNop())
	ep := proxy.Endpoint{Name: "login", Path: "/auth/login", Fallback: "Login failed."}

	rec := serve(f, ep, "/api/login", httptest.NewRequest("POST", "/api/login", strings.NewReader(`{}`)))

	if up.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", up.calls)
	}
	if up.last.Header.Get("Authorization") != "" {
		t.Error("login must not carry credentials")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Invalid credentials" {
		t.Errorf("message %q", msg)
	}
}
