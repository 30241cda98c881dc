package brokername_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/dealerhub/internal/app/features/brokername"
	"github.com/dalemusser/dealerhub/internal/app/system/proxy"
	"github.com/dalemusser/dealerhub/internal/testutil"
	"go.uber.org/zap"
)

func TestRoutes_MapToUpstream(t *testing.T) {
	tests := []struct {
		method   string
		target   string
		wantPath string
	}{
		{"GET", "/", "/brokername"},
		{"POST", "/", "/brokername"},
		{"GET", "/b1", "/brokername/b1"},
		{"PUT", "/b1", "/brokername/b1"},
		{"DELETE", "/b1", "/brokername/b1"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			up := testutil.NewFakeUpstream(t)
			h := brokername.Routes(proxy.NewForwarder(up.Client(), nil, zap.NewNop()))

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(`{"name":"Acme Brokers"}`))
			req.Header.Set("Authorization", "Bearer tok")
			req.Header.Set("Content-Type", "application/json")
			rec := testutil.NewRecorder()
			h.ServeHTTP(rec, req)

			rec.AssertStatus(t, http.StatusOK)
			call, ok := up.LastCall()
			if !ok {
				t.Fatal("expected an upstream call")
			}
			if call.Method != tt.method || call.Path != tt.wantPath {
				t.Errorf("upstream call: got %s %s, want %s %s", call.Method, call.Path, tt.method, tt.wantPath)
			}
			if call.Authorization != "Bearer tok" {
				t.Errorf("Authorization: got %q", call.Authorization)
			}
		})
	}
}

func TestRoutes_UpstreamMessageKept(t *testing.T) {
	up := testutil.NewFakeUpstream(t)
	up.Reply(http.StatusConflict, "application/json", `{"message":"Broker name already exists"}`)
	h := brokername.Routes(proxy.NewForwarder(up.Client(), nil, zap.NewNop()))

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Acme Brokers"}`))
	req.Header.Set("Authorization", "Bearer tok")
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "Broker name already exists")
}

func TestRoutes_NonJSONErrorPassesThrough(t *testing.T) {
	up := testutil.NewFakeUpstream(t)
	up.Reply(http.StatusNotFound, "text/plain; charset=utf-8", "not found")
	h := brokername.Routes(proxy.NewForwarder(up.Client(), nil, zap.NewNop()))

	req := httptest.NewRequest("DELETE", "/missing", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	if rec.Body.String() != "not found" {
		t.Errorf("body: got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestRoutes_MissingAuthorization(t *testing.T) {
	up := testutil.NewFakeUpstream(t)
	h := brokername.Routes(proxy.NewForwarder(up.Client(), nil, zap.NewNop()))

	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	rec.AssertStatus(t, http.StatusUnauthorized)
	if len(up.Calls()) != 0 {
		t.Error("upstream must not be called")
	}
}
