package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fixed messages for requests rejected before forwarding.
const (
	MsgAuthRequired = "Authentication required."
	MsgNoFile       = "No file uploaded."
	MsgTooLarge     = "Request body too large."
	MsgBadBody      = "Invalid request body."
)

// MaxBodyBytes caps a proxied request body.
const MaxBodyBytes = 32 << 20

// Upstream performs one upstream exchange.
type Upstream interface {
	Forward(ctx context.Context, req upstream.Request) (upstream.Result, error)
}

// Forwarder turns Endpoints into handlers. It holds no per-request state.
type Forwarder struct {
	up      Upstream
	metrics *Metrics
	log     *zap.Logger
}

// NewForwarder builds a Forwarder. metrics may be nil.
//
// Credentials come only from the request's own Authorization header; the
// session cookie is never turned into a bearer token here.
func NewForwarder(up Upstream, metrics *Metrics, logger *zap.Logger) *Forwarder {
	return &Forwarder{up: up, metrics: metrics, log: logger}
}

// Handle returns the handler for ep.
func (f *Forwarder) Handle(ep Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if ep.RequireAuth && authorization == "" {
			f.reject(w, ep, http.StatusUnauthorized, MsgAuthRequired, start)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				f.reject(w, ep, http.StatusRequestEntityTooLarge, MsgTooLarge, start)
				return
			}
			f.reject(w, ep, http.StatusBadRequest, MsgBadBody, start)
			return
		}

		if ep.RequireFile {
			files, err := filesIn(r.Header.Get("Content-Type"), body)
			if err != nil || len(files) == 0 {
				f.reject(w, ep, http.StatusBadRequest, MsgNoFile, start)
				return
			}
			for _, fp := range files {
				f.log.Debug("relaying upload",
					zap.String("endpoint", ep.Name),
					zap.String("field", fp.Field),
					zap.String("filename", fp.Name),
					zap.String("detected_type", fp.Type))
			}
		}

		header := http.Header{}
		if authorization != "" {
			header.Set("Authorization", authorization)
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			header.Set("Content-Type", ct)
		}
		if accept := r.Header.Get("Accept"); accept != "" {
			header.Set("Accept", accept)
		}

		ctx, cancel := timeouts.WithTimeout(r.Context(), ep.timeout(), f.log, ep.Name)
		defer cancel()

		path := ep.upstreamPath(r)
		res, err := f.up.Forward(ctx, upstream.Request{
			Method: r.Method,
			Path:   path,
			Query:  r.URL.Query(),
			Header: header,
			Body:   body,
		})
		if err != nil {
			f.fail(w, r, ep, path, err, start)
			return
		}

		f.metrics.observe(ep.Name, res.Status, start)
		if err := Relay(w, res, ep.Fallback); err != nil {
			f.log.Warn("relay write failed", zap.String("endpoint", ep.Name), zap.Error(err))
		}
	}
}

func (f *Forwarder) reject(w http.ResponseWriter, ep Endpoint, status int, msg string, start time.Time) {
	f.metrics.observe(ep.Name, status, start)
	WriteMessage(w, status, msg)
}

// fail logs the failure under a fresh incident id and answers 500 with the
// endpoint's fixed message.
func (f *Forwarder) fail(w http.ResponseWriter, r *http.Request, ep Endpoint, path string, err error, start time.Time) {
	reason := upstream.ReasonTransport
	var failure *upstream.Failure
	if errors.As(err, &failure) {
		reason = failure.Reason
	}
	incident := uuid.NewString()

	f.log.Error("upstream call failed",
		zap.String("endpoint", ep.Name),
		zap.String("method", r.Method),
		zap.String("upstream_path", path),
		zap.String("reason", string(reason)),
		zap.String("incident_id", incident),
		zap.Error(err))

	f.metrics.fail(ep.Name, reason)
	f.metrics.observe(ep.Name, http.StatusInternalServerError, start)
	w.Header().Set("X-Incident-ID", incident)
	WriteMessage(w, http.StatusInternalServerError, ep.Fallback)
}

// FilePart describes one uploaded file of a multipart body.
type FilePart struct {
	Field string
	Name  string
	Type  string // sniffed from content, not taken from the client
}

// sniffLen is how much of a file is read to detect its type.
const sniffLen = 3072

// filesIn lists the file parts of a multipart body without consuming the
// original bytes.
func filesIn(contentType string, body []byte) ([]FilePart, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("not multipart: %s", mediaType)
	}

	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var files []FilePart
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return nil, err
		}
		if p.FileName() == "" {
			continue
		}
		head, err := io.ReadAll(io.LimitReader(p, sniffLen))
		if err != nil {
			return nil, err
		}
		files = append(files, FilePart{
			Field: p.FormName(),
			Name:  p.FileName(),
			Type:  mimetype.Detect(head).String(),
		})
	}
}
