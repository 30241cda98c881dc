// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure and renders the matching error page.
// The page shows an incident id that appears in the log line.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger builds an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders a 500 page with userMsg.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	incident := uuid.NewString()
	el.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("incident_id", incident))
	render(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL, incident)
}

// LogBadRequest logs err at warn level and renders a 400 page with userMsg.
func (el *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	el.log.Warn(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path))
	render(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL, "")
}
