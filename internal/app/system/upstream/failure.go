package upstream

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// FailureReason classifies why no usable upstream answer was obtained.
type FailureReason string

const (
	ReasonTransport FailureReason = "transport" // network error, timeout, cancelled
	ReasonDecode    FailureReason = "decode"    // answer arrived but could not be read
)

// Failure is returned when the upstream exchange itself failed. It is never
// retried.
type Failure struct {
	Reason FailureReason
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("upstream %s failure: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// StatusError is a non-2xx answer to a typed fetch.
type StatusError struct {
	Status  int
	Message string // upstream "message", may be empty
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

// envelopeKeys are the wrappers the upstream puts around payloads.
var envelopeKeys = []string{"data", "user"}

// DecodeData unmarshals a payload that may or may not be wrapped in a
// {"data": ...} or {"user": ...} envelope.
func DecodeData(body []byte, out any) error {
	raw := body
	for _, key := range envelopeKeys {
		if v := gjson.GetBytes(body, key); v.IsArray() || v.IsObject() {
			raw = []byte(v.Raw)
			break
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Failure{Reason: ReasonDecode, Err: err}
	}
	return nil
}
