package proxy

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/dealerhub/internal/app/system/upstream"
	"github.com/tidwall/gjson"
)

type messageBody struct {
	Message string `json:"message"`
}

// WriteMessage writes {"message": msg} with status.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(messageBody{Message: msg})
}

// Relay writes an upstream result to the browser with the upstream status.
// JSON error payloads are normalized so they always carry a string
// "message"; non-JSON bodies keep their bytes and content type.
func Relay(w http.ResponseWriter, res upstream.Result, fallback string) error {
	w.Header().Set("Cache-Control", "no-store")

	if !res.JSON {
		if res.ContentType != "" {
			w.Header().Set("Content-Type", res.ContentType)
		}
		w.WriteHeader(res.Status)
		_, err := w.Write(res.Body)
		return err
	}

	body := res.Body
	if !res.OK() {
		body = normalizeError(body, fallback)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Status)
	if len(body) == 0 {
		return nil
	}
	_, err := w.Write(body)
	return err
}

// normalizeError keeps an object that already has a string message, adds
// the fallback message to objects without one, and replaces anything else
// with {"message": fallback}.
func normalizeError(body []byte, fallback string) []byte {
	if len(bytes.TrimSpace(body)) == 0 {
		return messageJSON(fallback)
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return messageJSON(fallback)
	}
	if parsed.Get("message").Type == gjson.String {
		return body
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return messageJSON(fallback)
	}
	msg, err := json.Marshal(fallback)
	if err != nil {
		return messageJSON(fallback)
	}
	obj["message"] = msg
	out, err := json.Marshal(obj)
	if err != nil {
		return messageJSON(fallback)
	}
	return out
}

func messageJSON(msg string) []byte {
	b, _ := json.Marshal(messageBody{Message: msg})
	return b
}
