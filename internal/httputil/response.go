package httputil

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the uniform response body of every API surface. Transport
// status codes carry only the binary split: 200 when Success is true, 400
// when false, 500 for unexpected transport-level failures.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// RespondData writes a success envelope around data.
func RespondData(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// RespondFailure writes a domain-failure envelope.
func RespondFailure(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// RespondInternal writes a transport-level failure envelope.
func RespondInternal(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusInternalServerError, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// writeEnvelope marshals first, preventing partial responses if encoding
// fails after headers are sent.
func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
