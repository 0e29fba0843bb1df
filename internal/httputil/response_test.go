package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondData(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondData(rr, map[string]string{"status": "ok"})

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}

	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success || env.Error != "" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Timestamp == 0 {
		t.Error("timestamp missing")
	}
}

func TestRespondFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondFailure(rr, "something went wrong")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rr.Code)
	}

	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Success || env.Error != "something went wrong" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Data != nil {
		t.Errorf("failure envelope carries data: %v", env.Data)
	}
}

func TestRespondInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondInternal(rr, "internal server error")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", rr.Code)
	}
}
