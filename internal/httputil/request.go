package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"forgesync/internal/config"
	"forgesync/internal/domain"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at config.MaxBodyBytes before parsing.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	err := decodeBody(w, r, dest)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: request body is required", domain.ErrMalformedBody)
	}
	return err
}

// ParseOptionalJSON is ParseJSON for endpoints whose body may be absent; an
// empty body leaves dest at its zero value.
func ParseOptionalJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	err := decodeBody(w, r, dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dest)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w (max 10MB)", domain.ErrBodyTooLarge)
	}
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("%w: %v", domain.ErrMalformedBody, err)
}
