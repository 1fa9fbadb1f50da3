package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Storage("failed", errors.New("disk")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.Kind.Status(); got != tt.want {
			t.Errorf("%q: status = %d, want %d", tt.err.Message, got, tt.want)
		}
	}
}

func TestStorageErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("Registration failed", cause)

	if err.Error() != "Registration failed: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}
