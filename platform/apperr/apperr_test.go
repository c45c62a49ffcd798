package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestWrapCarriesKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "failed to create ride", cause)

	if err.Kind != KindInternal {
		t.Fatalf("kind = %v", err.Kind)
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("status = %d", err.HTTPStatus())
	}
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause lost")
	}
	if GetKind(err) != KindInternal {
		t.Fatalf("GetKind = %v", GetKind(err))
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("ride not found"), http.StatusNotFound},
		{Validation("Невалидни данни."), http.StatusBadRequest},
		{Unauthorized("Невалидни данни за вход."), http.StatusUnauthorized},
		{Internal("boom"), http.StatusInternalServerError},
		{Conflict("already exists"), http.StatusConflict},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%q: status = %d, want %d", tc.err.Message, got, tc.want)
		}
	}
}

func TestWithDetailsAndOp(t *testing.T) {
	err := Validation("Невалидни данни.").WithDetails(map[string]string{"date": "Моля, изберете дата."}).WithOp("rides.Create")
	if err.Error() != "rides.Create: Невалидни данни." {
		t.Fatalf("Error() = %q", err.Error())
	}
	details, ok := err.Details.(map[string]string)
	if !ok || details["date"] == "" {
		t.Fatalf("details = %v", err.Details)
	}
}
