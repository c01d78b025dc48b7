package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("lead not found"), http.StatusNotFound},
		{Validation("bad email"), http.StatusBadRequest},
		{BadRequest("bad json"), http.StatusBadRequest},
		{Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Unavailable("cms down"), http.StatusBadGateway},
		{Internal("boom"), http.StatusInternalServerError},
		{New(KindUnknown, "?"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.err.Message, got, tt.want)
		}
	}
}

func TestGetKindFollowsWrapChain(t *testing.T) {
	base := NotFound("lead not found").WithOp("management.Get")
	wrapped := fmt.Errorf("handler: %w", base)

	if !Is(wrapped, KindNotFound) {
		t.Fatalf("expected KindNotFound through wrap chain")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("plain errors must be KindUnknown")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(KindUnavailable, "catalog unavailable", cause).WithOp("catalog.List")

	want := "catalog.List: catalog unavailable: dial tcp: refused"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("Unwrap must expose the cause")
	}
}
