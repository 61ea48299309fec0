package domain_test

import (
	"errors"
	"testing"

	"github.com/lumeo-app/board-service/internal/domain"
)

func TestValidationError_MessageOrderIsStable(t *testing.T) {
	t.Parallel()

	err := &domain.ValidationError{Fields: map[string]string{
		"type":  domain.MsgRequired,
		"title": domain.MsgMustNotEmpty,
		"items": "must be an array",
	}}

	want := "validation error: items: must be an array; title: must not be empty; type: is required"
	for i := 0; i < 20; i++ {
		if got := err.Error(); got != want {
			t.Fatalf("Error() = %q, want %q", got, want)
		}
	}
}

func TestValidationError_UnwrapsSentinel(t *testing.T) {
	t.Parallel()

	err := &domain.ValidationError{Fields: map[string]string{"title": domain.MsgRequired}}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false, want true")
	}
}

func TestNotFoundError_NamesResource(t *testing.T) {
	t.Parallel()

	err := domain.NotFound("card")
	if err.Error() != "card not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "card not found")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false, want true")
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "card" {
		t.Errorf("errors.As resource = %v, want card", nf)
	}
}
