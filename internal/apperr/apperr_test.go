package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: ErrValidation, want: "validation_failed"},
		{name: "validation_wrapped", err: fmt.Errorf("customer phone: %w", ErrValidation), want: "validation_failed"},
		{name: "selection", err: ErrSelection, want: "selection_incomplete"},
		{name: "closed", err: ErrRestaurantClosed, want: "restaurant_closed"},
		{name: "collaborator", err: fmt.Errorf("fetch menu: %w", ErrCollaborator), want: "collaborator_failure"},
		{name: "session", err: ErrSessionNotFound, want: "not_found"},
		{name: "tier", err: ErrTierNotFound, want: "not_found"},
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "unknown", err: errors.New("boom"), want: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Kind(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: ErrValidation, want: http.StatusBadRequest},
		{name: "cart_empty", err: ErrCartEmpty, want: http.StatusConflict},
		{name: "collaborator", err: ErrCollaborator, want: http.StatusBadGateway},
		{name: "submission", err: ErrSubmission, want: http.StatusInternalServerError},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "checkout_in_progress", err: fmt.Errorf("session s1: %w", ErrCheckoutInProgress), want: http.StatusConflict},
		{name: "item", err: fmt.Errorf("item 7: %w", ErrItemNotFound), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
