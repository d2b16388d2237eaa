package apperr

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrSelection        = errors.New("incomplete item selection")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrRestaurantClosed = errors.New("restaurant is closed")
	ErrCollaborator     = errors.New("collaborator unavailable")
	ErrSubmission       = errors.New("order submission failed")
	ErrSessionNotFound  = errors.New("session not found")
	ErrItemNotFound     = errors.New("menu item not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrTierNotFound     = errors.New("delivery tier not found")
	ErrUnauthorized     = errors.New("unauthorized")

	ErrCheckoutInProgress = errors.New("checkout in progress")
)

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation_failed"

	case errors.Is(err, ErrSelection):
		return "selection_incomplete"

	case errors.Is(err, ErrCartEmpty):
		return "cart_empty"

	case errors.Is(err, ErrRestaurantClosed):
		return "restaurant_closed"

	case errors.Is(err, ErrCollaborator):
		return "collaborator_failure"

	case errors.Is(err, ErrCheckoutInProgress):
		return "checkout_in_progress"

	case errors.Is(err, ErrSubmission):
		return "submission_failure"

	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrBranchNotFound),
		errors.Is(err, ErrTierNotFound):
		return "not_found"

	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch Kind(err) {
	case "":
		return http.StatusOK
	case "validation_failed", "selection_incomplete", "canceled":
		return http.StatusBadRequest
	case "cart_empty", "restaurant_closed", "checkout_in_progress":
		return http.StatusConflict
	case "collaborator_failure":
		return http.StatusBadGateway
	case "not_found":
		return http.StatusNotFound
	case "unauthorized":
		return http.StatusUnauthorized
	case "timeout":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
