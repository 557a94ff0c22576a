package service

import (
	"errors"
	"net/http"

	"github.com/spec-kit/barangay-portal/internal/portalapi"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

// fromAPI turns a community API failure into a DomainError whose message
// is the server's explanation, or fallback when it gave none.
func fromAPI(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var apiErr *portalapi.Error
	if !errors.As(err, &apiErr) {
		return apperrors.NewInternalError(err)
	}
	message := portalapi.MessageOf(err, fallback)
	switch apiErr.Kind {
	case portalapi.KindUnauthorized:
		return &apperrors.DomainError{Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized, Err: err}
	case portalapi.KindValidation:
		return &apperrors.DomainError{Code: "VALIDATION_FAILED", Message: message, HTTPStatus: http.StatusBadRequest, Err: err}
	case portalapi.KindNotFound:
		return &apperrors.DomainError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound, Err: err}
	default:
		return apperrors.NewUpstreamError(message, err)
	}
}
