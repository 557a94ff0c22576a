package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewValidationError("title required", nil))
		de := ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	})

	t.Run("fiber error", func(t *testing.T) {
		de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
		assert.Equal(t, "NOT_FOUND", de.Code)
		assert.Equal(t, "Cannot GET /nope", de.Message)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := errors.New("boom")
		de := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.ErrorIs(t, de, cause)
	})

	t.Run("upstream", func(t *testing.T) {
		de := ToDomainError(NewUpstreamError("community API unreachable", errors.New("dial tcp")))
		assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
		assert.Contains(t, de.Error(), "dial tcp")
	})
}
