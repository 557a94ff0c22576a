package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/api/dto"
	"github.com/spec-kit/barangay-portal/internal/auth"
	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/observability"
	"github.com/spec-kit/barangay-portal/internal/service"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

const maxUploadBytes = 10 << 20

// pages holds what every page handler needs to render a view.
type pages struct {
	creds   *auth.Credentials
	logger  *zap.Logger
	metrics *observability.Metrics
}

func newPages(creds *auth.Credentials, logger *zap.Logger, metrics *observability.Metrics) pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return pages{creds: creds, logger: logger, metrics: metrics}
}

// header re-derives the resident's state from the slot on every render.
func (p pages) header(c *fiber.Ctx) *dto.Header {
	if _, ok := auth.PrincipalFromContext(c, auth.Resident); ok {
		return dto.NewHeader(true)
	}
	return dto.NewHeader(p.creds.CheckRequest(c, auth.Resident).Allowed())
}

func (p pages) render(c *fiber.Ctx, status int, view dto.View) error {
	return c.Status(status).JSON(view)
}

// fail renders view with the error message inline and a status mirroring the failure.
func (p pages) fail(c *fiber.Ctx, view dto.View, err error) error {
	domainErr := apperrors.ToDomainError(err)
	p.metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		p.logger.Warn("page request failed",
			zap.String("page", view.Page),
			zap.String("code", domainErr.Code),
			zap.Error(domainErr))
	}
	view.Error = domainErr.Message
	return c.Status(domainErr.HTTPStatus).JSON(view)
}

func residentOf(c *fiber.Ctx) service.Resident {
	principal, ok := auth.PrincipalFromContext(c, auth.Resident)
	if !ok {
		return service.Resident{}
	}
	return service.Resident{ID: principal.SubjectID, Token: principal.Token}
}

func adminToken(c *fiber.Ctx) string {
	principal, ok := auth.PrincipalFromContext(c, auth.Admin)
	if !ok {
		return ""
	}
	return principal.Token
}

// formUpload reads an optional file from a multipart form.
func formUpload(c *fiber.Ctx, field string) (*domain.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil, nil
	}
	header := files[0]
	if header.Size > maxUploadBytes {
		return nil, apperrors.NewValidationError("File is too large", map[string]any{field: header.Size})
	}
	f, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
