package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/api/dto"
	"github.com/spec-kit/barangay-portal/internal/auth"
	"github.com/spec-kit/barangay-portal/internal/observability"
	"github.com/spec-kit/barangay-portal/internal/service"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

// ResidentHandler serves pages behind the resident gate.
type ResidentHandler struct {
	pages
	community *service.CommunityService
}

// NewResidentHandler constructs handler.
func NewResidentHandler(creds *auth.Credentials, community *service.CommunityService, logger *zap.Logger, metrics *observability.Metrics) *ResidentHandler {
	return &ResidentHandler{pages: newPages(creds, logger, metrics), community: community}
}

func (h *ResidentHandler) view(c *fiber.Ctx, page string) dto.View {
	return dto.View{Page: page, Header: h.header(c)}
}

// Dashboard handles GET /dashboard.
func (h *ResidentHandler) Dashboard(c *fiber.Ctx) error {
	view := h.view(c, "dashboard")
	view.Form = dto.ComplaintForm{}
	projects, err := h.community.Projects(c.UserContext(), residentOf(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"projects": projects}
	return h.render(c, fiber.StatusOK, view)
}

// SubmitComplaint handles POST /dashboard/complaints.
func (h *ResidentHandler) SubmitComplaint(c *fiber.Ctx) error {
	var form dto.ComplaintForm
	view := h.view(c, "dashboard")
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	resident := residentOf(c)
	view.Form = form

	err := h.community.SubmitComplaint(c.UserContext(), resident, service.ComplaintForm{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	})
	if projects, listErr := h.community.Projects(c.UserContext(), resident); listErr == nil {
		view.Data = fiber.Map{"projects": projects}
	}
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Form = dto.ComplaintForm{}
	view.Notice = "Complaint submitted successfully!"
	return h.render(c, fiber.StatusOK, view)
}

// Vote handles POST /dashboard/projects/:id/vote.
func (h *ResidentHandler) Vote(c *fiber.Ctx) error {
	view := h.view(c, "dashboard")
	view.Form = dto.ComplaintForm{}
	out, err := h.community.Vote(c.UserContext(), residentOf(c), c.Params("id"))
	if err != nil {
		if out.Projects != nil {
			view.Data = fiber.Map{"projects": out.Projects}
		}
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"projects": out.Projects, "vote": out.Result}
	view.Notice = out.Result.Message
	return h.render(c, fiber.StatusOK, view)
}

// About handles GET /about.
func (h *ResidentHandler) About(c *fiber.Ctx) error {
	view := h.view(c, "about")
	officials, err := h.community.Officials(c.UserContext(), residentOf(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"officials": officials}
	return h.render(c, fiber.StatusOK, view)
}

// FundRecords handles GET /fund-records.
func (h *ResidentHandler) FundRecords(c *fiber.Ctx) error {
	view := h.view(c, "fund-records")
	summary, err := h.community.Funds(c.UserContext(), residentOf(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = summary
	return h.render(c, fiber.StatusOK, view)
}

// Suggestions handles GET /project-suggestion.
func (h *ResidentHandler) Suggestions(c *fiber.Ctx) error {
	view := h.view(c, "project-suggestion")
	view.Form = dto.SuggestionForm{}
	items, err := h.community.Suggestions(c.UserContext(), residentOf(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"suggestions": items}
	return h.render(c, fiber.StatusOK, view)
}

// SubmitSuggestion handles POST /project-suggestion.
func (h *ResidentHandler) SubmitSuggestion(c *fiber.Ctx) error {
	var form dto.SuggestionForm
	view := h.view(c, "project-suggestion")
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	view.Form = form
	items, err := h.community.SubmitSuggestion(c.UserContext(), residentOf(c), form.Title, form.Description)
	if err != nil {
		if current, listErr := h.community.Suggestions(c.UserContext(), residentOf(c)); listErr == nil {
			view.Data = fiber.Map{"suggestions": current}
		}
		return h.fail(c, view, err)
	}
	view.Form = dto.SuggestionForm{}
	view.Data = fiber.Map{"suggestions": items}
	view.Notice = "Suggestion submitted!"
	return h.render(c, fiber.StatusOK, view)
}

// FAQs handles GET /faqs.
func (h *ResidentHandler) FAQs(c *fiber.Ctx) error {
	view := h.view(c, "faqs")
	view.Data = fiber.Map{"faqs": dto.FAQs}
	return h.render(c, fiber.StatusOK, view)
}
