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

// AdminHandler serves the administrative pages.
type AdminHandler struct {
	pages
	auth  *service.AuthService
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(creds *auth.Credentials, authService *service.AuthService, admin *service.AdminService, logger *zap.Logger, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{pages: newPages(creds, logger, metrics), auth: authService, admin: admin}
}

// LoginPage handles GET /admin-login.
func (h *AdminHandler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dto.View{Page: "admin-login", Form: dto.AdminLoginForm{}})
}

// Login handles POST /admin-login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var form dto.AdminLoginForm
	view := dto.View{Page: "admin-login"}
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	view.Form = form.Redacted()

	token, err := h.auth.LoginAdmin(c.UserContext(), form.Email, form.Password)
	if err != nil {
		return h.fail(c, view, err)
	}
	if err := h.creds.Login(c, auth.Admin, token); err != nil {
		return h.fail(c, view, apperrors.NewInternalError(err))
	}
	return c.Redirect(auth.Admin.HomePath, fiber.StatusSeeOther)
}

// Logout handles POST /admin/logout.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.creds.Logout(c, auth.Admin); err != nil {
		h.logger.Warn("admin logout failed", zap.Error(err))
	}
	return c.Redirect(auth.Admin.LoginPath, fiber.StatusSeeOther)
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	view := dto.View{Page: "admin-dashboard"}
	stats, err := h.admin.DashboardStats(c.UserContext(), adminToken(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	out := make([]dto.DashboardStat, 0, len(service.DashboardResources))
	for _, resource := range service.DashboardResources {
		out = append(out, dto.DashboardStat{Resource: resource, Count: stats[resource]})
	}
	view.Data = fiber.Map{"stats": out}
	return h.render(c, fiber.StatusOK, view)
}

// Projects handles GET /admin/projects?status=.
func (h *AdminHandler) Projects(c *fiber.Ctx) error {
	return h.projects(c, dto.ProjectForm{}, nil)
}

func (h *AdminHandler) projects(c *fiber.Ctx, form dto.ProjectForm, cause error) error {
	status := c.Query("status", "all")
	view := dto.View{Page: "admin-projects", Form: form}
	projects, err := h.admin.Projects(c.UserContext(), adminToken(c), status)
	if err == nil {
		view.Data = fiber.Map{"projects": projects, "filter": status}
	}
	if cause != nil {
		return h.fail(c, view, cause)
	}
	if err != nil {
		return h.fail(c, view, err)
	}
	return h.render(c, fiber.StatusOK, view)
}

// CreateProject handles POST /admin/projects.
func (h *AdminHandler) CreateProject(c *fiber.Ctx) error {
	var form dto.ProjectForm
	if err := c.BodyParser(&form); err != nil {
		return h.projects(c, form, apperrors.NewValidationError("invalid payload", nil))
	}
	if err := h.admin.CreateProject(c.UserContext(), adminToken(c), form.Title, form.Description); err != nil {
		return h.projects(c, form, err)
	}
	return c.Redirect("/admin/projects", fiber.StatusSeeOther)
}

// Officials handles GET /admin/officials.
func (h *AdminHandler) Officials(c *fiber.Ctx) error {
	return h.officials(c, dto.OfficialForm{}, nil)
}

func (h *AdminHandler) officials(c *fiber.Ctx, form dto.OfficialForm, cause error) error {
	view := dto.View{Page: "admin-officials", Form: form}
	officials, err := h.admin.Officials(c.UserContext(), adminToken(c))
	if err == nil {
		view.Data = fiber.Map{"officials": officials}
	}
	if cause != nil {
		return h.fail(c, view, cause)
	}
	if err != nil {
		return h.fail(c, view, err)
	}
	return h.render(c, fiber.StatusOK, view)
}

// SaveOfficial handles POST /admin/officials and POST /admin/officials/:id.
func (h *AdminHandler) SaveOfficial(c *fiber.Ctx) error {
	var form dto.OfficialForm
	if err := c.BodyParser(&form); err != nil {
		return h.officials(c, form, apperrors.NewValidationError("invalid payload", nil))
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return h.officials(c, form, err)
	}
	err = h.admin.SaveOfficial(c.UserContext(), adminToken(c), c.Params("id"), service.OfficialForm{
		Name:          form.Name,
		Position:      form.Position,
		Term:          form.Term,
		ImageURL:      form.ImageURL,
		ImagePublicID: form.ImagePublicID,
		Image:         image,
	})
	if err != nil {
		return h.officials(c, form, err)
	}
	return c.Redirect("/admin/officials", fiber.StatusSeeOther)
}

// News handles GET /admin/news.
func (h *AdminHandler) News(c *fiber.Ctx) error {
	return h.news(c, dto.NewsForm{}, nil)
}

func (h *AdminHandler) news(c *fiber.Ctx, form dto.NewsForm, cause error) error {
	view := dto.View{Page: "admin-news", Form: form}
	news, err := h.admin.News(c.UserContext(), adminToken(c))
	if err == nil {
		view.Data = fiber.Map{"news": news}
	}
	if cause != nil {
		return h.fail(c, view, cause)
	}
	if err != nil {
		return h.fail(c, view, err)
	}
	return h.render(c, fiber.StatusOK, view)
}

// SaveNews handles POST /admin/news and POST /admin/news/:id.
func (h *AdminHandler) SaveNews(c *fiber.Ctx) error {
	var form dto.NewsForm
	if err := c.BodyParser(&form); err != nil {
		return h.news(c, form, apperrors.NewValidationError("invalid payload", nil))
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return h.news(c, form, err)
	}
	err = h.admin.SaveNews(c.UserContext(), adminToken(c), c.Params("id"), service.NewsForm{
		Title:         form.Title,
		Date:          form.Date,
		Description:   form.Description,
		ImageURL:      form.ImageURL,
		ImagePublicID: form.ImagePublicID,
		Image:         image,
	})
	if err != nil {
		return h.news(c, form, err)
	}
	return c.Redirect("/admin/news", fiber.StatusSeeOther)
}

// Funds handles GET /admin/funds.
func (h *AdminHandler) Funds(c *fiber.Ctx) error {
	return h.funds(c, dto.FundForm{}, nil)
}

func (h *AdminHandler) funds(c *fiber.Ctx, form dto.FundForm, cause error) error {
	view := dto.View{Page: "admin-funds", Form: form}
	summary, err := h.admin.Funds(c.UserContext(), adminToken(c))
	if err == nil {
		view.Data = summary
	}
	if cause != nil {
		return h.fail(c, view, cause)
	}
	if err != nil {
		return h.fail(c, view, err)
	}
	return h.render(c, fiber.StatusOK, view)
}

// SaveFund handles POST /admin/funds and POST /admin/funds/:id.
func (h *AdminHandler) SaveFund(c *fiber.Ctx) error {
	var form dto.FundForm
	if err := c.BodyParser(&form); err != nil {
		return h.funds(c, form, apperrors.NewValidationError("invalid payload", nil))
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return h.funds(c, form, err)
	}
	err = h.admin.SaveFund(c.UserContext(), adminToken(c), c.Params("id"), service.FundForm{
		Source:      form.Source,
		Description: form.Description,
		Amount:      form.Amount,
		Date:        form.Date,
		Image:       image,
	})
	if err != nil {
		return h.funds(c, form, err)
	}
	return c.Redirect("/admin/funds", fiber.StatusSeeOther)
}

// Complaints handles GET /admin/complaints.
func (h *AdminHandler) Complaints(c *fiber.Ctx) error {
	view := dto.View{Page: "admin-complaints"}
	complaints, err := h.admin.Complaints(c.UserContext(), adminToken(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"complaints": complaints}
	return h.render(c, fiber.StatusOK, view)
}

// Suggestions handles GET /admin/project-suggestions.
func (h *AdminHandler) Suggestions(c *fiber.Ctx) error {
	view := dto.View{Page: "admin-project-suggestions"}
	items, err := h.admin.Suggestions(c.UserContext(), adminToken(c))
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"suggestions": items}
	return h.render(c, fiber.StatusOK, view)
}

// Delete returns a handler for POST /admin/<resource>/:id/delete.
func (h *AdminHandler) Delete(resource string) fiber.Handler {
	listPath := "/admin/" + resource
	return func(c *fiber.Ctx) error {
		if err := h.admin.Delete(c.UserContext(), adminToken(c), resource, c.Params("id")); err != nil {
			return h.fail(c, dto.View{Page: "admin-" + resource}, err)
		}
		return c.Redirect(listPath, fiber.StatusSeeOther)
	}
}

// HomeEditor handles GET /admin/home.
func (h *AdminHandler) HomeEditor(c *fiber.Ctx) error {
	view := dto.View{Page: "admin-home"}
	home, err := h.admin.Home(c.UserContext())
	if err != nil {
		view.Form = dto.HomeForm{}
		return h.fail(c, view, err)
	}
	view.Form = dto.HomeForm{ID: home.ID, Title: home.Title, SubTitle: home.SubTitle, Content: home.Content}
	view.Data = home
	return h.render(c, fiber.StatusOK, view)
}

// SaveHome handles POST /admin/home.
func (h *AdminHandler) SaveHome(c *fiber.Ctx) error {
	var form dto.HomeForm
	view := dto.View{Page: "admin-home"}
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	view.Form = form
	background, err := formUpload(c, "background")
	if err != nil {
		return h.fail(c, view, err)
	}
	created := form.ID == ""
	home, err := h.admin.SaveHome(c.UserContext(), adminToken(c), form.ID, service.HomeForm{
		Title:      form.Title,
		SubTitle:   form.SubTitle,
		Content:    form.Content,
		Background: background,
	})
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Form = dto.HomeForm{ID: home.ID, Title: home.Title, SubTitle: home.SubTitle, Content: home.Content}
	view.Data = home
	view.Notice = "Home content updated successfully!"
	if created {
		view.Notice = "Home content created successfully!"
	}
	return h.render(c, fiber.StatusOK, view)
}
