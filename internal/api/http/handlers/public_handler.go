package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/api/dto"
	"github.com/spec-kit/barangay-portal/internal/auth"
	"github.com/spec-kit/barangay-portal/internal/observability"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
	"github.com/spec-kit/barangay-portal/internal/service"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

// PublicHandler serves pages anyone can open, plus resident login and registration.
type PublicHandler struct {
	pages
	auth      *service.AuthService
	community *service.CommunityService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(creds *auth.Credentials, authService *service.AuthService, community *service.CommunityService, logger *zap.Logger, metrics *observability.Metrics) *PublicHandler {
	return &PublicHandler{pages: newPages(creds, logger, metrics), auth: authService, community: community}
}

// Home handles GET /.
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	view := dto.View{Page: "home", Header: h.header(c)}
	home, err := h.community.Home(c.UserContext())
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = home
	return h.render(c, fiber.StatusOK, view)
}

// News handles GET /news.
func (h *PublicHandler) News(c *fiber.Ctx) error {
	view := dto.View{Page: "news", Header: h.header(c)}
	news, err := h.community.News(c.UserContext())
	if err != nil {
		return h.fail(c, view, err)
	}
	view.Data = fiber.Map{"news": news}
	return h.render(c, fiber.StatusOK, view)
}

// ContactPage handles GET /contact.
func (h *PublicHandler) ContactPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dto.View{Page: "contact", Header: h.header(c), Form: dto.ContactForm{}})
}

// Contact handles POST /contact. Messages are only logged.
func (h *PublicHandler) Contact(c *fiber.Ctx) error {
	var form dto.ContactForm
	view := dto.View{Page: "contact", Header: h.header(c)}
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	view.Form = form
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" || strings.TrimSpace(form.Message) == "" {
		return h.fail(c, view, apperrors.NewValidationError("Please fill in all fields.", nil))
	}
	h.logger.Info("contact message received",
		zap.String("name", form.Name),
		zap.String("email", form.Email),
		zap.Int("length", len(form.Message)))
	view.Form = dto.ContactForm{}
	view.Notice = "Thank you for reaching out! We'll get back to you soon."
	return h.render(c, fiber.StatusOK, view)
}

// LoginPage handles GET /login.
func (h *PublicHandler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dto.View{Page: "login", Header: h.header(c), Form: dto.LoginForm{}})
}

// Login handles POST /login. The slot is written only after the API issued a token.
func (h *PublicHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	view := dto.View{Page: "login", Header: dto.NewHeader(false)}
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	view.Form = form.Redacted()

	token, err := h.auth.LoginResident(c.UserContext(), form.Username, form.Password)
	if err != nil {
		return h.fail(c, view, err)
	}
	if err := h.creds.Login(c, auth.Resident, token); err != nil {
		return h.fail(c, view, apperrors.NewInternalError(err))
	}
	return c.Redirect(auth.Resident.HomePath, fiber.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (h *PublicHandler) RegisterPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, dto.View{Page: "register", Header: h.header(c), Form: dto.RegisterForm{}})
}

// Register handles POST /register.
func (h *PublicHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	view := dto.View{Page: "register", Header: h.header(c)}
	if err := c.BodyParser(&form); err != nil {
		return h.fail(c, view, apperrors.NewValidationError("invalid payload", nil))
	}
	view.Form = form.Redacted()

	err := h.auth.Register(c.UserContext(), portalapi.RegisterRequest{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		MiddleName:      form.MiddleName,
		ContactNumber:   form.ContactNumber,
		Address:         form.Address,
		Username:        form.Username,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return h.fail(c, view, err)
	}
	return c.Redirect(auth.Resident.LoginPath, fiber.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *PublicHandler) Logout(c *fiber.Ctx) error {
	if err := h.creds.Logout(c, auth.Resident); err != nil {
		h.logger.Warn("resident logout failed", zap.Error(err))
	}
	return c.Redirect(auth.Resident.LoginPath, fiber.StatusSeeOther)
}
