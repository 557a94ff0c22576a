package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/api/http/handlers"
	"github.com/spec-kit/barangay-portal/internal/auth"
	"github.com/spec-kit/barangay-portal/internal/media"
	"github.com/spec-kit/barangay-portal/internal/observability"
	"github.com/spec-kit/barangay-portal/internal/service"
)

// AppDeps are the collaborators the portal server is assembled from.
type AppDeps struct {
	Name        string
	Version     string
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	MetricsPath string
	Middleware  MiddlewareConfig
	Credentials *auth.Credentials
	API         service.PortalAPI
	Uploader    media.Uploader
	Ready       map[string]handlers.Pinger
}

// NewApp builds the fiber application with every route registered.
func NewApp(deps AppDeps) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               deps.Name,
		DisableStartupMessage: true,
		BodyLimit:             12 << 20,
	})
	RegisterMiddlewares(app, logger, deps.Metrics, deps.Middleware)

	authService := service.NewAuthService(deps.API, logger)
	community := service.NewCommunityService(deps.API, logger)
	admin := service.NewAdminService(deps.API, deps.Uploader, logger)

	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler(deps.Name, deps.Version, deps.Ready),
		Public:      handlers.NewPublicHandler(deps.Credentials, authService, community, logger, deps.Metrics),
		Resident:    handlers.NewResidentHandler(deps.Credentials, community, logger, deps.Metrics),
		Admin:       handlers.NewAdminHandler(deps.Credentials, authService, admin, logger, deps.Metrics),
		Credentials: deps.Credentials,
		Metrics:     deps.Metrics,
		MetricsPath: deps.MetricsPath,
	})
	return app
}
