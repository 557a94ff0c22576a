package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/portalapi"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

// AuthService coordinates login and registration against the community API.
// Storing the issued token is left to the caller so that a failed login
// never touches the visitor's storage.
type AuthService struct {
	api    PortalAPI
	logger *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(api PortalAPI, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, logger: logger}
}

// LoginResident returns the token issued for a resident.
func (s *AuthService) LoginResident(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperrors.NewValidationError("Username and password are required", nil)
	}
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.logger.Info("resident login failed", zap.String("username", username), zap.Error(err))
		return "", fromAPI(err, "Login failed")
	}
	return token, nil
}

// LoginAdmin returns the token issued for an administrator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apperrors.NewValidationError("Email and password are required", nil)
	}
	token, err := s.api.AdminLogin(ctx, email, password)
	if err != nil {
		s.logger.Info("admin login failed", zap.String("email", email), zap.Error(err))
		if portalapi.IsKind(err, portalapi.KindNetwork) || portalapi.IsKind(err, portalapi.KindServer) {
			return "", fromAPI(err, "Server error. Try again later.")
		}
		return "", fromAPI(err, "Invalid email or password.")
	}
	return token, nil
}

// Register creates a resident account after checking the password
// confirmation locally.
func (s *AuthService) Register(ctx context.Context, req portalapi.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	missing := map[string]any{}
	if req.Username == "" {
		missing["username"] = "required"
	}
	if req.Password == "" {
		missing["password"] = "required"
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("Please fill in all required fields", missing)
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.NewValidationError("Passwords do not match", map[string]any{"confirmPassword": "mismatch"})
	}
	if err := s.api.Register(ctx, req); err != nil {
		s.logger.Info("registration failed", zap.String("username", req.Username), zap.Error(err))
		return fromAPI(err, "Registration failed")
	}
	return nil
}
