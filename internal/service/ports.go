package service

import (
	"context"

	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
)

// PortalAPI is the subset of the community API the services call.
// *portalapi.Client satisfies it.
type PortalAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, payload portalapi.RegisterRequest) error

	ListProjects(ctx context.Context, token string) ([]domain.Project, error)
	CreateProject(ctx context.Context, token string, in portalapi.ProjectInput) error
	Vote(ctx context.Context, token, userID, projectID string) (domain.VoteResult, error)

	ListOfficials(ctx context.Context, token string) ([]domain.Official, error)
	CreateOfficial(ctx context.Context, token string, in portalapi.OfficialInput) error
	UpdateOfficial(ctx context.Context, token, id string, in portalapi.OfficialInput) (domain.Official, error)

	ListNews(ctx context.Context, token string) ([]domain.News, error)
	CreateNews(ctx context.Context, token string, in portalapi.NewsInput) error
	UpdateNews(ctx context.Context, token, id string, in portalapi.NewsInput) (domain.News, error)

	ListFunds(ctx context.Context, token string) ([]domain.Fund, error)
	CreateFund(ctx context.Context, token string, in portalapi.FundInput) error
	UpdateFund(ctx context.Context, token, id string, in portalapi.FundInput) error

	ListComplaints(ctx context.Context, token string) ([]domain.Complaint, error)
	SubmitComplaint(ctx context.Context, token, userID string, in portalapi.ComplaintInput) error

	ListSuggestions(ctx context.Context, token string) ([]domain.Suggestion, error)
	SubmitSuggestion(ctx context.Context, token, userID string, in portalapi.SuggestionInput) error

	GetHome(ctx context.Context) (domain.HomeContent, error)
	SaveHome(ctx context.Context, token, id string, in portalapi.HomeInput) (domain.HomeContent, error)

	Count(ctx context.Context, token, resource string) (int, error)
	Delete(ctx context.Context, token, resource, id string) error
}

var _ PortalAPI = (*portalapi.Client)(nil)
