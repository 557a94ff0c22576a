package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

// Complaints filed from the resident dashboard carry no identity in the
// body; the resident is identified by the x-user-id header instead.
const (
	anonymousName  = "Anonymous"
	anonymousEmail = "anonymous@example.com"
)

// Resident identifies the visitor admitted by the resident gate.
type Resident struct {
	ID    string
	Token string
}

// FundSummary is the fund records page.
type FundSummary struct {
	Records []domain.Fund `json:"records"`
	Total   float64       `json:"total"`
}

// VoteOutcome is a vote toggle followed by a fresh project list.
type VoteOutcome struct {
	Result   domain.VoteResult `json:"result"`
	Projects []domain.Project  `json:"projects"`
}

// ComplaintForm is what the complaints box submits.
type ComplaintForm struct {
	Name    string
	Email   string
	Message string
}

// CommunityService serves the public and resident pages.
type CommunityService struct {
	api    PortalAPI
	logger *zap.Logger
}

// NewCommunityService builds the service.
func NewCommunityService(api PortalAPI, logger *zap.Logger) *CommunityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommunityService{api: api, logger: logger}
}

// Home returns the landing page content.
func (s *CommunityService) Home(ctx context.Context) (domain.HomeContent, error) {
	home, err := s.api.GetHome(ctx)
	if err != nil {
		return domain.HomeContent{}, fromAPI(err, "Failed to load home data.")
	}
	return home, nil
}

// News returns published news.
func (s *CommunityService) News(ctx context.Context) ([]domain.News, error) {
	news, err := s.api.ListNews(ctx, "")
	if err != nil {
		return nil, fromAPI(err, "Failed to load news.")
	}
	return news, nil
}

// Projects returns the projects residents can vote on.
func (s *CommunityService) Projects(ctx context.Context, r Resident) ([]domain.Project, error) {
	projects, err := s.api.ListProjects(ctx, r.Token)
	if err != nil {
		return nil, fromAPI(err, "Failed to load projects.")
	}
	return projects, nil
}

// Vote toggles the resident's vote and refetches the project list so the
// new count is shown.
func (s *CommunityService) Vote(ctx context.Context, r Resident, projectID string) (VoteOutcome, error) {
	if strings.TrimSpace(projectID) == "" {
		return VoteOutcome{}, apperrors.NewValidationError("Project is required", nil)
	}
	res, err := s.api.Vote(ctx, r.Token, r.ID, projectID)
	if err != nil {
		return VoteOutcome{}, fromAPI(err, "Failed to vote.")
	}
	projects, err := s.Projects(ctx, r)
	if err != nil {
		return VoteOutcome{Result: res}, err
	}
	s.logger.Debug("vote toggled",
		zap.String("project_id", projectID),
		zap.String("status", string(res.Status)),
		zap.Int("votes", res.Votes),
	)
	return VoteOutcome{Result: res, Projects: projects}, nil
}

// SubmitComplaint files a complaint. Blank messages are rejected locally.
func (s *CommunityService) SubmitComplaint(ctx context.Context, r Resident, form ComplaintForm) error {
	message := strings.TrimSpace(form.Message)
	if message == "" {
		return apperrors.NewValidationError("Please enter your complaint", map[string]any{"message": "required"})
	}
	in := portalapi.ComplaintInput{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: message,
	}
	if in.Name == "" {
		in.Name = anonymousName
	}
	if in.Email == "" {
		in.Email = anonymousEmail
	}
	if err := s.api.SubmitComplaint(ctx, r.Token, r.ID, in); err != nil {
		return fromAPI(err, "Failed to submit complaint.")
	}
	return nil
}

// Suggestions returns project suggestions.
func (s *CommunityService) Suggestions(ctx context.Context, r Resident) ([]domain.Suggestion, error) {
	items, err := s.api.ListSuggestions(ctx, r.Token)
	if err != nil {
		return nil, fromAPI(err, "Failed to load suggestions.")
	}
	return items, nil
}

// SubmitSuggestion files a suggestion and returns the refreshed list.
func (s *CommunityService) SubmitSuggestion(ctx context.Context, r Resident, title, description string) ([]domain.Suggestion, error) {
	in := portalapi.SuggestionInput{Title: strings.TrimSpace(title), Description: strings.TrimSpace(description)}
	if in.Title == "" || in.Description == "" {
		return nil, apperrors.NewValidationError("Please fill in all fields.", nil)
	}
	if err := s.api.SubmitSuggestion(ctx, r.Token, r.ID, in); err != nil {
		return nil, fromAPI(err, "Failed to submit suggestion.")
	}
	return s.Suggestions(ctx, r)
}

// Officials returns the barangay officials.
func (s *CommunityService) Officials(ctx context.Context, r Resident) ([]domain.Official, error) {
	officials, err := s.api.ListOfficials(ctx, r.Token)
	if err != nil {
		return nil, fromAPI(err, "Failed to load officials.")
	}
	return officials, nil
}

// Funds returns fund records and their total.
func (s *CommunityService) Funds(ctx context.Context, r Resident) (FundSummary, error) {
	funds, err := s.api.ListFunds(ctx, r.Token)
	if err != nil {
		return FundSummary{}, fromAPI(err, "Failed to load fund records.")
	}
	return FundSummary{Records: funds, Total: domain.TotalFunds(funds)}, nil
}
