package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/media"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
	apperrors "github.com/spec-kit/barangay-portal/pkg/util"
)

// DashboardResources are counted on the admin dashboard, in display order.
var DashboardResources = []string{
	portalapi.ResourceProjects,
	portalapi.ResourceOfficials,
	portalapi.ResourceNews,
	portalapi.ResourceFunds,
	portalapi.ResourceComplaints,
	portalapi.ResourceSuggestions,
}

var deletable = map[string]string{
	portalapi.ResourceProjects:    "Failed to delete project",
	portalapi.ResourceOfficials:   "Failed to delete official",
	portalapi.ResourceNews:        "Failed to delete news",
	portalapi.ResourceFunds:       "Failed to delete record",
	portalapi.ResourceComplaints:  "Failed to delete complaint",
	portalapi.ResourceSuggestions: "Failed to delete suggestion.",
}

// OfficialForm creates or updates an official.
type OfficialForm struct {
	Name          string
	Position      string
	Term          string
	ImageURL      string
	ImagePublicID string
	Image         *domain.Upload
}

// NewsForm creates or updates a news item.
type NewsForm struct {
	Title         string
	Date          string
	Description   string
	ImageURL      string
	ImagePublicID string
	Image         *domain.Upload
}

// FundForm creates or updates a fund record.
type FundForm struct {
	Source      string
	Description string
	Amount      string
	Date        string
	Image       *domain.Upload
}

// HomeForm saves the landing page.
type HomeForm struct {
	Title      string
	SubTitle   string
	Content    string
	Background *domain.Upload
}

// AdminService serves the administrative pages.
type AdminService struct {
	api      PortalAPI
	uploader media.Uploader
	logger   *zap.Logger
}

// NewAdminService builds the service. uploader may be nil when image
// uploads are not configured.
func NewAdminService(api PortalAPI, uploader media.Uploader, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{api: api, uploader: uploader, logger: logger}
}

// DashboardStats counts every managed list. All fetches run concurrently
// and all must succeed.
func (s *AdminService) DashboardStats(ctx context.Context, token string) (map[string]int, error) {
	counts := make([]int, len(DashboardResources))
	g, gctx := errgroup.WithContext(ctx)
	for i, resource := range DashboardResources {
		g.Go(func() error {
			n, err := s.api.Count(gctx, token, resource)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard stats failed", zap.Error(err))
		return nil, fromAPI(err, "Error fetching stats")
	}
	stats := make(map[string]int, len(counts))
	for i, resource := range DashboardResources {
		stats[resource] = counts[i]
	}
	return stats, nil
}

// Projects lists projects, optionally filtered by status.
func (s *AdminService) Projects(ctx context.Context, token, status string) ([]domain.Project, error) {
	projects, err := s.api.ListProjects(ctx, token)
	if err != nil {
		return nil, fromAPI(err, "Error fetching projects")
	}
	return domain.FilterProjects(projects, status), nil
}

// CreateProject adds a project for community voting.
func (s *AdminService) CreateProject(ctx context.Context, token, title, description string) error {
	in := portalapi.ProjectInput{Title: strings.TrimSpace(title), Description: strings.TrimSpace(description)}
	if in.Title == "" || in.Description == "" {
		return apperrors.NewValidationError("Title and description are required", nil)
	}
	if err := s.api.CreateProject(ctx, token, in); err != nil {
		return fromAPI(err, "Failed to add project")
	}
	return nil
}

// Delete removes one item of a managed resource.
func (s *AdminService) Delete(ctx context.Context, token, resource, id string) error {
	fallback, ok := deletable[resource]
	if !ok {
		return apperrors.NewNotFound(resource, nil)
	}
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("id is required", nil)
	}
	if err := s.api.Delete(ctx, token, resource, id); err != nil {
		return fromAPI(err, fallback)
	}
	return nil
}

// Officials lists officials.
func (s *AdminService) Officials(ctx context.Context, token string) ([]domain.Official, error) {
	officials, err := s.api.ListOfficials(ctx, token)
	if err != nil {
		return nil, fromAPI(err, "Error fetching officials")
	}
	return officials, nil
}

// SaveOfficial creates an official when id is empty and updates it otherwise.
func (s *AdminService) SaveOfficial(ctx context.Context, token, id string, form OfficialForm) error {
	in := portalapi.OfficialInput{
		Name:          strings.TrimSpace(form.Name),
		Position:      strings.TrimSpace(form.Position),
		Term:          strings.TrimSpace(form.Term),
		ImageURL:      form.ImageURL,
		ImagePublicID: form.ImagePublicID,
	}
	if in.Name == "" || in.Position == "" {
		return apperrors.NewValidationError("Name and position are required", nil)
	}
	img, err := s.upload(ctx, form.Image)
	if err != nil {
		return err
	}
	if img.URL != "" {
		in.ImageURL, in.ImagePublicID = img.URL, img.PublicID
	}
	if id == "" {
		err = s.api.CreateOfficial(ctx, token, in)
	} else {
		_, err = s.api.UpdateOfficial(ctx, token, id, in)
	}
	if err != nil {
		return fromAPI(err, "Error saving official")
	}
	return nil
}

// News lists news items.
func (s *AdminService) News(ctx context.Context, token string) ([]domain.News, error) {
	news, err := s.api.ListNews(ctx, token)
	if err != nil {
		return nil, fromAPI(err, "Error fetching news")
	}
	return news, nil
}

// SaveNews creates a news item when id is empty and updates it otherwise.
func (s *AdminService) SaveNews(ctx context.Context, token, id string, form NewsForm) error {
	in := portalapi.NewsInput{
		Title:         strings.TrimSpace(form.Title),
		Date:          strings.TrimSpace(form.Date),
		Description:   strings.TrimSpace(form.Description),
		ImageURL:      form.ImageURL,
		ImagePublicID: form.ImagePublicID,
	}
	if in.Title == "" || in.Description == "" {
		return apperrors.NewValidationError("Title and description are required", nil)
	}
	img, err := s.upload(ctx, form.Image)
	if err != nil {
		return err
	}
	if img.URL != "" {
		in.ImageURL, in.ImagePublicID = img.URL, img.PublicID
	}
	if id == "" {
		err = s.api.CreateNews(ctx, token, in)
	} else {
		_, err = s.api.UpdateNews(ctx, token, id, in)
	}
	if err != nil {
		return fromAPI(err, "Error saving news")
	}
	return nil
}

// Funds lists fund records with their total.
func (s *AdminService) Funds(ctx context.Context, token string) (FundSummary, error) {
	funds, err := s.api.ListFunds(ctx, token)
	if err != nil {
		return FundSummary{}, fromAPI(err, "Error fetching funds")
	}
	return FundSummary{Records: funds, Total: domain.TotalFunds(funds)}, nil
}

// SaveFund creates a fund record when id is empty and updates it otherwise.
// The receipt image is forwarded to the API as part of the form.
func (s *AdminService) SaveFund(ctx context.Context, token, id string, form FundForm) error {
	in := portalapi.FundInput{
		Source:      strings.TrimSpace(form.Source),
		Description: strings.TrimSpace(form.Description),
		Amount:      strings.TrimSpace(form.Amount),
		Date:        strings.TrimSpace(form.Date),
		Image:       form.Image,
	}
	if in.Source == "" || in.Amount == "" || in.Date == "" {
		return apperrors.NewValidationError("Source, amount and date are required", nil)
	}
	if _, err := strconv.ParseFloat(in.Amount, 64); err != nil {
		return apperrors.NewValidationError("Amount must be a number", map[string]any{"amount": in.Amount})
	}
	var err error
	if id == "" {
		err = s.api.CreateFund(ctx, token, in)
	} else {
		err = s.api.UpdateFund(ctx, token, id, in)
	}
	if err != nil {
		return fromAPI(err, "Error saving fund record")
	}
	return nil
}

// Complaints lists complaints, newest first.
func (s *AdminService) Complaints(ctx context.Context, token string) ([]domain.Complaint, error) {
	complaints, err := s.api.ListComplaints(ctx, token)
	if err != nil {
		return nil, fromAPI(err, "Error fetching complaints")
	}
	domain.SortComplaintsNewestFirst(complaints)
	return complaints, nil
}

// Suggestions lists project suggestions.
func (s *AdminService) Suggestions(ctx context.Context, token string) ([]domain.Suggestion, error) {
	items, err := s.api.ListSuggestions(ctx, token)
	if err != nil {
		return nil, fromAPI(err, "Error fetching suggestions")
	}
	return items, nil
}

// Home returns the landing page content for editing.
func (s *AdminService) Home(ctx context.Context) (domain.HomeContent, error) {
	home, err := s.api.GetHome(ctx)
	if err != nil {
		return domain.HomeContent{}, fromAPI(err, "Failed to load home data.")
	}
	return home, nil
}

// SaveHome creates or updates the landing page content.
func (s *AdminService) SaveHome(ctx context.Context, token, id string, form HomeForm) (domain.HomeContent, error) {
	in := portalapi.HomeInput{
		Title:      strings.TrimSpace(form.Title),
		SubTitle:   strings.TrimSpace(form.SubTitle),
		Content:    strings.TrimSpace(form.Content),
		Background: form.Background,
	}
	if in.Title == "" {
		return domain.HomeContent{}, apperrors.NewValidationError("Title is required", nil)
	}
	home, err := s.api.SaveHome(ctx, token, strings.TrimSpace(id), in)
	if err != nil {
		return domain.HomeContent{}, fromAPI(err, "Failed to save home data.")
	}
	return home, nil
}

// upload stores file when one was attached. Without a configured uploader
// the existing image is kept.
func (s *AdminService) upload(ctx context.Context, file *domain.Upload) (media.Image, error) {
	if file.Empty() {
		return media.Image{}, nil
	}
	if s.uploader == nil {
		s.logger.Info("image upload skipped, uploads not configured")
		return media.Image{}, nil
	}
	img, err := s.uploader.Upload(ctx, file)
	if errors.Is(err, media.ErrDisabled) {
		s.logger.Info("image upload skipped, uploads not configured")
		return media.Image{}, nil
	}
	if err != nil {
		s.logger.Warn("image upload failed", zap.Error(err))
		return media.Image{}, apperrors.NewUpstreamError("Image upload failed", err)
	}
	return img, nil
}
