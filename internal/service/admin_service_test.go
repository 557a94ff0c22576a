package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/media"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
)

type stubUploader struct {
	img   media.Image
	err   error
	calls int
}

func (s *stubUploader) Upload(_ context.Context, _ *domain.Upload) (media.Image, error) {
	s.calls++
	return s.img, s.err
}

func TestDashboardStats(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.AddProject(domain.Project{Title: "A"})
	srv.AddProject(domain.Project{Title: "B"})
	srv.AddOfficial(domain.Official{Name: "Kap"})
	srv.AddComplaint(domain.Complaint{Message: "x"})
	srv.WrapLists(true)
	svc := NewAdminService(client, nil, nil)

	stats, err := svc.DashboardStats(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		portalapi.ResourceProjects:    2,
		portalapi.ResourceOfficials:   1,
		portalapi.ResourceNews:        0,
		portalapi.ResourceFunds:       0,
		portalapi.ResourceComplaints:  1,
		portalapi.ResourceSuggestions: 0,
	}, stats)
}

func TestDashboardStatsFailsWhenAnyFetchFails(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.Fail("GET /api/admin/funds", http.StatusInternalServerError, map[string]string{"message": "db down"})
	svc := NewAdminService(client, nil, nil)

	_, err := svc.DashboardStats(context.Background(), "tok")
	requireDomainError(t, err, http.StatusBadGateway, "db down")
}

func TestProjectsFilterAndCreate(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.AddProject(domain.Project{Title: "Old", Status: domain.ProjectStatusPast})
	srv.AddProject(domain.Project{Title: "Now", Status: domain.ProjectStatusActive})
	svc := NewAdminService(client, nil, nil)
	ctx := context.Background()

	all, err := svc.Projects(ctx, "tok", "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.Projects(ctx, "tok", "active")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Now", active[0].Title)

	requireDomainError(t, svc.CreateProject(ctx, "tok", "", "x"), http.StatusBadRequest, "")
	require.NoError(t, svc.CreateProject(ctx, "tok", "Covered court", "Roof for the court"))

	upcoming, err := svc.Projects(ctx, "tok", string(domain.ProjectStatusUpcoming))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Covered court", upcoming[0].Title)
}

func TestComplaintsNewestFirst(t *testing.T) {
	srv, client := newFakeAPI(t)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	srv.AddComplaint(domain.Complaint{Message: "old", CreatedAt: base})
	srv.AddComplaint(domain.Complaint{Message: "newest", CreatedAt: base.Add(2 * time.Hour)})
	srv.AddComplaint(domain.Complaint{Message: "middle", CreatedAt: base.Add(time.Hour)})
	svc := NewAdminService(client, nil, nil)

	got, err := svc.Complaints(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"newest", "middle", "old"}, []string{got[0].Message, got[1].Message, got[2].Message})
}

func TestDelete(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.AddSuggestion(domain.Suggestion{ID: "s1", Title: "x"})
	svc := NewAdminService(client, nil, nil)
	ctx := context.Background()

	requireDomainError(t, svc.Delete(ctx, "tok", "users", "1"), http.StatusNotFound, "")
	require.NoError(t, svc.Delete(ctx, "tok", portalapi.ResourceSuggestions, "s1"))
	assert.Empty(t, srv.Suggestions())

	requireDomainError(t, svc.Delete(ctx, "tok", portalapi.ResourceSuggestions, "s1"), http.StatusNotFound, "s1 not found")
}

func TestSaveOfficialUploadsImage(t *testing.T) {
	srv, client := newFakeAPI(t)
	up := &stubUploader{img: media.Image{URL: "https://res.example/kap.jpg", PublicID: "barangayImage/kap"}}
	svc := NewAdminService(client, up, nil)
	ctx := context.Background()

	err := svc.SaveOfficial(ctx, "tok", "", OfficialForm{
		Name: "Kap. Santos", Position: "Punong Barangay", Term: "2023-2026",
		Image: &domain.Upload{Filename: "kap.jpg", Data: []byte("jpeg")},
	})
	require.NoError(t, err)
	officials := srv.Officials()
	require.Len(t, officials, 1)
	assert.Equal(t, "https://res.example/kap.jpg", officials[0].ImageURL)
	assert.Equal(t, "barangayImage/kap", officials[0].ImagePublicID)

	err = svc.SaveOfficial(ctx, "tok", officials[0].ID, OfficialForm{
		Name: "Kap. Santos", Position: "Punong Barangay", Term: "2026-2029",
		ImageURL: officials[0].ImageURL, ImagePublicID: officials[0].ImagePublicID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls, "no new file, no upload")
	assert.Equal(t, "2026-2029", srv.Officials()[0].Term)
	assert.Equal(t, "https://res.example/kap.jpg", srv.Officials()[0].ImageURL)
}

func TestSaveNewsUploadDisabledKeepsImage(t *testing.T) {
	srv, client := newFakeAPI(t)
	svc := NewAdminService(client, &stubUploader{err: media.ErrDisabled}, nil)

	err := svc.SaveNews(context.Background(), "tok", "", NewsForm{
		Title: "Fiesta", Description: "Schedule of events", ImageURL: "https://old.example/a.jpg",
		Image: &domain.Upload{Data: []byte("x")},
	})
	require.NoError(t, err)
	require.Len(t, srv.News(), 1)
	assert.Equal(t, "https://old.example/a.jpg", srv.News()[0].ImageURL)
}

func TestSaveNewsUploadFailure(t *testing.T) {
	srv, client := newFakeAPI(t)
	svc := NewAdminService(client, &stubUploader{err: errors.New("timeout")}, nil)

	err := svc.SaveNews(context.Background(), "tok", "", NewsForm{
		Title: "Fiesta", Description: "Schedule", Image: &domain.Upload{Data: []byte("x")},
	})
	requireDomainError(t, err, http.StatusBadGateway, "Image upload failed")
	assert.Empty(t, srv.News())
}

func TestSaveFund(t *testing.T) {
	srv, client := newFakeAPI(t)
	svc := NewAdminService(client, nil, nil)
	ctx := context.Background()

	err := svc.SaveFund(ctx, "tok", "", FundForm{Source: "IRA", Amount: "lots", Date: "2025-01-01"})
	requireDomainError(t, err, http.StatusBadRequest, "Amount must be a number")

	err = svc.SaveFund(ctx, "tok", "", FundForm{
		Source: "IRA", Amount: "5000", Date: "2025-01-01",
		Image: &domain.Upload{Filename: "receipt.png", Data: []byte("png")},
	})
	require.NoError(t, err)
	funds := srv.Funds()
	require.Len(t, funds, 1)
	assert.Equal(t, "https://cdn.example/receipt.png", funds[0].ImageURL)

	require.NoError(t, svc.SaveFund(ctx, "tok", funds[0].ID, FundForm{Source: "IRA", Amount: "7500", Date: "2025-01-01"}))
	summary, err := svc.Funds(ctx, "tok")
	require.NoError(t, err)
	assert.InDelta(t, 7500, summary.Total, 0.001)
	assert.Equal(t, "https://cdn.example/receipt.png", summary.Records[0].ImageURL)
}

func TestSaveHome(t *testing.T) {
	_, client := newFakeAPI(t)
	svc := NewAdminService(client, nil, nil)
	ctx := context.Background()

	_, err := svc.SaveHome(ctx, "tok", "", HomeForm{})
	requireDomainError(t, err, http.StatusBadRequest, "Title is required")

	home, err := svc.SaveHome(ctx, "tok", "", HomeForm{Title: "Welcome", Background: &domain.Upload{Filename: "bg.jpg", Data: []byte("x")}})
	require.NoError(t, err)
	require.NotEmpty(t, home.ID)
	assert.Equal(t, "https://cdn.example/bg.jpg", home.BackgroundURL)

	home, err = svc.SaveHome(ctx, "tok", home.ID, HomeForm{Title: "Mabuhay"})
	require.NoError(t, err)
	assert.Equal(t, "Mabuhay", home.Title)
	assert.Equal(t, "https://cdn.example/bg.jpg", home.BackgroundURL)

	got, err := svc.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, home, got)
}
