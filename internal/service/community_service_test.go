package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/portalapi/portalapitest"
)

func TestVoteTogglesAndRefetches(t *testing.T) {
	srv, client := newFakeAPI(t)
	project := srv.AddProject(domain.Project{Title: "Street lights", Votes: 2})
	svc := NewCommunityService(client, nil)
	resident := Resident{ID: "user-9", Token: portalapitest.Token("user-9", time.Hour)}
	ctx := context.Background()

	out, err := svc.Vote(ctx, resident, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteStatusVoted, out.Result.Status)
	require.Len(t, out.Projects, 1)
	assert.Equal(t, 3, out.Projects[0].Votes)
	assert.Equal(t, "user-9", srv.LastUserID())

	out, err = svc.Vote(ctx, resident, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteStatusCancelled, out.Result.Status)
	assert.Equal(t, 2, out.Projects[0].Votes, "cancelled vote is reflected in the refetched list")
}

func TestVoteUnknownProject(t *testing.T) {
	_, client := newFakeAPI(t)
	svc := NewCommunityService(client, nil)

	_, err := svc.Vote(context.Background(), Resident{ID: "u", Token: "t"}, "missing")
	requireDomainError(t, err, http.StatusNotFound, "Project not found")
}

func TestSubmitComplaint(t *testing.T) {
	srv, client := newFakeAPI(t)
	svc := NewCommunityService(client, nil)
	resident := Resident{ID: "user-3", Token: "tok"}
	ctx := context.Background()

	err := svc.SubmitComplaint(ctx, resident, ComplaintForm{Message: "   "})
	requireDomainError(t, err, http.StatusBadRequest, "Please enter your complaint")
	assert.Empty(t, srv.Calls())

	require.NoError(t, svc.SubmitComplaint(ctx, resident, ComplaintForm{Message: "Broken streetlight"}))
	complaints := srv.Complaints()
	require.Len(t, complaints, 1)
	assert.Equal(t, "Anonymous", complaints[0].Name)
	assert.Equal(t, "anonymous@example.com", complaints[0].Email)
	assert.Equal(t, "Broken streetlight", complaints[0].Message)
	assert.Equal(t, "user-3", srv.LastUserID())
}

func TestSubmitComplaintUpstreamFailure(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.Fail("POST /api/admin/complaints", http.StatusServiceUnavailable, nil)
	svc := NewCommunityService(client, nil)

	err := svc.SubmitComplaint(context.Background(), Resident{ID: "u", Token: "t"}, ComplaintForm{Message: "hi"})
	requireDomainError(t, err, http.StatusBadGateway, "Failed to submit complaint.")
}

func TestSubmitSuggestionRefetches(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.AddSuggestion(domain.Suggestion{Title: "Bike lane", Description: "Along the main road"})
	svc := NewCommunityService(client, nil)
	resident := Resident{ID: "user-1", Token: "tok"}

	_, err := svc.SubmitSuggestion(context.Background(), resident, "Park", "")
	requireDomainError(t, err, http.StatusBadRequest, "Please fill in all fields.")

	items, err := svc.SubmitSuggestion(context.Background(), resident, "Park", "Near the chapel")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Park", items[1].Title)
}

func TestFundsTotal(t *testing.T) {
	srv, client := newFakeAPI(t)
	srv.AddFund(domain.Fund{Source: "IRA", Amount: 1000})
	srv.AddFund(domain.Fund{Source: "Donation", Amount: 250.5})
	svc := NewCommunityService(client, nil)

	summary, err := svc.Funds(context.Background(), Resident{ID: "u", Token: "t"})
	require.NoError(t, err)
	assert.Len(t, summary.Records, 2)
	assert.InDelta(t, 1250.5, summary.Total, 0.0001)
}

func TestHomeAndNews(t *testing.T) {
	srv, client := newFakeAPI(t)
	svc := NewCommunityService(client, nil)
	ctx := context.Background()

	home, err := svc.Home(ctx)
	require.NoError(t, err)
	assert.Empty(t, home.Title)

	srv.SetHome(domain.HomeContent{ID: "h1", Title: "Barangay Portal"})
	srv.AddNews(domain.News{Title: "Clean-up drive"})

	home, err = svc.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Barangay Portal", home.Title)

	news, err := svc.News(ctx)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Clean-up drive", news[0].Title)
}
