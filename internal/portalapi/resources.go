package portalapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/spec-kit/barangay-portal/internal/domain"
)

const adminPrefix = "/api/admin/"

// Resource names under /api/admin.
const (
	ResourceProjects    = "projects"
	ResourceOfficials   = "officials"
	ResourceNews        = "news"
	ResourceFunds       = "funds"
	ResourceComplaints  = "complaints"
	ResourceSuggestions = "project-suggestions"
)

func resourcePath(resource string, id ...string) string {
	path := adminPrefix + resource
	for _, part := range id {
		path += "/" + url.PathEscape(part)
	}
	return path
}

func list[T any](ctx context.Context, c *Client, op, resource, token string) ([]T, error) {
	var raw json.RawMessage
	req := request{method: http.MethodGet, path: resourcePath(resource), token: token}
	if err := c.call(ctx, op, req, &raw); err != nil {
		return nil, err
	}
	items, err := listOf[T](raw, resource)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: err}
	}
	return items, nil
}

func (c *Client) send(ctx context.Context, op, method, path, token, userID string, payload any, out any) error {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return &Error{Op: op, Kind: KindValidation, Err: err}
	}
	req.token = token
	req.userID = userID
	return c.call(ctx, op, req, out)
}

func update[T any](ctx context.Context, c *Client, op, path, token string, payload any) (T, error) {
	var raw json.RawMessage
	var zero T
	if err := c.send(ctx, op, http.MethodPut, path, token, "", payload, &raw); err != nil {
		return zero, err
	}
	out, err := entityOf[T](raw, "updated")
	if err != nil {
		return zero, &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: err}
	}
	return out, nil
}

// Delete removes one item of resource.
func (c *Client) Delete(ctx context.Context, token, resource, id string) error {
	req := request{method: http.MethodDelete, path: resourcePath(resource, id), token: token}
	return c.call(ctx, "Delete:"+resource, req, nil)
}

// Count fetches a resource list and returns its length.
func (c *Client) Count(ctx context.Context, token, resource string) (int, error) {
	items, err := list[json.RawMessage](ctx, c, "Count:"+resource, resource, token)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// ListProjects fetches every project. The API may wrap the list in {projects: [...]}.
func (c *Client) ListProjects(ctx context.Context, token string) ([]domain.Project, error) {
	return list[domain.Project](ctx, c, "ListProjects", ResourceProjects, token)
}

// CreateProject adds a project.
func (c *Client) CreateProject(ctx context.Context, token string, in ProjectInput) error {
	return c.send(ctx, "CreateProject", http.MethodPost, resourcePath(ResourceProjects), token, "", in, nil)
}

// Vote toggles the resident's vote on a project.
func (c *Client) Vote(ctx context.Context, token, userID, projectID string) (domain.VoteResult, error) {
	var out domain.VoteResult
	err := c.send(ctx, "Vote", http.MethodPost, resourcePath(ResourceProjects, projectID, "vote"), token, userID, nil, &out)
	return out, err
}

// ListOfficials fetches the barangay officials.
func (c *Client) ListOfficials(ctx context.Context, token string) ([]domain.Official, error) {
	return list[domain.Official](ctx, c, "ListOfficials", ResourceOfficials, token)
}

// CreateOfficial adds an official.
func (c *Client) CreateOfficial(ctx context.Context, token string, in OfficialInput) error {
	return c.send(ctx, "CreateOfficial", http.MethodPost, resourcePath(ResourceOfficials), token, "", in, nil)
}

// UpdateOfficial replaces an official.
func (c *Client) UpdateOfficial(ctx context.Context, token, id string, in OfficialInput) (domain.Official, error) {
	return update[domain.Official](ctx, c, "UpdateOfficial", resourcePath(ResourceOfficials, id), token, in)
}

// ListNews fetches published news.
func (c *Client) ListNews(ctx context.Context, token string) ([]domain.News, error) {
	return list[domain.News](ctx, c, "ListNews", ResourceNews, token)
}

// CreateNews publishes a news item.
func (c *Client) CreateNews(ctx context.Context, token string, in NewsInput) error {
	return c.send(ctx, "CreateNews", http.MethodPost, resourcePath(ResourceNews), token, "", in, nil)
}

// UpdateNews replaces a news item.
func (c *Client) UpdateNews(ctx context.Context, token, id string, in NewsInput) (domain.News, error) {
	return update[domain.News](ctx, c, "UpdateNews", resourcePath(ResourceNews, id), token, in)
}

// ListFunds fetches fund records.
func (c *Client) ListFunds(ctx context.Context, token string) ([]domain.Fund, error) {
	return list[domain.Fund](ctx, c, "ListFunds", ResourceFunds, token)
}

// CreateFund adds a fund record with an optional receipt image.
func (c *Client) CreateFund(ctx context.Context, token string, in FundInput) error {
	return c.sendFund(ctx, "CreateFund", http.MethodPost, resourcePath(ResourceFunds, "create"), token, in)
}

// UpdateFund replaces a fund record.
func (c *Client) UpdateFund(ctx context.Context, token, id string, in FundInput) error {
	return c.sendFund(ctx, "UpdateFund", http.MethodPut, resourcePath(ResourceFunds, id), token, in)
}

func (c *Client) sendFund(ctx context.Context, op, method, path, token string, in FundInput) error {
	req, err := newForm().
		field("source", in.Source).
		field("description", in.Description).
		field("amount", in.Amount).
		field("date", in.Date).
		file("image", in.Image).
		request(method, path)
	if err != nil {
		return &Error{Op: op, Kind: KindValidation, Err: err}
	}
	req.token = token
	return c.call(ctx, op, req, nil)
}

// ListComplaints fetches complaints in the order the API returns them.
func (c *Client) ListComplaints(ctx context.Context, token string) ([]domain.Complaint, error) {
	return list[domain.Complaint](ctx, c, "ListComplaints", ResourceComplaints, token)
}

// SubmitComplaint files a complaint on behalf of userID.
func (c *Client) SubmitComplaint(ctx context.Context, token, userID string, in ComplaintInput) error {
	return c.send(ctx, "SubmitComplaint", http.MethodPost, resourcePath(ResourceComplaints), token, userID, in, nil)
}

// ListSuggestions fetches project suggestions.
func (c *Client) ListSuggestions(ctx context.Context, token string) ([]domain.Suggestion, error) {
	return list[domain.Suggestion](ctx, c, "ListSuggestions", ResourceSuggestions, token)
}

// SubmitSuggestion files a project suggestion on behalf of userID.
func (c *Client) SubmitSuggestion(ctx context.Context, token, userID string, in SuggestionInput) error {
	return c.send(ctx, "SubmitSuggestion", http.MethodPost, resourcePath(ResourceSuggestions), token, userID, in, nil)
}

// GetHome fetches the landing page content. A zero value means none was saved yet.
func (c *Client) GetHome(ctx context.Context) (domain.HomeContent, error) {
	var raw json.RawMessage
	if err := c.call(ctx, "GetHome", request{method: http.MethodGet, path: "/api/home"}, &raw); err != nil {
		return domain.HomeContent{}, err
	}
	home, err := entityOf[domain.HomeContent](raw, "home")
	if err != nil {
		return domain.HomeContent{}, &Error{Op: "GetHome", Kind: KindDecode, Status: http.StatusOK, Err: err}
	}
	return home, nil
}

// SaveHome creates the landing page content when id is empty and updates it otherwise.
func (c *Client) SaveHome(ctx context.Context, token, id string, in HomeInput) (domain.HomeContent, error) {
	const op = "SaveHome"
	method, path := http.MethodPost, "/api/home"
	if id != "" {
		method, path = http.MethodPut, "/api/home/"+url.PathEscape(id)
	}
	req, err := newForm().
		field("title", in.Title).
		field("subTitle", in.SubTitle).
		field("content", in.Content).
		file("background", in.Background).
		request(method, path)
	if err != nil {
		return domain.HomeContent{}, &Error{Op: op, Kind: KindValidation, Err: err}
	}
	req.token = token
	var out domain.HomeContent
	if err := c.call(ctx, op, req, &out); err != nil {
		return domain.HomeContent{}, err
	}
	return out, nil
}
