// Package portalapitest runs an in-memory community API for tests.
package portalapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/barangay-portal/internal/domain"
)

// Admin login accepted by the fake.
const (
	AdminEmail    = "admin@barangay.ph"
	AdminPassword = "admin123"
)

// Server is a fake community API backed by maps.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	calls       []string
	failures    map[string]failure
	users       map[string]string
	userIDs     map[string]string
	projects    []domain.Project
	officials   []domain.Official
	news        []domain.News
	funds       []domain.Fund
	complaints  []domain.Complaint
	suggestions []domain.Suggestion
	home        *domain.HomeContent
	votes       map[string]map[string]bool
	lastUserID  string
	wrapList    bool
	nextID      int
}

type failure struct {
	status int
	body   map[string]string
}

// New starts a fake API. Close it with t.Cleanup(srv.Close).
func New() *Server {
	s := &Server{
		failures: map[string]failure{},
		users:    map[string]string{},
		userIDs:  map[string]string{},
		votes:    map[string]map[string]bool{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/login", s.login)
	mux.HandleFunc("POST /api/v1/register", s.register)
	mux.HandleFunc("POST /api/admin/login", s.adminLogin)
	mux.HandleFunc("GET /api/home", s.getHome)
	mux.HandleFunc("POST /api/home", s.saveHome)
	mux.HandleFunc("PUT /api/home/{id}", s.saveHome)
	mux.HandleFunc("POST /api/admin/projects/{id}/vote", s.vote)
	mux.HandleFunc("POST /api/admin/funds/create", s.createFund)
	mux.HandleFunc("PUT /api/admin/funds/{id}", s.updateFund)
	mux.HandleFunc("GET /api/admin/{resource}", s.list)
	mux.HandleFunc("POST /api/admin/{resource}", s.create)
	mux.HandleFunc("PUT /api/admin/{resource}/{id}", s.update)
	mux.HandleFunc("DELETE /api/admin/{resource}/{id}", s.remove)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.calls = append(s.calls, key)
		f, failing := s.failures[key]
		s.mu.Unlock()
		if failing {
			writeJSON(w, f.status, f.body)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return s
}

// Token mints a signed token for subject valid for ttl. A negative ttl yields an expired token.
func Token(subject string, ttl time.Duration) string {
	claims := jwt.MapClaims{"sub": subject, "exp": time.Now().Add(ttl).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("portalapitest"))
	if err != nil {
		panic(err)
	}
	return signed
}

// AddUser registers a resident that can log in and returns its id.
func (s *Server) AddUser(username, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, password)
}

func (s *Server) addUserLocked(username, password string) string {
	s.users[username] = password
	id := s.newIDLocked("user")
	s.userIDs[username] = id
	return id
}

// AddProject seeds a project.
func (s *Server) AddProject(p domain.Project) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.newIDLocked("project")
	}
	s.projects = append(s.projects, p)
	return p
}

// AddOfficial seeds an official.
func (s *Server) AddOfficial(o domain.Official) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = s.newIDLocked("official")
	}
	s.officials = append(s.officials, o)
}

// AddNews seeds a news item.
func (s *Server) AddNews(n domain.News) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = s.newIDLocked("news")
	}
	s.news = append(s.news, n)
}

// AddFund seeds a fund record.
func (s *Server) AddFund(f domain.Fund) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = s.newIDLocked("fund")
	}
	s.funds = append(s.funds, f)
}

// AddComplaint seeds a complaint.
func (s *Server) AddComplaint(c domain.Complaint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.newIDLocked("complaint")
	}
	s.complaints = append(s.complaints, c)
}

// AddSuggestion seeds a suggestion.
func (s *Server) AddSuggestion(sg domain.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sg.ID == "" {
		sg.ID = s.newIDLocked("suggestion")
	}
	s.suggestions = append(s.suggestions, sg)
}

// SetHome seeds the landing page content.
func (s *Server) SetHome(h domain.HomeContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.home = &h
}

// WrapLists makes the projects list come back as {"projects": [...]}.
func (s *Server) WrapLists(wrap bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrapList = wrap
}

// Fail makes every request matching "METHOD /path" answer with status and body.
func (s *Server) Fail(route string, status int, body map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

// Calls returns every "METHOD /path" received so far.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Complaints returns the stored complaints.
func (s *Server) Complaints() []domain.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Complaint(nil), s.complaints...)
}

// Suggestions returns the stored suggestions.
func (s *Server) Suggestions() []domain.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Suggestion(nil), s.suggestions...)
}

// Funds returns the stored fund records.
func (s *Server) Funds() []domain.Fund {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Fund(nil), s.funds...)
}

// News returns the stored news.
func (s *Server) News() []domain.News {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.News(nil), s.news...)
}

// Officials returns the stored officials.
func (s *Server) Officials() []domain.Official {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Official(nil), s.officials...)
}

// LastUserID is the x-user-id header of the latest resident submission.
func (s *Server) LastUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUserID
}

func (s *Server) newIDLocked(prefix string) string {
	s.nextID++
	return prefix + "-" + strconv.Itoa(s.nextID)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	pass, ok := s.users[req.Username]
	id := s.userIDs[req.Username]
	s.mu.Unlock()
	if !ok || pass != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token(id, time.Hour)})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username already taken"})
		return
	}
	s.addUserLocked(req.Username, req.Password)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered"})
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email != AdminEmail || req.Password != AdminPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token("admin-1", time.Hour)})
}

func (s *Server) getHome(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.home)
}

func (s *Server) saveHome(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	home := domain.HomeContent{
		ID:       r.PathValue("id"),
		Title:    r.FormValue("title"),
		SubTitle: r.FormValue("subTitle"),
		Content:  r.FormValue("content"),
	}
	if home.ID == "" {
		home.ID = s.newIDLocked("home")
	}
	if s.home != nil {
		home.BackgroundURL = s.home.BackgroundURL
	}
	if _, header, err := r.FormFile("background"); err == nil {
		home.BackgroundURL = "https://cdn.example/" + header.Filename
	}
	s.home = &home
	writeJSON(w, http.StatusOK, home)
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" || !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Login required"})
		return
	}
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUserID = userID
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		voters := s.votes[id]
		if voters == nil {
			voters = map[string]bool{}
			s.votes[id] = voters
		}
		res := domain.VoteResult{}
		if voters[userID] {
			delete(voters, userID)
			s.projects[i].Votes--
			res.Status, res.Message = domain.VoteStatusCancelled, "Vote cancelled"
		} else {
			voters[userID] = true
			s.projects[i].Votes++
			res.Status, res.Message = domain.VoteStatusVoted, "Vote recorded"
		}
		res.Votes = s.projects[i].Votes
		writeJSON(w, http.StatusOK, res)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})
}

func (s *Server) createFund(w http.ResponseWriter, r *http.Request) {
	fund, ok := s.parseFund(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fund.ID = s.newIDLocked("fund")
	s.funds = append([]domain.Fund{fund}, s.funds...)
	writeJSON(w, http.StatusCreated, fund)
}

func (s *Server) updateFund(w http.ResponseWriter, r *http.Request) {
	fund, ok := s.parseFund(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.funds {
		if s.funds[i].ID == r.PathValue("id") {
			fund.ID = s.funds[i].ID
			if fund.ImageURL == "" {
				fund.ImageURL = s.funds[i].ImageURL
			}
			s.funds[i] = fund
			writeJSON(w, http.StatusOK, fund)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Fund record not found"})
}

func (s *Server) parseFund(w http.ResponseWriter, r *http.Request) (domain.Fund, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return domain.Fund{}, false
	}
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Amount must be a number"})
		return domain.Fund{}, false
	}
	fund := domain.Fund{
		Source:      r.FormValue("source"),
		Description: r.FormValue("description"),
		Amount:      amount,
		Date:        r.FormValue("date"),
	}
	if _, header, err := r.FormFile("image"); err == nil {
		fund.ImageURL = "https://cdn.example/" + header.Filename
	}
	return fund, true
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.PathValue("resource") {
	case "projects":
		if s.wrapList {
			writeJSON(w, http.StatusOK, map[string]any{"projects": nonNil(s.projects)})
			return
		}
		writeJSON(w, http.StatusOK, nonNil(s.projects))
	case "officials":
		writeJSON(w, http.StatusOK, nonNil(s.officials))
	case "news":
		writeJSON(w, http.StatusOK, nonNil(s.news))
	case "funds":
		writeJSON(w, http.StatusOK, nonNil(s.funds))
	case "complaints":
		writeJSON(w, http.StatusOK, nonNil(s.complaints))
	case "project-suggestions":
		writeJSON(w, http.StatusOK, nonNil(s.suggestions))
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newIDLocked(resource)
	switch resource {
	case "projects":
		var p domain.Project
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID, p.Status, p.MonthPosted = id, domain.ProjectStatusUpcoming, time.Now().Format("January 2006")
		s.projects = append(s.projects, p)
		writeJSON(w, http.StatusCreated, p)
	case "officials":
		var o domain.Official
		_ = json.NewDecoder(r.Body).Decode(&o)
		o.ID = id
		s.officials = append(s.officials, o)
		writeJSON(w, http.StatusCreated, o)
	case "news":
		var n domain.News
		_ = json.NewDecoder(r.Body).Decode(&n)
		n.ID = id
		s.news = append(s.news, n)
		writeJSON(w, http.StatusCreated, n)
	case "complaints":
		var c domain.Complaint
		_ = json.NewDecoder(r.Body).Decode(&c)
		c.ID, c.CreatedAt = id, time.Now().UTC()
		s.lastUserID = r.Header.Get("x-user-id")
		s.complaints = append(s.complaints, c)
		writeJSON(w, http.StatusCreated, c)
	case "project-suggestions":
		var sg domain.Suggestion
		_ = json.NewDecoder(r.Body).Decode(&sg)
		sg.ID, sg.Date = id, time.Now().UTC().Format(time.RFC3339)
		s.lastUserID = r.Header.Get("x-user-id")
		s.suggestions = append(s.suggestions, sg)
		writeJSON(w, http.StatusCreated, sg)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.PathValue("resource") {
	case "officials":
		var o domain.Official
		_ = json.NewDecoder(r.Body).Decode(&o)
		o.ID = id
		if replace(s.officials, func(x domain.Official) bool { return x.ID == id }, o) {
			writeJSON(w, http.StatusOK, map[string]any{"updated": o})
			return
		}
	case "news":
		var n domain.News
		_ = json.NewDecoder(r.Body).Decode(&n)
		n.ID = id
		if replace(s.news, func(x domain.News) bool { return x.ID == id }, n) {
			writeJSON(w, http.StatusOK, map[string]any{"updated": n})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed bool
	switch r.PathValue("resource") {
	case "projects":
		s.projects, removed = without(s.projects, func(x domain.Project) bool { return x.ID == id })
	case "officials":
		s.officials, removed = without(s.officials, func(x domain.Official) bool { return x.ID == id })
	case "news":
		s.news, removed = without(s.news, func(x domain.News) bool { return x.ID == id })
	case "funds":
		s.funds, removed = without(s.funds, func(x domain.Fund) bool { return x.ID == id })
	case "complaints":
		s.complaints, removed = without(s.complaints, func(x domain.Complaint) bool { return x.ID == id })
	case "project-suggestions":
		s.suggestions, removed = without(s.suggestions, func(x domain.Suggestion) bool { return x.ID == id })
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found", id)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func replace[T any](items []T, match func(T) bool, item T) bool {
	for i := range items {
		if match(items[i]) {
			items[i] = item
			return true
		}
	}
	return false
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	out := items[:0:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}

// SortedCalls returns the distinct calls received, sorted.
func (s *Server) SortedCalls() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range s.Calls() {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
