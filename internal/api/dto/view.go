package dto

// Header link labels.
const (
	LinkHome       = "HOME"
	LinkNews       = "NEWS & UPDATES"
	LinkContact    = "CONTACT US"
	LinkLogin      = "LOGIN"
	LinkDashboard  = "DASHBOARD"
	LinkAdminLogin = "ADMIN LOGIN"
)

// Link is one navigation entry.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Header is the site header, computed on every render from the resident slot.
type Header struct {
	Authenticated bool   `json:"authenticated"`
	Links         []Link `json:"links"`
}

// NewHeader builds the header for a visitor. Only an authenticated
// resident sees DASHBOARD; everyone else sees LOGIN.
func NewHeader(authenticated bool) *Header {
	links := []Link{
		{Label: LinkHome, Path: "/"},
		{Label: LinkNews, Path: "/news"},
		{Label: LinkContact, Path: "/contact"},
	}
	if authenticated {
		links = append(links, Link{Label: LinkDashboard, Path: "/dashboard"})
	} else {
		links = append(links, Link{Label: LinkLogin, Path: "/login"})
	}
	links = append(links, Link{Label: LinkAdminLogin, Path: "/admin-login"})
	return &Header{Authenticated: authenticated, Links: links}
}

// Has reports whether the header shows label.
func (h *Header) Has(label string) bool {
	if h == nil {
		return false
	}
	for _, l := range h.Links {
		if l.Label == label {
			return true
		}
	}
	return false
}

// View is the JSON model of one rendered page.
type View struct {
	Page   string  `json:"page"`
	Header *Header `json:"header,omitempty"`
	Data   any     `json:"data,omitempty"`
	Form   any     `json:"form,omitempty"`
	Error  string  `json:"error,omitempty"`
	Notice string  `json:"notice,omitempty"`
}

// FAQ is a static question and answer.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQs shown on the resident FAQ page.
var FAQs = []FAQ{
	{Question: "How do I request a barangay clearance?", Answer: "Visit the barangay hall with a valid ID and proof of residency during office hours."},
	{Question: "How can I file a complaint?", Answer: "Log in and use the complaints box on your dashboard. Complaints are reviewed by barangay officials."},
	{Question: "How does project voting work?", Answer: "Each resident can vote once per project. Voting again on the same project cancels your vote."},
	{Question: "Where can I see how funds are used?", Answer: "The fund records page lists every fund received together with its source and amount."},
	{Question: "How do I suggest a new project?", Answer: "Open the project suggestion page, describe your idea and submit it for the officials to review."},
}
