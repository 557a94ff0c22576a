package domain

// ProjectStatus enumerates project lifecycle states shown to residents.
type ProjectStatus string

const (
	ProjectStatusUpcoming ProjectStatus = "upcoming"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusPast     ProjectStatus = "past"
)

// Project is a community project residents can vote on.
type Project struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Votes       int           `json:"votes"`
	Status      ProjectStatus `json:"status,omitempty"`
	MonthPosted string        `json:"monthPosted,omitempty"`
}

// VoteStatus is the state of a resident's vote after a toggle.
type VoteStatus string

const (
	VoteStatusVoted     VoteStatus = "voted"
	VoteStatusCancelled VoteStatus = "cancelled"
)

// VoteResult is returned by the vote toggle.
type VoteResult struct {
	Status  VoteStatus `json:"status"`
	Votes   int        `json:"votes"`
	Message string     `json:"message,omitempty"`
}

// FilterProjects keeps projects matching status. An empty status or "all"
// keeps everything.
func FilterProjects(projects []Project, status string) []Project {
	if status == "" || status == "all" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if string(p.Status) == status {
			out = append(out, p)
		}
	}
	return out
}

// Suggestion is a resident's idea for a new project.
type Suggestion struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}
