package domain

import (
	"sort"
	"time"
)

// Official is a barangay office holder.
type Official struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	Term          string `json:"term"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImagePublicID string `json:"imagePublicId,omitempty"`
}

// News is a published announcement.
type News struct {
	ID            string `json:"_id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImagePublicID string `json:"imagePublicId,omitempty"`
}

// Fund is a record of money received by the barangay.
type Fund struct {
	ID          string  `json:"_id"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// TotalFunds sums the amount of every record.
func TotalFunds(funds []Fund) float64 {
	var total float64
	for _, f := range funds {
		total += f.Amount
	}
	return total
}

// Complaint is a message submitted through the complaints box.
type Complaint struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// SortComplaintsNewestFirst orders complaints by creation time, newest first.
func SortComplaintsNewestFirst(complaints []Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}

// HomeContent is the editable landing page copy.
type HomeContent struct {
	ID            string `json:"_id"`
	Title         string `json:"title"`
	SubTitle      string `json:"subTitle"`
	Content       string `json:"content"`
	BackgroundURL string `json:"backgroundUrl,omitempty"`
}

// Upload is a file received from a form and forwarded elsewhere.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Empty reports whether no file was attached.
func (u *Upload) Empty() bool {
	return u == nil || len(u.Data) == 0
}
