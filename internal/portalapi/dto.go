package portalapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/barangay-portal/internal/domain"
)

// LoginRequest is the resident login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginRequest is the administrator login payload.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the resident sign-up payload.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	MiddleName      string `json:"middleName"`
	ContactNumber   string `json:"contactNumber"`
	Address         string `json:"address"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// ProjectInput creates a project.
type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ComplaintInput is a complaints box submission.
type ComplaintInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SuggestionInput is a project suggestion submission.
type SuggestionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OfficialInput creates or updates an official.
type OfficialInput struct {
	Name          string `json:"name"`
	Position      string `json:"position"`
	Term          string `json:"term"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImagePublicID string `json:"imagePublicId,omitempty"`
}

// NewsInput creates or updates a news item.
type NewsInput struct {
	Title         string `json:"title"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImagePublicID string `json:"imagePublicId,omitempty"`
}

// FundInput creates or updates a fund record. It is sent as multipart.
type FundInput struct {
	Source      string
	Description string
	Amount      string
	Date        string
	Image       *domain.Upload
}

// HomeInput saves the landing page content. It is sent as multipart.
type HomeInput struct {
	Title      string
	SubTitle   string
	Content    string
	Background *domain.Upload
}

// listOf decodes either a bare array or an object wrapping the array in key.
func listOf[T any](raw json.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	field, ok := wrapped[key]
	if !ok {
		return nil, fmt.Errorf("list response has no %q field", key)
	}
	inner := bytes.TrimSpace(field)
	if bytes.Equal(inner, []byte("null")) {
		return []T{}, nil
	}
	if len(inner) == 0 || inner[0] != '[' {
		return nil, fmt.Errorf("list response field %q is not an array", key)
	}
	var items []T
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// entityOf decodes an entity that may be wrapped in an object under key.
func entityOf[T any](raw json.RawMessage, key string) (T, error) {
	var out T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok {
			raw = inner
		}
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}
