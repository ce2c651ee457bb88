package handler

import (
	"strings"
	"time"

	"github.com/dtroode/lostfound-server/internal/model"
)

type itemRequest struct {
	ID          string `json:"id"`
	ItemName    string `json:"itemName"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	ContactInfo string `json:"contactInfo"`
	UserID      string `json:"userId"`
}

type itemResponse struct {
	ID          string `json:"id"`
	ItemName    string `json:"itemName"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`
	Status      string `json:"status"`
	ContactInfo string `json:"contactInfo,omitempty"`
	Type        string `json:"type"`
	UserID      string `json:"userId,omitempty"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	userResponse
	Token string `json:"token"`
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Empty input yields the zero time.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(model.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Time{}, model.NewValidationError("date", "date must be formatted as YYYY-MM-DD")
}

func toItemResponse(item model.Item) itemResponse {
	resp := itemResponse{
		ID:          item.ID,
		ItemName:    item.ItemName,
		Category:    item.Category,
		Description: item.Description,
		Location:    item.Location,
		Status:      string(item.Status),
		ContactInfo: item.ContactInfo,
		Type:        string(item.Type),
		UserID:      item.UserID,
	}
	if !item.Date.IsZero() {
		resp.Date = item.Date.UTC().Format(model.DateLayout)
	}
	return resp
}

func toItemResponses(items []model.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}

func toUserResponse(user model.User) userResponse {
	return userResponse{ID: user.ID, Username: user.Username, Email: user.Email}
}
