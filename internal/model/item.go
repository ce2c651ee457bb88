package model

import (
	"context"
	"strings"
	"time"
)

// DateLayout is the rendering of an item date used for search and JSON.
const DateLayout = "2006-01-02"

// MaxItemIDLength is the longest item id, in characters, either backend accepts.
const MaxItemIDLength = 64

// ItemStore defines persistence operations for lost and found items.
type ItemStore interface {
	Save(ctx context.Context, item Item) (Item, error)
	FindAll(ctx context.Context) ([]Item, error)
	FindByType(ctx context.Context, itemType string) ([]Item, error)
	FindByID(ctx context.Context, id string) (Item, error)
	Search(ctx context.Context, filter SearchFilter) ([]Item, error)
	Delete(ctx context.Context, id string, userID string) (bool, error)
}

// Item represents a reported lost or found item.
type Item struct {
	ID          string
	ItemName    string
	Category    string
	Description string
	Location    string
	Date        time.Time
	Status      ItemStatus
	ContactInfo string
	Type        ItemType
	UserID      string
}

// ItemType tells whether an item was reported lost or found.
type ItemType string

const (
	ItemTypeLost  ItemType = "LOST"
	ItemTypeFound ItemType = "FOUND"
)

// ItemStatus enumerates item lifecycle states.
type ItemStatus string

const (
	ItemStatusLost    ItemStatus = "LOST"
	ItemStatusFound   ItemStatus = "FOUND"
	ItemStatusClaimed ItemStatus = "CLAIMED"
)

// StatusFor returns the status an item of the given type starts with.
func StatusFor(t ItemType) ItemStatus {
	if t == ItemTypeFound {
		return ItemStatusFound
	}
	return ItemStatusLost
}

// SearchFilter holds optional search criteria. Empty fields do not constrain the result.
type SearchFilter struct {
	Name     string
	Category string
	Location string
	Date     string
}

// IsEmpty reports whether no criterion is set.
func (f SearchFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.Location == "" && f.Date == ""
}

// Trimmed returns a copy of the filter with surrounding whitespace removed.
func (f SearchFilter) Trimmed() SearchFilter {
	return SearchFilter{
		Name:     strings.TrimSpace(f.Name),
		Category: strings.TrimSpace(f.Category),
		Location: strings.TrimSpace(f.Location),
		Date:     strings.TrimSpace(f.Date),
	}
}

// Matches reports whether the item satisfies every set criterion.
func (f SearchFilter) Matches(item Item) bool {
	if f.Name != "" && !containsFold(item.ItemName, f.Name) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
		return false
	}
	if f.Location != "" && !containsFold(item.Location, f.Location) {
		return false
	}
	if f.Date != "" && (item.Date.IsZero() || !strings.Contains(item.Date.UTC().Format(DateLayout), f.Date)) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// CreateItemParams contains parameters to report an item.
type CreateItemParams struct {
	ID          string
	UserID      string
	ItemName    string
	Category    string
	Description string
	Location    string
	Date        time.Time
	ContactInfo string
	Type        ItemType
}
