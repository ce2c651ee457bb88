package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound-server/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

// ItemRepository keeps items in process memory in insertion order.
// Reads return copies so callers never share the backing slice.
type ItemRepository struct {
	mu    sync.RWMutex
	items []model.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

func (r *ItemRepository) Save(_ context.Context, item model.Item) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Date.IsZero() {
		item.Date = time.Now()
	}
	item.Date = item.Date.UTC()

	for _, existing := range r.items {
		if existing.ID == item.ID {
			return model.Item{}, &model.ConflictError{Field: "id", Value: item.ID}
		}
	}

	r.items = append(r.items, item)

	return item, nil
}

func (r *ItemRepository) FindAll(_ context.Context) ([]model.Item, error) {
	return r.filter(func(model.Item) bool { return true }), nil
}

func (r *ItemRepository) FindByType(_ context.Context, itemType string) ([]model.Item, error) {
	if itemType == "" {
		return []model.Item{}, nil
	}

	return r.filter(func(item model.Item) bool {
		return strings.EqualFold(string(item.Type), itemType)
	}), nil
}

func (r *ItemRepository) FindByID(_ context.Context, id string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}

	return model.Item{}, model.ErrNotFound
}

func (r *ItemRepository) Search(_ context.Context, filter model.SearchFilter) ([]model.Item, error) {
	return r.filter(filter.Matches), nil
}

func (r *ItemRepository) Delete(_ context.Context, id string, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID != id {
			continue
		}
		if item.UserID != userID {
			return false, nil
		}
		r.items = append(r.items[:i], r.items[i+1:]...)
		return true, nil
	}

	return false, nil
}

func (r *ItemRepository) filter(keep func(model.Item) bool) []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			result = append(result, item)
		}
	}

	return result
}
