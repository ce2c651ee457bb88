package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

type Item struct {
	itemStore     model.ItemStore
	storage       model.PhotoStorage
	maxPhotoBytes int64
	logger        *logger.Logger
	now           func() time.Time
}

func NewItem(
	itemStore model.ItemStore,
	storage model.PhotoStorage,
	maxPhotoBytes int64,
	logger *logger.Logger,
) *Item {
	return &Item{
		itemStore:     itemStore,
		storage:       storage,
		maxPhotoBytes: maxPhotoBytes,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateItem validates params and stores a new item. Status always follows
// the item type; the date defaults to now and is kept in UTC.
func (s *Item) CreateItem(ctx context.Context, params model.CreateItemParams) (model.Item, error) {
	s.logger.Debug("Item service: creating item",
		"type", params.Type,
		"user_id", params.UserID)

	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		return model.Item{}, ErrUserIDRequired
	}

	name := strings.TrimSpace(params.ItemName)
	if name == "" {
		return model.Item{}, model.NewValidationError("itemName", "item name is required")
	}

	itemType := model.ItemType(strings.ToUpper(string(params.Type)))
	if itemType != model.ItemTypeLost && itemType != model.ItemTypeFound {
		return model.Item{}, model.NewValidationError("type", "item type must be LOST or FOUND")
	}

	id := strings.TrimSpace(params.ID)
	if utf8.RuneCountInString(id) > model.MaxItemIDLength {
		return model.Item{}, model.NewValidationError("id", fmt.Sprintf("item id must be at most %d characters", model.MaxItemIDLength))
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	item := model.Item{
		ID:          id,
		ItemName:    name,
		Category:    strings.TrimSpace(params.Category),
		Description: params.Description,
		Location:    strings.TrimSpace(params.Location),
		Date:        date.UTC(),
		Status:      model.StatusFor(itemType),
		ContactInfo: params.ContactInfo,
		Type:        itemType,
		UserID:      userID,
	}

	saved, err := s.itemStore.Save(ctx, item)
	if err != nil {
		s.logger.Error("Item service: failed to save item",
			"user_id", userID,
			"error", err.Error())
		return model.Item{}, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("Item service: item created",
		"item_id", saved.ID,
		"type", saved.Type,
		"user_id", userID)

	return saved, nil
}

// ListItems returns every item, or only items of itemType when it is set.
func (s *Item) ListItems(ctx context.Context, itemType string) ([]model.Item, error) {
	itemType = strings.TrimSpace(itemType)

	var (
		items []model.Item
		err   error
	)
	if itemType == "" {
		items, err = s.itemStore.FindAll(ctx)
	} else {
		items, err = s.itemStore.FindByType(ctx, itemType)
	}
	if err != nil {
		s.logger.Error("Item service: failed to list items",
			"type", itemType,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

func (s *Item) SearchItems(ctx context.Context, filter model.SearchFilter) ([]model.Item, error) {
	filter = filter.Trimmed()

	items, err := s.itemStore.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Item service: failed to search items",
			"filter", filter,
			"error", err.Error())
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	s.logger.Debug("Item service: search completed",
		"filter", filter,
		"results", len(items))

	return items, nil
}

func (s *Item) GetItem(ctx context.Context, id string) (model.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Item{}, model.NewValidationError("id", "item id is required")
	}

	item, err := s.itemStore.FindByID(ctx, id)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// DeleteItem removes the item when userID owns it. A missing item and a
// foreign item both report false.
func (s *Item) DeleteItem(ctx context.Context, id string, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, ErrUserIDRequired
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return false, model.NewValidationError("id", "item id is required")
	}

	deleted, err := s.itemStore.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("Item service: failed to delete item",
			"item_id", id,
			"user_id", userID,
			"error", err.Error())
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	if !deleted {
		s.logger.Info("Item service: item not deleted, missing or not owned",
			"item_id", id,
			"user_id", userID)
		return false, nil
	}

	if err := s.storage.Delete(ctx, model.PhotoKey(id)); err != nil {
		s.logger.Error("Item service: failed to delete item photo",
			"item_id", id,
			"error", err.Error())
	}

	s.logger.Info("Item service: item deleted",
		"item_id", id,
		"user_id", userID)

	return true, nil
}

// UploadPhoto attaches an image to an item owned by userID, replacing any previous one.
func (s *Item) UploadPhoto(ctx context.Context, itemID string, userID string, data []byte) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIDRequired
	}

	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrNotItemOwner
	}

	if len(data) == 0 {
		return model.NewValidationError("photo", "photo is empty")
	}
	if s.maxPhotoBytes > 0 && int64(len(data)) > s.maxPhotoBytes {
		return model.NewValidationError("photo", fmt.Sprintf("photo exceeds %d bytes", s.maxPhotoBytes))
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return model.NewValidationError("photo", "photo must be an image")
	}

	err = s.storage.Upload(ctx, model.PhotoKey(item.ID), bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.logger.Error("Item service: failed to upload photo",
			"item_id", item.ID,
			"error", err.Error())
		return fmt.Errorf("failed to upload photo: %w", err)
	}

	s.logger.Info("Item service: photo uploaded",
		"item_id", item.ID,
		"content_type", contentType,
		"size", len(data))

	return nil
}

func (s *Item) GetPhoto(ctx context.Context, itemID string) (model.Photo, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return model.Photo{}, model.NewValidationError("id", "item id is required")
	}

	rc, err := s.storage.Download(ctx, model.PhotoKey(itemID))
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Item service: failed to download photo",
				"item_id", itemID,
				"error", err.Error())
		}
		return model.Photo{}, fmt.Errorf("failed to get photo: %w", err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if s.maxPhotoBytes > 0 {
		r = io.LimitReader(rc, s.maxPhotoBytes)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return model.Photo{}, fmt.Errorf("failed to read photo: %w", err)
	}

	return model.Photo{Data: data, ContentType: http.DetectContentType(data)}, nil
}
