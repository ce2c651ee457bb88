package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

// ItemService defines item reporting, querying and photo operations.
type ItemService interface {
	CreateItem(ctx context.Context, params model.CreateItemParams) (model.Item, error)
	ListItems(ctx context.Context, itemType string) ([]model.Item, error)
	SearchItems(ctx context.Context, filter model.SearchFilter) ([]model.Item, error)
	GetItem(ctx context.Context, id string) (model.Item, error)
	DeleteItem(ctx context.Context, id string, userID string) (bool, error)
	UploadPhoto(ctx context.Context, itemID string, userID string, data []byte) error
	GetPhoto(ctx context.Context, itemID string) (model.Photo, error)
}

// Item handles HTTP endpoints for lost and found items.
type Item struct {
	itemService    ItemService
	contextManager model.ContextManager
	maxPhotoBytes  int64
	logger         *logger.Logger
}

// NewItem creates a new Item handler.
func NewItem(itemService ItemService, contextManager model.ContextManager, maxPhotoBytes int64, logger *logger.Logger) *Item {
	return &Item{
		itemService:    itemService,
		contextManager: contextManager,
		maxPhotoBytes:  maxPhotoBytes,
		logger:         logger,
	}
}

// CreateLost reports a lost item.
func (h *Item) CreateLost(c *gin.Context) {
	h.create(c, model.ItemTypeLost)
}

// CreateFound reports a found item.
func (h *Item) CreateFound(c *gin.Context) {
	h.create(c, model.ItemTypeFound)
}

func (h *Item) create(c *gin.Context, itemType model.ItemType) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, model.NewValidationError("body", "invalid request body"))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		handleError(c, err)
		return
	}

	// A userId in the body overrides an asserted X-User-Id but never a token.
	userID, _ := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if req.UserID != "" && !h.contextManager.IsUserVerified(c.Request.Context()) {
		userID = req.UserID
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), model.CreateItemParams{
		ID:          req.ID,
		UserID:      userID,
		ItemName:    req.ItemName,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		ContactInfo: req.ContactInfo,
		Type:        itemType,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

// List returns all items, optionally narrowed by the type query parameter.
func (h *Item) List(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context(), c.Query("type"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponses(items))
}

// Search filters items by name, category, location and date.
func (h *Item) Search(c *gin.Context) {
	items, err := h.itemService.SearchItems(c.Request.Context(), model.SearchFilter{
		Name:     c.Query("itemName"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		Date:     c.Query("date"),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponses(items))
}

func (h *Item) Get(c *gin.Context) {
	item, err := h.itemService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete removes an item owned by the acting user.
func (h *Item) Delete(c *gin.Context) {
	userID, _ := h.contextManager.GetUserIDFromContext(c.Request.Context())

	deleted, err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusForbidden, gin.H{"error": "Item not found or you do not have permission to delete it"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// UploadPhoto stores the raw request body as the item's photo.
func (h *Item) UploadPhoto(c *gin.Context) {
	userID, _ := h.contextManager.GetUserIDFromContext(c.Request.Context())

	var body io.Reader = c.Request.Body
	if h.maxPhotoBytes > 0 {
		// One extra byte lets the service detect oversized uploads.
		body = io.LimitReader(body, h.maxPhotoBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		handleError(c, model.NewValidationError("photo", "failed to read photo"))
		return
	}

	if err := h.itemService.UploadPhoto(c.Request.Context(), c.Param("id"), userID, data); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Item) GetPhoto(c *gin.Context) {
	photo, err := h.itemService.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}
