package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lostfound-server/internal/api/http/context"
	"github.com/dtroode/lostfound-server/internal/model"
	"github.com/dtroode/lostfound-server/internal/service"
	"github.com/dtroode/lostfound-server/internal/testutil"
)

func newItemHandler(svc *MockItemService, maxPhotoBytes int64) *Item {
	return NewItem(svc, context.NewManager(), maxPhotoBytes, testutil.MakeNoopLogger())
}

func decodeBody(t *testing.T, body []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, v))
}

func TestItem_CreateLost(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.On("CreateItem", mock.Anything, model.CreateItemParams{
		UserID:   "user-1",
		ItemName: "Phone",
		Location: "Library",
		Date:     date,
		Type:     model.ItemTypeLost,
	}).Return(model.Item{
		ID:       "item-1",
		ItemName: "Phone",
		Location: "Library",
		Date:     date,
		Status:   model.ItemStatusLost,
		Type:     model.ItemTypeLost,
		UserID:   "user-1",
	}, nil)

	w := serve(http.MethodPost, "/api/items/lost", "/api/items/lost",
		`{"itemName":"Phone","location":"Library","date":"2024-05-01"}`, "user-1", h.CreateLost)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	decodeBody(t, w.Body.Bytes(), &got)
	assert.Equal(t, "item-1", got["id"])
	assert.Equal(t, "2024-05-01", got["date"])
	assert.Equal(t, "LOST", got["status"])
	assert.Equal(t, "LOST", got["type"])
	assert.Equal(t, "user-1", got["userId"])
	svc.AssertExpectations(t)
}

func TestItem_CreateFound_BodyUserIDWins(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)

	svc.On("CreateItem", mock.Anything, mock.MatchedBy(func(p model.CreateItemParams) bool {
		return p.UserID == "body-user" && p.Type == model.ItemTypeFound && p.Date.IsZero()
	})).Return(model.Item{ID: "item-2", ItemName: "Keys", Status: model.ItemStatusFound, Type: model.ItemTypeFound}, nil)

	w := serve(http.MethodPost, "/api/items/found", "/api/items/found",
		`{"itemName":"Keys","userId":"body-user"}`, "header-user", h.CreateFound)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestItem_Create_TokenUserWinsOverBody(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)

	svc.On("CreateItem", mock.Anything, mock.MatchedBy(func(p model.CreateItemParams) bool {
		return p.UserID == "token-user"
	})).Return(model.Item{ID: "item-3", ItemName: "Keys", Status: model.ItemStatusLost, Type: model.ItemTypeLost, UserID: "token-user"}, nil)

	w := serveVerified(http.MethodPost, "/api/items/lost", "/api/items/lost",
		`{"itemName":"Keys","userId":"someone-else"}`, "token-user", h.CreateLost)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	decodeBody(t, w.Body.Bytes(), &got)
	assert.Equal(t, "token-user", got["userId"])
	svc.AssertExpectations(t)
}

func TestItem_Create_BodyUserIDWithoutIdentity(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)

	svc.On("CreateItem", mock.Anything, mock.MatchedBy(func(p model.CreateItemParams) bool {
		return p.UserID == "body-user"
	})).Return(model.Item{ID: "item-4", ItemName: "Keys", Type: model.ItemTypeLost}, nil)

	w := serve(http.MethodPost, "/api/items/lost", "/api/items/lost",
		`{"itemName":"Keys","userId":"body-user"}`, "", h.CreateLost)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestItem_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			body:       `{"itemName":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "bad date",
			body:       `{"itemName":"Phone","date":"01/05/2024"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "date must be formatted as YYYY-MM-DD",
		},
		{
			name:       "missing user",
			body:       `{"itemName":"Phone"}`,
			serviceErr: service.ErrUserIDRequired,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized. User ID required.",
		},
		{
			name:       "validation",
			body:       `{"itemName":""}`,
			serviceErr: model.NewValidationError("itemName", "item name is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "item name is required",
		},
		{
			name:       "duplicate id",
			body:       `{"id":"x","itemName":"Phone"}`,
			serviceErr: &model.ConflictError{Field: "id", Value: "x"},
			wantStatus: http.StatusConflict,
			wantError:  `id "x" is already taken`,
		},
		{
			name:       "storage down",
			body:       `{"itemName":"Phone"}`,
			serviceErr: &model.StorageError{Op: "connect", Err: assert.AnError},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "storage unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockItemService)
			h := newItemHandler(svc, 0)
			if tt.serviceErr != nil {
				svc.On("CreateItem", mock.Anything, mock.Anything).Return(model.Item{}, tt.serviceErr)
			}

			w := serve(http.MethodPost, "/api/items/lost", "/api/items/lost", tt.body, "", h.CreateLost)

			assert.Equal(t, tt.wantStatus, w.Code)
			var got map[string]string
			decodeBody(t, w.Body.Bytes(), &got)
			assert.Equal(t, tt.wantError, got["error"])
			svc.AssertExpectations(t)
		})
	}
}

func TestItem_List(t *testing.T) {
	t.Run("by type", func(t *testing.T) {
		svc := new(MockItemService)
		h := newItemHandler(svc, 0)
		svc.On("ListItems", mock.Anything, "LOST").Return([]model.Item{
			{ID: "a", ItemName: "Phone", Type: model.ItemTypeLost, Status: model.ItemStatusLost},
		}, nil)

		w := serve(http.MethodGet, "/api/items", "/api/items?type=LOST", "", "", h.List)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []map[string]any
		decodeBody(t, w.Body.Bytes(), &got)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0]["id"])
		assert.NotContains(t, got[0], "date")
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := new(MockItemService)
		h := newItemHandler(svc, 0)
		svc.On("ListItems", mock.Anything, "").Return(nil, nil)

		w := serve(http.MethodGet, "/api/items", "/api/items", "", "", h.List)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestItem_Search(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)
	svc.On("SearchItems", mock.Anything, model.SearchFilter{
		Name:     "phone",
		Category: "Electronics",
		Location: "lib",
		Date:     "2024-05",
	}).Return([]model.Item{{ID: "a", ItemName: "Smartphone case"}}, nil)

	w := serve(http.MethodGet, "/api/items/search",
		"/api/items/search?itemName=phone&category=Electronics&location=lib&date=2024-05", "", "", h.Search)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	decodeBody(t, w.Body.Bytes(), &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Smartphone case", got[0]["itemName"])
	svc.AssertExpectations(t)
}

func TestItem_Get(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)
	svc.On("GetItem", mock.Anything, "a").Return(model.Item{ID: "a", ItemName: "Phone"}, nil)
	svc.On("GetItem", mock.Anything, "missing").Return(model.Item{}, model.ErrNotFound)

	w := serve(http.MethodGet, "/api/items/:id", "/api/items/a", "", "", h.Get)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(http.MethodGet, "/api/items/:id", "/api/items/missing", "", "", h.Get)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItem_Delete(t *testing.T) {
	tests := []struct {
		name       string
		deleted    bool
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "owner",
			deleted:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Item deleted"}`,
		},
		{
			name:       "not owner or missing",
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"Item not found or you do not have permission to delete it"}`,
		},
		{
			name:       "backend failure",
			err:        &model.StorageError{Op: "connect", Err: assert.AnError},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"storage unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockItemService)
			h := newItemHandler(svc, 0)
			svc.On("DeleteItem", mock.Anything, "a", "user-1").Return(tt.deleted, tt.err)

			w := serve(http.MethodDelete, "/api/items/:id", "/api/items/a", "", "user-1", h.Delete)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestItem_UploadPhoto(t *testing.T) {
	t.Run("stores body", func(t *testing.T) {
		svc := new(MockItemService)
		h := newItemHandler(svc, 1024)
		svc.On("UploadPhoto", mock.Anything, "a", "user-1", []byte("imagebytes")).Return(nil)

		w := serve(http.MethodPut, "/api/items/:id/photo", "/api/items/a/photo", "imagebytes", "user-1", h.UploadPhoto)

		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("oversized body is cut one byte past the limit", func(t *testing.T) {
		svc := new(MockItemService)
		h := newItemHandler(svc, 4)
		svc.On("UploadPhoto", mock.Anything, "a", "user-1", []byte("image")).
			Return(model.NewValidationError("photo", "photo exceeds 4 bytes"))

		w := serve(http.MethodPut, "/api/items/:id/photo", "/api/items/a/photo", "imagebytes", "user-1", h.UploadPhoto)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("not owner", func(t *testing.T) {
		svc := new(MockItemService)
		h := newItemHandler(svc, 0)
		svc.On("UploadPhoto", mock.Anything, "a", "user-2", mock.Anything).Return(service.ErrNotItemOwner)

		w := serve(http.MethodPut, "/api/items/:id/photo", "/api/items/a/photo", "imagebytes", "user-2", h.UploadPhoto)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestItem_GetPhoto(t *testing.T) {
	svc := new(MockItemService)
	h := newItemHandler(svc, 0)
	svc.On("GetPhoto", mock.Anything, "a").Return(model.Photo{Data: []byte("png"), ContentType: "image/png"}, nil)
	svc.On("GetPhoto", mock.Anything, "b").Return(model.Photo{}, model.ErrNotFound)

	w := serve(http.MethodGet, "/api/items/:id/photo", "/api/items/a/photo", "", "", h.GetPhoto)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png", w.Body.String())

	w = serve(http.MethodGet, "/api/items/:id/photo", "/api/items/b/photo", "", "", h.GetPhoto)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
