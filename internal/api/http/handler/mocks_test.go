package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	apicontext "github.com/dtroode/lostfound-server/internal/api/http/context"
	"github.com/dtroode/lostfound-server/internal/model"
)

type MockItemService struct{ mock.Mock }

func (m *MockItemService) CreateItem(ctx context.Context, params model.CreateItemParams) (model.Item, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockItemService) ListItems(ctx context.Context, itemType string) ([]model.Item, error) {
	args := m.Called(ctx, itemType)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *MockItemService) SearchItems(ctx context.Context, filter model.SearchFilter) ([]model.Item, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *MockItemService) GetItem(ctx context.Context, id string) (model.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockItemService) DeleteItem(ctx context.Context, id string, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemService) UploadPhoto(ctx context.Context, itemID string, userID string, data []byte) error {
	args := m.Called(ctx, itemID, userID, data)
	return args.Error(0)
}

func (m *MockItemService) GetPhoto(ctx context.Context, itemID string) (model.Photo, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(model.Photo), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (model.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.Session), args.Error(1)
}

type MockPinger struct{ mock.Mock }

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// serve runs a single request through h mounted at route. A non-empty userID
// is placed in the request context as an X-User-Id header would be.
func serve(method, route, target, body string, userID string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	return serveAs(method, route, target, body, userID, false, h)
}

// serveVerified is serve with userID taken from an access token.
func serveVerified(method, route, target, body string, userID string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	return serveAs(method, route, target, body, userID, true, h)
}

func serveAs(method, route, target, body string, userID string, verified bool, h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	cm := apicontext.NewManager()
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		switch {
		case userID != "" && verified:
			c.Request = c.Request.WithContext(cm.SetVerifiedUserIDToContext(c.Request.Context(), userID))
		case userID != "":
			c.Request = c.Request.WithContext(cm.SetUserIDToContext(c.Request.Context(), userID))
		}
		c.Next()
	}, h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
