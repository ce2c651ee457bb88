package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lostfound-server/internal/model"
)

// MockItemStore mocks the ItemStore interface
type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) Save(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	if fn, ok := args.Get(0).(func(context.Context, model.Item) model.Item); ok {
		return fn(ctx, item), args.Error(1)
	}
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockItemStore) FindAll(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemStore) FindByType(ctx context.Context, itemType string) ([]model.Item, error) {
	args := m.Called(ctx, itemType)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemStore) FindByID(ctx context.Context, id string) (model.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockItemStore) Search(ctx context.Context, filter model.SearchFilter) ([]model.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemStore) Delete(ctx context.Context, id string, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ParseAccessToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
