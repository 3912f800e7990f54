package service_test

import (
	"InvKeeper/internal/model"
	"InvKeeper/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) List(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) GetByName(ctx context.Context, name string) (*model.Item, error) {
	args := m.Called(ctx, name)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockItemRepo) CountByLocation(ctx context.Context, locationID string) (int64, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockItemRepo) CreateIfAbsent(ctx context.Context, it *model.Item) (bool, error) {
	args := m.Called(ctx, it)
	return args.Bool(0), args.Error(1)
}
func (m *mockItemRepo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockItemRepo) UpdateWithVersion(ctx context.Context, id string, expectedVersion int64, fields map[string]any) (int64, error) {
	args := m.Called(ctx, id, expectedVersion, fields)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

type mockLocationRepo struct{ mock.Mock }

func (m *mockLocationRepo) List(ctx context.Context) ([]model.Location, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Location); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockLocationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Location); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockLocationRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.Location, error) {
	args := m.Called(ctx, identifier)
	if v, ok := args.Get(0).(*model.Location); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockLocationRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockLocationRepo) CreateIfAbsent(ctx context.Context, loc *model.Location) (bool, error) {
	args := m.Called(ctx, loc)
	return args.Bool(0), args.Error(1)
}
func (m *mockLocationRepo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockLocationRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.LocationRepository = (*mockLocationRepo)(nil)
