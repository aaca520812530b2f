package service

import (
	"MachineCatalog/internal/blob"
	"MachineCatalog/internal/model"
	"MachineCatalog/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.MachineRepository
type mockMachineRepo struct{ mock.Mock }

func (m *mockMachineRepo) ListAll(ctx context.Context) ([]model.Machine, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMachineRepo) GetByID(ctx context.Context, id string) (*model.Machine, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMachineRepo) Create(ctx context.Context, mc *model.Machine) error {
	return m.Called(ctx, mc).Error(0)
}

func (m *mockMachineRepo) UpdateByID(ctx context.Context, id string, fields model.MachineFields) (*model.Machine, error) {
	args := m.Called(ctx, id, fields)
	if v, ok := args.Get(0).(*model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMachineRepo) SetImage(ctx context.Context, id string, url, assetID *string) error {
	return m.Called(ctx, id, url, assetID).Error(0)
}

func (m *mockMachineRepo) DeleteByID(ctx context.Context, id string) (*model.Machine, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MachineRepository = (*mockMachineRepo)(nil)

// мок для blob.Storage
type mockBlobs struct{ mock.Mock }

func (m *mockBlobs) Upload(ctx context.Context, obj blob.Object) (blob.Asset, error) {
	args := m.Called(ctx, obj)
	return args.Get(0).(blob.Asset), args.Error(1)
}

func (m *mockBlobs) Delete(ctx context.Context, assetID string) error {
	return m.Called(ctx, assetID).Error(0)
}

var _ blob.Storage = (*mockBlobs)(nil)

func strPtr(s string) *string { return &s }
