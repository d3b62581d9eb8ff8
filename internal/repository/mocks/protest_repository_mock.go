package mocks

import (
	"context"

	"protest-tracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type ProtestRepositoryMock struct {
	mock.Mock
}

func NewProtestRepositoryMock() *ProtestRepositoryMock {
	return &ProtestRepositoryMock{}
}

func (m *ProtestRepositoryMock) Create(ctx context.Context, organizerID int64, params model.ProtestParams) (*model.Protest, error) {
	args := m.Called(ctx, organizerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Protest), args.Error(1)
}

func (m *ProtestRepositoryMock) List(ctx context.Context, upcoming bool) ([]*model.Protest, error) {
	args := m.Called(ctx, upcoming)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Protest), args.Error(1)
}

func (m *ProtestRepositoryMock) ListByOrganizer(ctx context.Context, organizerID int64) ([]*model.Protest, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Protest), args.Error(1)
}

func (m *ProtestRepositoryMock) FindByID(ctx context.Context, id int64) (*model.Protest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Protest), args.Error(1)
}

func (m *ProtestRepositoryMock) OwnerOf(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProtestRepositoryMock) UpdateOwned(ctx context.Context, id, organizerID int64, params model.ProtestParams) (*model.Protest, error) {
	args := m.Called(ctx, id, organizerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Protest), args.Error(1)
}

func (m *ProtestRepositoryMock) DeleteOwned(ctx context.Context, id, organizerID int64) error {
	args := m.Called(ctx, id, organizerID)
	return args.Error(0)
}

func (m *ProtestRepositoryMock) AdjustLikes(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}
