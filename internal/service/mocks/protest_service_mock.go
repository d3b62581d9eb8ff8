package mocks

import (
	"context"

	"protest-tracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type ProtestServiceMock struct {
	mock.Mock
}

func NewProtestServiceMock() *ProtestServiceMock {
	return &ProtestServiceMock{}
}

func (m *ProtestServiceMock) List(ctx context.Context, upcoming bool) ([]*model.Protest, error) {
	args := m.Called(ctx, upcoming)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Protest), args.Error(1)
}

func (m *ProtestServiceMock) GetByID(ctx context.Context, id int64) (*model.Protest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Protest), args.Error(1)
}

func (m *ProtestServiceMock) Create(ctx context.Context, callerID int64, params model.ProtestParams) (*model.Protest, error) {
	args := m.Called(ctx, callerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Protest), args.Error(1)
}

func (m *ProtestServiceMock) Update(ctx context.Context, callerID, id int64, params model.ProtestParams) (*model.Protest, error) {
	args := m.Called(ctx, callerID, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Protest), args.Error(1)
}

func (m *ProtestServiceMock) Delete(ctx context.Context, callerID, id int64) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *ProtestServiceMock) ListByOrganizer(ctx context.Context, callerID, organizerID int64) ([]*model.Protest, error) {
	args := m.Called(ctx, callerID, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Protest), args.Error(1)
}

func (m *ProtestServiceMock) SetLike(ctx context.Context, id int64, liked bool) (int, error) {
	args := m.Called(ctx, id, liked)
	return args.Int(0), args.Error(1)
}
