package mocks

import (
	"context"

	"protest-tracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type OrganizerServiceMock struct {
	mock.Mock
}

func NewOrganizerServiceMock() *OrganizerServiceMock {
	return &OrganizerServiceMock{}
}

func (m *OrganizerServiceMock) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *OrganizerServiceMock) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *OrganizerServiceMock) GetByID(ctx context.Context, id int64) (*model.PublicOrganizer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicOrganizer), args.Error(1)
}

func (m *OrganizerServiceMock) SetFollow(ctx context.Context, id int64, following bool) (int, error) {
	args := m.Called(ctx, id, following)
	return args.Int(0), args.Error(1)
}

func (m *OrganizerServiceMock) Analytics(ctx context.Context, callerID, id int64) (*model.Analytics, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analytics), args.Error(1)
}
