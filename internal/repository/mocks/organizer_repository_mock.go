package mocks

import (
	"context"

	"protest-tracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type OrganizerRepositoryMock struct {
	mock.Mock
}

func NewOrganizerRepositoryMock() *OrganizerRepositoryMock {
	return &OrganizerRepositoryMock{}
}

func (m *OrganizerRepositoryMock) Create(ctx context.Context, organizer *model.Organizer) (*model.Organizer, error) {
	args := m.Called(ctx, organizer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *OrganizerRepositoryMock) FindByID(ctx context.Context, id int64) (*model.Organizer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *OrganizerRepositoryMock) FindByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organizer), args.Error(1)
}

func (m *OrganizerRepositoryMock) AdjustFollowers(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *OrganizerRepositoryMock) Analytics(ctx context.Context, id int64) (*model.Analytics, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analytics), args.Error(1)
}
