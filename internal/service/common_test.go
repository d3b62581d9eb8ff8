package service_test

import (
	"context"

	"protest-tracker/internal/cache"
	"protest-tracker/internal/model"

	"github.com/stretchr/testify/mock"
)

type listCacheMock struct {
	mock.Mock
}

func (m *listCacheMock) Get(ctx context.Context, upcoming bool) (cache.Listing, error) {
	args := m.Called(ctx, upcoming)
	return args.Get(0).(cache.Listing), args.Error(1)
}

func (m *listCacheMock) Set(ctx context.Context, upcoming bool, version int64, protests []*model.Protest) (bool, error) {
	args := m.Called(ctx, upcoming, version, protests)
	return args.Bool(0), args.Error(1)
}

func (m *listCacheMock) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func strPtr(s string) *string { return &s }
