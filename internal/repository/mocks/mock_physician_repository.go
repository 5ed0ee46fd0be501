package mocks

import (
	"context"

	"homologapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPhysicianRepository struct {
	mock.Mock
}

func (m *MockPhysicianRepository) Upsert(ctx context.Context, rec *model.PhysicianRecord) (*model.PhysicianRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhysicianRecord), args.Error(1)
}

func (m *MockPhysicianRepository) Search(ctx context.Context, query string) ([]model.PhysicianRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PhysicianRecord), args.Error(1)
}

func (m *MockPhysicianRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
