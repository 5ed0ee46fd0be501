package mocks

import (
	"context"

	"homologapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Upsert(ctx context.Context, rec *model.PatientRecord) (*model.PatientRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PatientRecord), args.Error(1)
}

func (m *MockPatientRepository) Search(ctx context.Context, query string) ([]model.PatientRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PatientRecord), args.Error(1)
}

func (m *MockPatientRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
