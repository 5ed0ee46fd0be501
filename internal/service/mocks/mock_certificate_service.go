package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"homologapi/internal/convert"
	"homologapi/internal/model"
	"homologapi/internal/service"
)

type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) Generate(ctx context.Context, req *model.GenerateRequest, format convert.Format) (*service.GenerateResult, error) {
	args := m.Called(ctx, req, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockCertificateService) SearchPatients(ctx context.Context, query string) ([]model.PatientRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PatientRecord), args.Error(1)
}

func (m *MockCertificateService) SearchPhysicians(ctx context.Context, query string) ([]model.PhysicianRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PhysicianRecord), args.Error(1)
}

func (m *MockCertificateService) HealthStats(ctx context.Context) (*service.HealthStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthStats), args.Error(1)
}
