package mocks

import (
	"context"
	"io"

	"homologapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}
