// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogRepositoryInterface) GetActive(ctx context.Context) (*repository.CatalogDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CatalogDocument), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) Create(ctx context.Context, spec model.CatalogSpec, createdBy, note string) (*repository.CatalogDocument, error) {
	args := m.Called(ctx, spec, createdBy, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CatalogDocument), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) List(ctx context.Context, limit int) ([]repository.CatalogDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CatalogDocument), args.Error(1)
}
