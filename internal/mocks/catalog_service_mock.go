// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Active(ctx context.Context) (*service.ActiveCatalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActiveCatalog), args.Error(1)
}

func (m *MockCatalogService) Update(ctx context.Context, spec model.CatalogSpec, updatedBy, note string) (*service.ActiveCatalog, error) {
	args := m.Called(ctx, spec, updatedBy, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActiveCatalog), args.Error(1)
}

func (m *MockCatalogService) History(ctx context.Context, limit int) ([]service.CatalogRevision, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CatalogRevision), args.Error(1)
}

func (m *MockCatalogService) Invalidate() {
	m.Called()
}
