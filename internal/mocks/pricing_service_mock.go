// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Optimize(ctx context.Context, order model.Order) (model.Quote, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(model.Quote), args.Error(1)
}

func (m *MockPricingService) GetQuote(ctx context.Context, id string) (model.Quote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Quote), args.Error(1)
}
