// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/laundry-service/internal/optimizer"
	"github.com/stretchr/testify/mock"
)

type MockSolver struct {
	mock.Mock
}

func (m *MockSolver) Solve(ctx context.Context, p *optimizer.Problem) (optimizer.Solution, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(optimizer.Solution), args.Error(1)
}
