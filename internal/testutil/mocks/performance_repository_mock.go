package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// MockPerformanceRepository is a mock implementation of repository.PerformanceRepository
type MockPerformanceRepository struct {
	mock.Mock
}

func (m *MockPerformanceRepository) CreateWithStats(ctx context.Context, record models.PerformanceRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPerformanceRepository) Get(ctx context.Context, id int64) (*models.PerformanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PerformanceRecord), args.Error(1)
}

func (m *MockPerformanceRepository) FindByAttemptToken(ctx context.Context, userID int64, token string) (*models.PerformanceRecord, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PerformanceRecord), args.Error(1)
}

func (m *MockPerformanceRepository) ListByUser(ctx context.Context, userID int64) ([]models.PerformanceWithQuiz, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PerformanceWithQuiz), args.Error(1)
}
