package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// MockChallengeRepository is a mock implementation of repository.ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(ctx context.Context, challenge models.Challenge) (int64, error) {
	args := m.Called(ctx, challenge)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChallengeRepository) Get(ctx context.Context, id int64) (*models.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Transition(ctx context.Context, id int64, from, to models.ChallengeStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallengeRepository) Complete(ctx context.Context, id int64, winnerID *int64) error {
	args := m.Called(ctx, id, winnerID)
	return args.Error(0)
}

func (m *MockChallengeRepository) ListActive(ctx context.Context, userID int64) ([]models.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Challenge), args.Error(1)
}
