package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// MockLeaderboardCache is a mock implementation of cache.LeaderboardCache
type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	args := m.Called(ctx)
	var entries []models.LeaderboardEntry
	if v := args.Get(0); v != nil {
		entries = v.([]models.LeaderboardEntry)
	}
	return entries, args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, entries []models.LeaderboardEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
