package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// MockFriendRepository is a mock implementation of repository.FriendRepository
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) CreateRequest(ctx context.Context, senderID, receiverID int64, message string) (*models.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) GetRequest(ctx context.Context, id int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) Respond(ctx context.Context, id int64, status models.FriendRequestStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) ListPending(ctx context.Context, receiverID int64) ([]models.PendingFriendRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingFriendRequest), args.Error(1)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}
