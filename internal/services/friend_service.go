package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

// FriendService runs the friend request state machine
type FriendService interface {
	SendFriendRequest(ctx context.Context, senderID, receiverID int64, message string) (*models.FriendRequest, error)
	RespondToFriendRequest(ctx context.Context, requestID, actingUserID int64, action models.FriendAction) (*models.FriendRequest, error)
	ListPendingRequests(ctx context.Context, userID int64) ([]models.PendingFriendRequest, error)
	ListFriends(ctx context.Context, userID int64) ([]models.UserSummary, error)
}

type friendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService creates a new FriendService
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) FriendService {
	return &friendService{friendRepo: friendRepo, userRepo: userRepo}
}

func (s *friendService) SendFriendRequest(ctx context.Context, senderID, receiverID int64, message string) (*models.FriendRequest, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_service")
	log.Debug("sending friend request: sender=%d receiver=%d", senderID, receiverID)

	if senderID == receiverID {
		return nil, errors.NewValidationError("receiverId", "cannot send a friend request to yourself")
	}

	receiver, err := s.userRepo.Get(ctx, receiverID)
	if err != nil {
		log.Error("failed to get receiver: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if receiver == nil {
		return nil, errors.NewNotFoundError("user", receiverID)
	}

	req, err := s.friendRepo.CreateRequest(ctx, senderID, receiverID, strings.TrimSpace(message))
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.NewDuplicateError("friend request already exists")
		}
		log.Error("failed to create friend request: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("friend request sent: id=%d", req.ID)
	return req, nil
}

// RespondToFriendRequest accepts or rejects a request addressed to the acting
// user. Accepting adds the friendship in both directions.
func (s *friendService) RespondToFriendRequest(ctx context.Context, requestID, actingUserID int64, action models.FriendAction) (*models.FriendRequest, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_service")
	log.Debug("responding to friend request: id=%d user=%d action=%s", requestID, actingUserID, action)

	if !action.Valid() {
		return nil, errors.NewValidationError("action", "must be accept or reject")
	}

	req, err := s.friendRepo.GetRequest(ctx, requestID)
	if err != nil {
		log.Error("failed to get friend request: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if req == nil {
		return nil, errors.NewNotFoundError("friend request", requestID)
	}
	if req.ReceiverID != actingUserID {
		return nil, errors.NewForbiddenError("only the receiver can respond to this request")
	}

	status := models.FriendRequestRejected
	if action == models.FriendActionAccept {
		status = models.FriendRequestAccepted
	}

	if req.Status != models.FriendRequestPending && req.Status != status {
		return nil, errors.NewValidationError("action", fmt.Sprintf("request is already %s", req.Status))
	}

	applied, err := s.friendRepo.Respond(ctx, requestID, status)
	if err != nil {
		log.Error("failed to respond to friend request: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if !applied {
		// Answered the other way concurrently.
		return nil, errors.NewValidationError("action", "request has already been answered")
	}

	req.Status = status
	return req, nil
}

func (s *friendService) ListPendingRequests(ctx context.Context, userID int64) ([]models.PendingFriendRequest, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_service")
	log.Debug("listing pending requests: user=%d", userID)

	reqs, err := s.friendRepo.ListPending(ctx, userID)
	if err != nil {
		log.Error("failed to list pending requests: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if reqs == nil {
		reqs = []models.PendingFriendRequest{}
	}
	return reqs, nil
}

func (s *friendService) ListFriends(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_service")
	log.Debug("listing friends: user=%d", userID)

	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		log.Error("failed to list friends: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if friends == nil {
		friends = []models.UserSummary{}
	}
	return friends, nil
}
