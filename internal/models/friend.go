package models

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

type FriendAction string

const (
	FriendActionAccept FriendAction = "accept"
	FriendActionReject FriendAction = "reject"
)

func (a FriendAction) Valid() bool {
	return a == FriendActionAccept || a == FriendActionReject
}

type FriendRequest struct {
	ID         int64               `json:"id"`
	SenderID   int64               `json:"senderId"`
	ReceiverID int64               `json:"receiverId"`
	Message    string              `json:"message,omitempty"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// PendingFriendRequest is a received request decorated with its sender.
type PendingFriendRequest struct {
	FriendRequest
	Sender UserSummary `json:"sender"`
}
