package services

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/auth"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

const (
	minUsernameLen   = 3
	maxUsernameLen   = 20
	minPasswordLen   = 6
	userSearchLimit  = 20
	maxProfileBioLen = 500
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// UserService handles accounts, authentication and profiles
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, login, password string) (*AuthResult, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error)
	UpdateProfile(ctx context.Context, userID int64, profile models.Profile) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenIssuer) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	log := logger.FromContext(ctx).WithPrefix("user_service")
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug("registering user: username=%s", username)

	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, errors.NewValidationError("username", "must be between 3 and 20 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return nil, errors.NewValidationError("email", "must be a valid address")
	}
	if len(password) < minPasswordLen {
		return nil, errors.NewValidationError("password", "must be at least 6 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	id, err := s.userRepo.Create(ctx, models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.NewDuplicateError("username or email already registered")
		}
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.userRepo.Get(ctx, id)
	if err != nil || user == nil {
		log.Error("failed to load new user %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}

	return s.issue(ctx, user)
}

func (s *userService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	log := logger.FromContext(ctx).WithPrefix("user_service")
	login = strings.TrimSpace(login)
	log.Debug("login attempt: login=%s", login)

	if login == "" || password == "" {
		return nil, errors.NewValidationError("credentials", "login and password are required")
	}

	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errors.NewUnauthenticatedError("invalid credentials")
	}

	return s.issue(ctx, user)
}

func (s *userService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		logger.FromContext(ctx).Error("failed to issue token for user %d: %v", user.ID, err)
		return nil, errors.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *userService) Me(ctx context.Context, userID int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_service")
	log.Debug("getting user: id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return user, nil
}

func (s *userService) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("user_service")
	query = strings.TrimSpace(query)
	log.Debug("searching users: query=%q", query)

	if query == "" {
		return []models.UserSummary{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, userSearchLimit)
	if err != nil {
		log.Error("failed to search users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, profile models.Profile) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_service")
	log.Debug("updating profile: id=%d", userID)

	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)
	profile.Avatar = strings.TrimSpace(profile.Avatar)
	if utf8.RuneCountInString(profile.Bio) > maxProfileBioLen {
		return nil, errors.NewValidationError("bio", "must be at most 500 characters")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, profile); err != nil {
		log.Error("failed to update profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.Me(ctx, userID)
}
