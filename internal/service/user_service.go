package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talkline/talkline/internal/auth"
	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/lib/logger/sl"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user is blocked")
)

type UserService struct {
	users  repository.UserRepository
	tokens *auth.JWTService
	log    *slog.Logger
}

func NewUserService(users repository.UserRepository, tokens *auth.JWTService, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, tokens: tokens, log: log}
}

func (s *UserService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	const op = "service.user.register"

	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" {
		return nil, errors.New("email and username are required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := domain.NewUser(email, username, hash)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", slog.String("op", op), slog.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials, marks the user online and issues a session
// token. Blocked accounts cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	const op = "service.user.login"

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.log.Error("password verification failed", slog.String("op", op), sl.Err(err))
		return nil, "", ErrInvalidCredentials
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, "", ErrUserBlocked
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.users.SetOnline(ctx, user.ID, true); err != nil {
		return nil, "", err
	}
	user.IsOnline = true

	s.log.Info("user logged in", slog.String("op", op), slog.Int64("user_id", user.ID))
	return user, token, nil
}

// Logout marks the user offline and stamps last seen.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return s.users.SetOnline(ctx, userID, false)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, excludeID int64) ([]*domain.User, error) {
	return s.users.List(ctx, excludeID)
}

func (s *UserService) Search(ctx context.Context, query string, excludeID int64) ([]*domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.users.Search(ctx, query, excludeID)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, username, profilePicture string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	return s.users.UpdateProfile(ctx, id, username, profilePicture)
}
