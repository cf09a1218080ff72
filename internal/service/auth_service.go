package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coinvault/internal/auth"
	apperrors "coinvault/internal/errors"
	"coinvault/internal/model"
	"coinvault/internal/repository"
)

const (
	bcryptCost        = 10
	minNicknameLength = 3
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and errors beyond that.
	maxPasswordLength = 72
)

// AuthService handles registration, login and token resolution.
type AuthService interface {
	Register(ctx context.Context, nickname, password string) (*model.User, string, error)
	Login(ctx context.Context, nickname, password string) (*model.User, string, error)
	// ResolveToken verifies a bearer token and loads the referenced user.
	// A valid signature over a deleted user still fails.
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenService *auth.TokenService) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Register validates input, creates the user with its empty profile and
// issues a token. Length checks run before any storage access.
func (s *authService) Register(ctx context.Context, nickname, password string) (*model.User, string, error) {
	nickname = strings.TrimSpace(nickname)
	if len(nickname) < minNicknameLength || len(password) < minPasswordLength {
		return nil, "", apperrors.ErrNicknameTooShort
	}
	if len(password) > maxPasswordLength {
		return nil, "", apperrors.ErrPasswordTooLong
	}

	existing, err := s.userRepo.FindByNickname(ctx, nickname)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrNicknameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check nickname: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Nickname:     nickname,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a token. Unknown nickname and wrong
// password produce the same error so nicknames cannot be enumerated here.
func (s *authService) Login(ctx context.Context, nickname, password string) (*model.User, string, error) {
	nickname = strings.TrimSpace(nickname)

	user, err := s.userRepo.FindByNickname(ctx, nickname)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

func (s *authService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.tokenService.Verify(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
