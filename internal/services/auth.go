package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/models"
	"typedrill/internal/utils"
)

var (
	ErrUsernameTaken  = errors.New("username is already taken")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrInvalidLogin   = errors.New("invalid username or password")
	ErrInvalidRefresh = errors.New("invalid refresh token")
)

type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	SaveRefreshToken(ctx context.Context, userID int, token string) error
	IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID int, token string) error
}

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.WithCtx(ctx).Info("registering user (service)", zap.String("username", input.Username))
	if exists, err := s.repo.IsUsernameTaken(ctx, input.Username); exists || err != nil {
		if err != nil {
			logger.WithCtx(ctx).Error("username check failed", zap.Error(err))
			return err
		}
		return ErrUsernameTaken
	}
	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.WithCtx(ctx).Error("email check failed", zap.Error(err))
			return err
		}
		return ErrEmailTaken
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.WithCtx(ctx).Error("password hashing failed", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.Role = "user"

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.WithCtx(ctx).Error("user creation failed", zap.Error(err))
		return err
	}
	return nil
}

// LoginUser verifies the credentials and issues an access/refresh token
// pair. A missing user and a wrong password produce the same error so
// login probing cannot enumerate accounts.
func (s *AuthService) LoginUser(
	ctx context.Context,
	username, password, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, *models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		logger.WithCtx(ctx).Warn("login: user lookup failed (service)", zap.String("username", username), zap.Error(err))
		return "", "", nil, ErrInvalidLogin
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.WithCtx(ctx).Warn("login: wrong password (service)", zap.String("username", username))
		return "", "", nil, ErrInvalidLogin
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Username, user.Role, accessTTL, "access")
	if err != nil {
		logger.WithCtx(ctx).Error("access token generation failed", zap.Error(err))
		return "", "", nil, err
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Username, user.Role, refreshTTL, "refresh")
	if err != nil {
		logger.WithCtx(ctx).Error("refresh token generation failed", zap.Error(err))
		return "", "", nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		logger.WithCtx(ctx).Error("refresh token save failed", zap.Error(err))
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

// RefreshTokens rotates the refresh token: the old one is validated,
// deleted, and a fresh pair is issued.
func (s *AuthService) RefreshTokens(
	ctx context.Context,
	userID int, oldToken, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, error) {
	valid, err := s.repo.IsRefreshTokenValid(ctx, userID, oldToken)
	if err != nil {
		return "", "", err
	}
	if !valid {
		return "", "", ErrInvalidRefresh
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	if err := s.repo.DeleteRefreshToken(ctx, userID, oldToken); err != nil {
		return "", "", err
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Username, user.Role, accessTTL, "access")
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Username, user.Role, refreshTTL, "refresh")
	if err != nil {
		return "", "", err
	}
	if err := s.repo.SaveRefreshToken(ctx, userID, refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int, token string) error {
	logger.WithCtx(ctx).Info("logging out user (service)", zap.Int("user_id", userID))
	return s.repo.DeleteRefreshToken(ctx, userID, token)
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
