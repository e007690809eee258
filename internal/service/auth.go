package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/budgetly/expense-tracker/internal/dto"
	apperrors "github.com/budgetly/expense-tracker/internal/errors"
	"github.com/budgetly/expense-tracker/internal/model"
	"github.com/budgetly/expense-tracker/internal/token"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

// UserStore is the auth service's view of user persistence: lookups plus the
// single mutation point for the live refresh credential.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	RecordRefreshToken(ctx context.Context, id uint, refreshToken string) error
	ClearRefreshToken(ctx context.Context, id uint) error
}

type AuthService struct {
	users  UserStore
	issuer *token.Issuer
}

func NewAuthService(users UserStore, issuer *token.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// LoginResult carries the freshly issued credential pair next to the profile
// returned in the login body.
type LoginResult struct {
	User         dto.LoginResponse
	AccessToken  string
	RefreshToken string
}

// Register creates a user with a bcrypt password hash. The hash is computed
// here and never re-derived elsewhere.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		logger.GetLogger().Warn("Registration with existing email",
			zap.String("email", email),
		)
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return &dto.RegisterResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// Login verifies credentials and issues both token classes, recording the
// refresh token as the user's only live refresh credential. A concurrent
// login by the same account overwrites the previous credential; last writer
// wins.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.GetLogger().Warn("Login with incorrect password",
			zap.String("email", email),
			zap.Uint("user_id", user.ID),
		)
		return nil, apperrors.ErrInvalidCredentials
	}

	subject := formatSubject(user.ID)

	accessToken, err := s.issuer.IssueAccess(subject)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	refreshToken, err := s.issuer.IssueRefresh(subject)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.RecordRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("email", email),
	)

	return &LoginResult{
		User:         dto.LoginResponse{Name: user.Name, Email: user.Email},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token from a presented refresh token. The
// presented value must both decode under the refresh secret and match the
// user's stored live credential, so a logged-out token cannot mint access
// tokens even before its expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.DecodeRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return "", apperrors.ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrTokenInvalid
		}
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.RefreshToken != refreshToken {
		logger.GetLogger().Warn("Refresh with revoked or superseded token",
			zap.Uint("user_id", user.ID),
		)
		return "", apperrors.ErrTokenRevoked
	}

	return s.issuer.IssueAccess(claims.Subject)
}

// ClearSession revokes the live refresh credential referenced by the
// presented refresh token. Callers on the logout path discard the error
// deliberately: logout must succeed regardless.
func (s *AuthService) ClearSession(ctx context.Context, refreshToken string) error {
	claims, err := s.issuer.DecodeRefresh(refreshToken)
	if err != nil {
		return err
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}

	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("Session cleared", zap.Uint("user_id", userID))
	return nil
}

func formatSubject(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseSubject(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
