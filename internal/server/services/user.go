// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, issuing/refreshing JWTs
// plus server-stored refresh tokens, and account removal.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/dbx"
	"github.com/tableorderhq/tableorder/internal/server/auth"
	"github.com/tableorderhq/tableorder/internal/server/config"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/profiles"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create owner/manager accounts
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Logout / ChangePassword / DeleteAccount
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new account with a bcrypt-hashed password. The role
// must be one of the back-office roles; a duplicate email surfaces as a
// validation error without revealing which field collided.
func (s *UserService) Register(ctx context.Context, email, password, name, role string) (*models.Profile, error) {
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if role != models.RoleOwner && role != models.RoleManager {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}

	repo := s.repomanager.Profiles(s.db)
	created, err := repo.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, profiles.ErrDuplicate) {
			return nil, common.ErrorValidation
		}
		return nil, fmt.Errorf("error creating profile: %v", err)
	}
	return created, nil
}

// Login verifies the password against the stored bcrypt hash and, on
// success, returns the profile and a fresh TokenPair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Profile, *TokenPair, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if !auth.CheckPassword(profile.PasswordHash, password) {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, profile.ID, profile.Email, s.db)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.UpdateLastLogin(ctx, profile.ID); err != nil {
		return nil, nil, common.ErrorInternal
	}
	return profile, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %v", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %v", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, profile.ID, profile.Email, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout deletes the presented refresh token. A missing token is not an
// error; logout is idempotent.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	repo := s.repomanager.RefreshTokens(s.db)
	if err := repo.Delete(ctx, refreshToken); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting refresh token: %v", err)
	}
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return common.ErrorValidation
	}
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByID(ctx, userID)
	if err != nil {
		return common.ErrorUnauthorized
	}
	if !auth.CheckPassword(profile.PasswordHash, currentPassword) {
		return common.ErrorUnauthorized
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	if err := repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("error updating password: %v", err)
	}
	return nil
}

// DeleteAccount removes the profile and all of its refresh tokens in one
// transaction.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).DeleteForUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting refresh tokens: %v", err)
		}
		if err := s.repomanager.Profiles(tx).Delete(ctx, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return fmt.Errorf("error deleting profile: %v", err)
		}
		return nil
	})
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID, email string) (string, error) {
	return auth.GenerateToken(userID, email, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID, email string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID, email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
