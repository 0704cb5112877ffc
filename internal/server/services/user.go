// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, issuing/refreshing JWTs
// plus server-stored refresh sessions, and account deletion.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/dbx"
	"github.com/dpetrovs/lockbox/internal/server/auth"
	"github.com/dpetrovs/lockbox/internal/server/config"
	"github.com/dpetrovs/lockbox/internal/server/models"
	"github.com/dpetrovs/lockbox/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         UserDTO
}

// UserDTO is the externally visible shape of a user account. It carries
// exactly the id and username, never credential material.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserService provides authentication-related operations:
//   - Register: create accounts (no tokens are issued; callers must Login)
//   - Login: verify credentials and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//   - DeleteAccount: revoke all sessions and remove the account
//
// A UserService value is stateless and safe for concurrent use.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// WithClock overrides the service time source, for deterministic tests.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// Register creates a new account together with its individual tenant.
// The supplied credential is a client-derived hash treated here as an
// opaque secret; it is hashed again before storage. The first account ever
// registered is elected admin by the store. Registration issues no tokens.
func (s *UserService) Register(ctx context.Context, username, authHash, passwordHint string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", common.ErrorUsernameRequired
	}
	if strings.TrimSpace(authHash) == "" {
		return "", common.ErrorPasswordRequired
	}

	if _, err := s.repomanager.Users(s.db).GetByUsername(ctx, username); err == nil {
		return "", common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorInternal
	}

	// bcrypt is deliberately slow; keep it outside the transaction.
	passwordHash, err := auth.HashSecret(authHash)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		PasswordHint: passwordHint,
	}

	err = dbx.WithTx(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx dbx.DBTX) error {
		tenant, err := s.repomanager.Tenants(tx).Create(ctx, &models.Tenant{
			ID:        uuid.NewString(),
			Name:      username,
			Type:      models.TenantIndividual,
			CreatedBy: user.ID,
		})
		if err != nil {
			return fmt.Errorf("error creating individual tenant: %w", err)
		}
		user.IndividualTenantID = tenant.ID
		_, err = s.repomanager.Users(tx).CreateAtomic(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// lost a concurrent race on the same username
			return "", common.ErrorAlreadyExists
		}
		return "", common.ErrorInternal
	}
	return user.ID, nil
}

// Login verifies the provided credential hash against the stored bcrypt
// hash and, on success, mints a token pair and persists the refresh
// session. Failures are uniform: an unknown username and a wrong secret
// are indistinguishable to the caller. Concurrent logins create
// independent sessions; no session limit is enforced.
func (s *UserService) Login(ctx context.Context, username, authHash string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(authHash) == "" {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.VerifySecret(authHash, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user.ID, user.Username, s.db)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         UserDTO{ID: user.ID, Username: user.Username},
	}, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. A token that is unknown, expired, already
// rotated, or owned by a deleted user yields ErrInvalidRefreshToken
// uniformly. Of two concurrent calls presenting the same token, exactly
// one succeeds: the revoke inside the transaction reports not-found for
// the loser.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	sessionRepo := s.repomanager.Sessions(s.db)

	session, err := sessionRepo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, common.ErrorInternal
	}
	if !s.now().Before(session.ExpiresAt) {
		return nil, common.ErrInvalidRefreshToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// owner deleted after the session was issued
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, common.ErrorInternal
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Sessions(tx).Revoke(ctx, refreshToken); err != nil {
			return err
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user.ID, user.Username, tx)
		return genErr
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// a concurrent rotation consumed the token first
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, common.ErrorInternal
	}
	return pair, nil
}

// DeleteAccount revokes every session owned by userID and deletes the
// account if it still exists. The operation is idempotent: deleting an
// already-deleted account succeeds. Previously issued access tokens stay
// structurally valid until their own expiry; only store-backed state is
// revoked here.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Sessions(tx).RevokeAll(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
	if err != nil {
		return common.ErrorInternal
	}
	return nil
}

// GetCurrentUser returns the profile of userID, or ErrUserDeleted when the
// account no longer exists.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*UserDTO, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserDeleted
		}
		return nil, common.ErrorInternal
	}
	return &UserDTO{ID: user.ID, Username: user.Username}, nil
}

// ExportUserData returns the user's stored profile as a JSON document.
func (s *UserService) ExportUserData(ctx context.Context, userID string) ([]byte, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	data, err := json.Marshal(UserDTO{ID: user.ID, Username: user.Username})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return data, nil
}

// --- helpers below ---

func (s *UserService) generateTokenPair(ctx context.Context, userID, username string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(userID, username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	expiresAt := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.Sessions(tx).Create(ctx, userID, refresh, expiresAt); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
