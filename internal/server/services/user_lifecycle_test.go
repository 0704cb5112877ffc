package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/auth"
	"github.com/dpetrovs/lockbox/internal/server/config"
	"github.com/dpetrovs/lockbox/internal/server/models"
	"github.com/dpetrovs/lockbox/internal/server/repositories/repomanager"
)

// The in-memory repositories hold all state; the sqlite handle only carries
// the transactions the service opens.
func newLifecycleService(t *testing.T) (*UserService, *repomanager.InMemoryRepositoryManager) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:lifecycle?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m := repomanager.NewInMemoryRepositoryManager()
	cfg := &config.Config{
		SecretKey:                    "lifecycle-secret",
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: 30 * 24 * time.Hour,
	}
	return NewUserService(db, m, cfg), m
}

func TestUserLifecycle(t *testing.T) {
	s, _ := newLifecycleService(t)
	ctx := context.Background()

	userID, err := s.Register(ctx, "alice", "client-hash-a", "favourite colour")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// registration alone issues nothing; credentials must be presented again
	login, err := s.Login(ctx, "alice", "client-hash-a")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != userID {
		t.Fatalf("login user id: got %q want %q", login.User.ID, userID)
	}

	claims, err := auth.ParseAccessToken(login.AccessToken, []byte("lifecycle-secret"))
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Subject != userID || claims.Username != "alice" {
		t.Fatalf("claims: %+v", claims)
	}

	ref0 := login.RefreshToken
	pair1, err := s.RefreshToken(ctx, ref0)
	if err != nil {
		t.Fatalf("first rotation: %v", err)
	}
	if pair1.RefreshToken == ref0 {
		t.Fatalf("rotation returned the consumed token")
	}

	// the consumed token is single-use
	if _, err := s.RefreshToken(ctx, ref0); !errors.Is(err, common.ErrInvalidRefreshToken) {
		t.Fatalf("replay of consumed token: want ErrInvalidRefreshToken, got %v", err)
	}

	if err := s.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	// deletion revokes every live session
	if _, err := s.RefreshToken(ctx, pair1.RefreshToken); !errors.Is(err, common.ErrInvalidRefreshToken) {
		t.Fatalf("rotation after delete: want ErrInvalidRefreshToken, got %v", err)
	}
	if _, err := s.GetCurrentUser(ctx, userID); !errors.Is(err, common.ErrUserDeleted) {
		t.Fatalf("profile after delete: want ErrUserDeleted, got %v", err)
	}
	if err := s.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("repeated delete must succeed: %v", err)
	}

	// the username is free again
	if _, err := s.Register(ctx, "alice", "client-hash-b", ""); err != nil {
		t.Fatalf("re-register after delete: %v", err)
	}
}

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	s, m := newLifecycleService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "first", "h1", ""); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if _, err := s.Register(ctx, "second", "h2", ""); err != nil {
		t.Fatalf("register second: %v", err)
	}

	first, err := m.Users(nil).GetByUsername(ctx, "first")
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	second, err := m.Users(nil).GetByUsername(ctx, "second")
	if err != nil {
		t.Fatalf("get second: %v", err)
	}
	if first.Role != models.RoleAdmin {
		t.Fatalf("first user role: got %q", first.Role)
	}
	if second.Role != models.RoleMember {
		t.Fatalf("second user role: got %q", second.Role)
	}
}

func TestRegister_UsernamesAreCaseSensitive(t *testing.T) {
	s, _ := newLifecycleService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "Alice", "h", ""); err != nil {
		t.Fatalf("register Alice: %v", err)
	}
	if _, err := s.Register(ctx, "alice", "h", ""); err != nil {
		t.Fatalf("register alice must be a distinct account: %v", err)
	}
	if _, err := s.Register(ctx, "Alice", "h", ""); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("duplicate Alice: want ErrorAlreadyExists, got %v", err)
	}
}
