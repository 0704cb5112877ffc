package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/models"
)

func TestInMemory_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.CreateAtomic(ctx, &models.User{ID: "u1", Username: "alice", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("CreateAtomic: %v", err)
	}
	if created.Role != models.RoleAdmin {
		t.Fatalf("first user role: got %q", created.Role)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil || got.ID != "u1" {
		t.Fatalf("GetByUsername: %+v err=%v", got, err)
	}
	if _, err := repo.GetByUsername(ctx, "ALICE"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("lookups are case sensitive, got %v", err)
	}

	if _, err := repo.CreateAtomic(ctx, &models.User{ID: "u2", Username: "alice"}); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("duplicate username: want ErrorAlreadyExists, got %v", err)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("repeated Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("deleted user: want ErrorNotFound, got %v", err)
	}
}

func TestInMemory_ConcurrentFirstRegistration(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	roles := make(chan models.SystemRole, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := repo.CreateAtomic(ctx, &models.User{
				ID:       fmt.Sprintf("u%d", i),
				Username: fmt.Sprintf("user%d", i),
			})
			if err != nil {
				t.Errorf("CreateAtomic: %v", err)
				return
			}
			roles <- u.Role
		}(i)
	}
	wg.Wait()
	close(roles)

	admins := 0
	for role := range roles {
		if role == models.RoleAdmin {
			admins++
		}
	}
	if admins != 1 {
		t.Fatalf("want exactly one admin, got %d", admins)
	}
}
