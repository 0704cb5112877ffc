package repomanager

import (
	"context"
	"database/sql"

	"github.com/dpetrovs/lockbox/internal/dbx"
	"github.com/dpetrovs/lockbox/internal/server/repositories/apikeys"
	"github.com/dpetrovs/lockbox/internal/server/repositories/sessions"
	"github.com/dpetrovs/lockbox/internal/server/repositories/tenants"
	"github.com/dpetrovs/lockbox/internal/server/repositories/users"
	"github.com/dpetrovs/lockbox/internal/server/repositories/vaultitems"
)

// InMemoryRepositoryManager vends the in-memory reference repositories.
// The DBTX argument is accepted for interface compatibility and ignored;
// each repository guards its own state. Intended for tests and local runs
// without a database.
type InMemoryRepositoryManager struct {
	users      *users.InMemoryRepository
	sessions   *sessions.InMemoryRepository
	apiKeys    *apikeys.InMemoryRepository
	tenants    *tenants.InMemoryRepository
	vaultItems *vaultitems.InMemoryRepository
}

// NewInMemoryRepositoryManager constructs a manager with empty stores.
func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:      users.NewInMemoryRepository(),
		sessions:   sessions.NewInMemoryRepository(),
		apiKeys:    apikeys.NewInMemoryRepository(),
		tenants:    tenants.NewInMemoryRepository(),
		vaultItems: vaultitems.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository           { return m.users }
func (m *InMemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository     { return m.sessions }
func (m *InMemoryRepositoryManager) ApiKeys(dbx.DBTX) apikeys.Repository       { return m.apiKeys }
func (m *InMemoryRepositoryManager) Tenants(dbx.DBTX) tenants.Repository       { return m.tenants }
func (m *InMemoryRepositoryManager) VaultItems(dbx.DBTX) vaultitems.Repository { return m.vaultItems }

// RunMigrations is a no-op for in-memory stores.
func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }
