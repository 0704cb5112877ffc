// Package repomanager vends repository implementations bound to a database
// handle, so services can compose repositories inside and outside
// transactions through the same factory.
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

// RepositoryManager produces repositories bound to the provided DBTX
// (either *sql.DB or an open *sql.Tx) and owns schema migrations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	ApiKeys(db dbx.DBTX) apikeys.Repository
	Tenants(db dbx.DBTX) tenants.Repository
	VaultItems(db dbx.DBTX) vaultitems.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
