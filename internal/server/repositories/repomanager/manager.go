package repomanager

import (
	"context"
	"database/sql"

	"github.com/tableorderhq/tableorder/internal/dbx"
	"github.com/tableorderhq/tableorder/internal/server/repositories/health"
	"github.com/tableorderhq/tableorder/internal/server/repositories/menus"
	"github.com/tableorderhq/tableorder/internal/server/repositories/orders"
	"github.com/tableorderhq/tableorder/internal/server/repositories/profiles"
	"github.com/tableorderhq/tableorder/internal/server/repositories/refreshtokens"
	"github.com/tableorderhq/tableorder/internal/server/repositories/stores"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against *sql.DB or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Stores(db dbx.DBTX) stores.Repository
	Menus(db dbx.DBTX) menus.Repository
	Orders(db dbx.DBTX) orders.Repository
	Health(db dbx.DBTX) *health.PostgresRepository
}
