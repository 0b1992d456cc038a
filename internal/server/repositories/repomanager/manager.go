package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mindwell/internal/dbx"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/sentiments"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or a *sql.Tx, so the
// same service code runs inside and outside transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sentiments(db dbx.DBTX) sentiments.Repository
}
