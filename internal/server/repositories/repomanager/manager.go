package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/projects"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Tasks(db dbx.DBTX) tasks.Repository

	// RunInTx runs fn as one unit of work. Repositories obtained from the
	// handle passed to fn take part in it.
	RunInTx(ctx context.Context, fn dbx.TxFunc) error
}
