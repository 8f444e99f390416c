package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/projects"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one memstore.Store.
// The DBTX arguments are ignored.
type MemoryRepositoryManager struct {
	store *memstore.Store

	// txMu serialises units of work
	txMu sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memstore.New()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memstore.NewUserRepository(m.store)
}

func (m *MemoryRepositoryManager) Projects(dbx.DBTX) projects.Repository {
	return memstore.NewProjectRepository(m.store)
}

func (m *MemoryRepositoryManager) Tasks(dbx.DBTX) tasks.Repository {
	return memstore.NewTaskRepository(m.store)
}

// RunInTx runs fn while holding the transaction lock. When fn fails or
// panics the store is rolled back to its state before the call.
func (m *MemoryRepositoryManager) RunInTx(ctx context.Context, fn dbx.TxFunc) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.store.Snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.Restore(snap)
			panic(p)
		}
		if err != nil {
			m.store.Restore(snap)
		}
	}()

	return fn(ctx, nil)
}

// RunMigrations is a no-op; the store needs no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
