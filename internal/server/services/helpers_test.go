package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/auth"
	"github.com/dmitrijs2005/uptask/internal/server/models"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/projects"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/users"
)

var errStorage = errors.New("connection reset")

// seedIdentity stores a user directly, skipping bcrypt.
func seedIdentity(t *testing.T, m repomanager.RepositoryManager, name, email string) auth.Identity {
	t.Helper()
	u, err := m.Users(nil).Create(context.Background(), &models.User{Name: name, Email: email, PasswordHash: "x"})
	require.NoError(t, err)
	return auth.Identity{ID: u.ID, Email: u.Email, Name: u.Name}
}

// brokenRM serves working repositories from an in-memory manager except for
// the ones replaced by a failing fake.
type brokenRM struct {
	*repomanager.MemoryRepositoryManager
	users    users.Repository
	projects projects.Repository
	tasks    tasks.Repository
	txErr    error
}

func (b *brokenRM) Users(db dbx.DBTX) users.Repository {
	if b.users != nil {
		return b.users
	}
	return b.MemoryRepositoryManager.Users(db)
}

func (b *brokenRM) Projects(db dbx.DBTX) projects.Repository {
	if b.projects != nil {
		return b.projects
	}
	return b.MemoryRepositoryManager.Projects(db)
}

func (b *brokenRM) Tasks(db dbx.DBTX) tasks.Repository {
	if b.tasks != nil {
		return b.tasks
	}
	return b.MemoryRepositoryManager.Tasks(db)
}

func (b *brokenRM) RunInTx(ctx context.Context, fn dbx.TxFunc) error {
	if err := b.MemoryRepositoryManager.RunInTx(ctx, fn); err != nil {
		return err
	}
	return b.txErr
}

type failingUsers struct{ users.Repository }

func (failingUsers) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errStorage
}
func (failingUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errStorage
}

type failingProjects struct{ projects.Repository }

func (failingProjects) Create(context.Context, *models.Project) (*models.Project, error) {
	return nil, errStorage
}
func (failingProjects) ListByOwner(context.Context, string) ([]*models.Project, error) {
	return nil, errStorage
}
func (failingProjects) Find(context.Context, string) (*models.Project, error) {
	return nil, errStorage
}
func (failingProjects) FindForUpdate(context.Context, string) (*models.Project, error) {
	return nil, errStorage
}

type failingTasks struct{ tasks.Repository }

func (failingTasks) ListByOwnerAndProject(context.Context, string, string) ([]*models.Task, error) {
	return nil, errStorage
}
