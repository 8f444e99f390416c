package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/auth"
	"github.com/dmitrijs2005/uptask/internal/server/models"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/repomanager"
)

// ProjectService manages the projects of an authenticated owner.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

// lockProject is the finder used by every project mutation.
func (s *ProjectService) lockProject(ctx context.Context, tx dbx.DBTX, id string) (*models.Project, error) {
	return s.repomanager.Projects(tx).FindForUpdate(ctx, id)
}

// List returns the projects owned by owner.
func (s *ProjectService) List(ctx context.Context, owner auth.Identity) ([]*models.Project, error) {
	projects, err := s.repomanager.Projects(s.db).ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, internalError("list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Create(ctx context.Context, owner auth.Identity, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	p, err := s.repomanager.Projects(s.db).Create(ctx, &models.Project{OwnerID: owner.ID, Name: name})
	if err != nil {
		return nil, internalError("create project", err)
	}
	return p, nil
}

// Update renames the project id. Only its owner may do so.
func (s *ProjectService) Update(ctx context.Context, owner auth.Identity, id, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var updated *models.Project
	err := withOwned(ctx, s.repomanager, owner, id, ErrProjectNotFound, s.lockProject,
		func(ctx context.Context, tx dbx.DBTX, p *models.Project) error {
			p.Name = name
			var err error
			updated, err = s.repomanager.Projects(tx).Update(ctx, p)
			return err
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the project id and its tasks. Only its owner may do so.
func (s *ProjectService) Delete(ctx context.Context, owner auth.Identity, id string) error {
	return withOwned(ctx, s.repomanager, owner, id, ErrProjectNotFound, s.lockProject,
		func(ctx context.Context, tx dbx.DBTX, p *models.Project) error {
			return s.repomanager.Projects(tx).Delete(ctx, p.ID)
		})
}
