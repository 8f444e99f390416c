package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/auth"
	"github.com/dmitrijs2005/uptask/internal/server/models"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/repomanager"
)

// TaskService manages the tasks of an authenticated owner.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) lockTask(ctx context.Context, tx dbx.DBTX, id string) (*models.Task, error) {
	return s.repomanager.Tasks(tx).FindForUpdate(ctx, id)
}

func (s *TaskService) findProject(ctx context.Context, tx dbx.DBTX, id string) (*models.Project, error) {
	return s.repomanager.Projects(tx).FindForUpdate(ctx, id)
}

// List returns the tasks owner created under projectID. Ownership of the
// project itself is not checked; an id that is not a UUID matches nothing.
func (s *TaskService) List(ctx context.Context, owner auth.Identity, projectID string) ([]*models.Task, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return []*models.Task{}, nil
	}

	tasks, err := s.repomanager.Tasks(s.db).ListByOwnerAndProject(ctx, owner.ID, projectID)
	if err != nil {
		return nil, internalError("list tasks", err)
	}
	return tasks, nil
}

// Create adds a pending task to projectID, which must belong to owner.
func (s *TaskService) Create(ctx context.Context, owner auth.Identity, name, projectID string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	projectID = strings.TrimSpace(projectID)
	if name == "" {
		return nil, ErrNameRequired
	}
	if projectID == "" {
		return nil, ErrProjectRequired
	}

	var created *models.Task
	err := s.repomanager.RunInTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := ownedBy(ctx, tx, owner, projectID, ErrProjectNotFound, s.findProject); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.Tasks(tx).Create(ctx, &models.Task{OwnerID: owner.ID, ProjectID: projectID, Name: name})
		return err
	})
	if err != nil {
		return nil, classify("create task", err)
	}
	return created, nil
}

// Update applies upd to the task id. A new project reference must name a
// project of owner.
func (s *TaskService) Update(ctx context.Context, owner auth.Identity, id string, upd models.TaskUpdate) (*models.Task, error) {
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, ErrNameRequired
		}
		upd.Name = &n
	}
	if upd.ProjectID != nil {
		p := strings.TrimSpace(*upd.ProjectID)
		if p == "" {
			return nil, ErrProjectRequired
		}
		upd.ProjectID = &p
	}

	var updated *models.Task
	err := withOwned(ctx, s.repomanager, owner, id, ErrTaskNotFound, s.lockTask,
		func(ctx context.Context, tx dbx.DBTX, t *models.Task) error {
			if upd.ProjectID != nil && *upd.ProjectID != t.ProjectID {
				if _, err := ownedBy(ctx, tx, owner, *upd.ProjectID, ErrProjectNotFound, s.findProject); err != nil {
					return err
				}
			}
			upd.Apply(t)
			var err error
			updated, err = s.repomanager.Tasks(tx).Update(ctx, t)
			return err
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, owner auth.Identity, id string) error {
	return withOwned(ctx, s.repomanager, owner, id, ErrTaskNotFound, s.lockTask,
		func(ctx context.Context, tx dbx.DBTX, t *models.Task) error {
			return s.repomanager.Tasks(tx).Delete(ctx, t.ID)
		})
}
