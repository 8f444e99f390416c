package tasks

import (
	"context"

	"github.com/dmitrijs2005/uptask/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Find(ctx context.Context, id string) (*models.Task, error)
	FindForUpdate(ctx context.Context, id string) (*models.Task, error)
	ListByOwnerAndProject(ctx context.Context, ownerID, projectID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}
