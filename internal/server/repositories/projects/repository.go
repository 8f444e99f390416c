// Package projects declares the project store and its PostgreSQL implementation.
package projects

import (
	"context"

	"github.com/dmitrijs2005/uptask/internal/server/models"
)

// Repository persists projects. Lookups of absent ids return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	Find(ctx context.Context, id string) (*models.Project, error)

	// FindForUpdate is Find that also locks the row until the surrounding
	// transaction ends.
	FindForUpdate(ctx context.Context, id string) (*models.Project, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}
