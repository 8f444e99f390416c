// Package users declares the identity store and its PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/uptask/internal/server/models"
)

// Repository persists users keyed by unique email.
type Repository interface {
	// Create stores user and fills its ID and CreatedAt. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when no user has id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
