package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/uptask/internal/common"
	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	if err := s.Scan(&t.ID, &t.OwnerID, &t.ProjectID, &t.Name, &t.Completed, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a task. New tasks always start out pending.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (owner_id, project_id, name, completed)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, completed, created_at
	`
	err := r.db.QueryRowContext(ctx, query, task.OwnerID, task.ProjectID, task.Name).
		Scan(&task.ID, &task.Completed, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, owner_id, project_id, name, completed, created_at
		FROM tasks
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) FindForUpdate(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, owner_id, project_id, name, completed, created_at
		FROM tasks
		WHERE id = $1
		FOR UPDATE
	`
	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, id string) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ListByOwnerAndProject returns the tasks ownerID created in projectID,
// oldest first.
func (r *PostgresRepository) ListByOwnerAndProject(ctx context.Context, ownerID, projectID string) ([]*models.Task, error) {
	query := `
		SELECT id, owner_id, project_id, name, completed, created_at
		FROM tasks
		WHERE owner_id = $1 AND project_id = $2
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update writes name, project and status. Owner and creation time are kept.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks SET name = $2, project_id = $3, completed = $4
		WHERE id = $1
		RETURNING id, owner_id, project_id, name, completed, created_at
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, task.ID, task.Name, task.ProjectID, task.Completed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
