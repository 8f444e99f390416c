package memstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/uptask/internal/common"
	"github.com/dmitrijs2005/uptask/internal/server/models"
)

type TaskRepository struct {
	s *Store
}

func NewTaskRepository(s *Store) *TaskRepository {
	return &TaskRepository{s: s}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[task.ProjectID]; !ok {
		return nil, fmt.Errorf("db error: %w", errForeignKey)
	}

	task.ID = newID()
	task.Completed = false
	task.CreatedAt = r.s.now()
	r.s.tasks[task.ID] = *task
	r.s.taskOrder = append(r.s.taskOrder, task.ID)

	out := *task
	return &out, nil
}

func (r *TaskRepository) Find(ctx context.Context, id string) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *TaskRepository) FindForUpdate(ctx context.Context, id string) (*models.Task, error) {
	return r.Find(ctx, id)
}

func (r *TaskRepository) ListByOwnerAndProject(ctx context.Context, ownerID, projectID string) ([]*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*models.Task{}
	for _, id := range r.s.taskOrder {
		t := r.s.tasks[id]
		if t.OwnerID == ownerID && t.ProjectID == projectID {
			result = append(result, &t)
		}
	}
	return result, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[task.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if _, ok := r.s.projects[task.ProjectID]; !ok {
		return nil, fmt.Errorf("db error: %w", errForeignKey)
	}
	t.Name = task.Name
	t.ProjectID = task.ProjectID
	t.Completed = task.Completed
	r.s.tasks[t.ID] = t
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.tasks, id)
	r.s.taskOrder = removeID(r.s.taskOrder, id)
	return nil
}
