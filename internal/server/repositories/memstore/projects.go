package memstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/uptask/internal/common"
	"github.com/dmitrijs2005/uptask/internal/server/models"
)

type ProjectRepository struct {
	s *Store
}

func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{s: s}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[project.OwnerID]; !ok {
		return nil, fmt.Errorf("db error: %w", errForeignKey)
	}

	project.ID = newID()
	project.CreatedAt = r.s.now()
	r.s.projects[project.ID] = *project
	r.s.projectOrder = append(r.s.projectOrder, project.ID)

	out := *project
	return &out, nil
}

func (r *ProjectRepository) Find(ctx context.Context, id string) (*models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

// FindForUpdate is Find; the memory manager serialises whole transactions.
func (r *ProjectRepository) FindForUpdate(ctx context.Context, id string) (*models.Project, error) {
	return r.Find(ctx, id)
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*models.Project{}
	for _, id := range r.s.projectOrder {
		p := r.s.projects[id]
		if p.OwnerID == ownerID {
			result = append(result, &p)
		}
	}
	return result, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[project.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Name = project.Name
	r.s.projects[p.ID] = p
	return &p, nil
}

// Delete removes the project together with its tasks.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.projects, id)
	r.s.projectOrder = removeID(r.s.projectOrder, id)

	for tid, t := range r.s.tasks {
		if t.ProjectID == id {
			delete(r.s.tasks, tid)
			r.s.taskOrder = removeID(r.s.taskOrder, tid)
		}
	}
	return nil
}
