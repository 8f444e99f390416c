// Package memstore keeps users, projects and tasks in process memory. It backs
// the "memory" DSN and the end-to-end tests.
package memstore

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/uptask/internal/server/models"
)

// Store holds all records. Reads and writes of single records are guarded by
// mu; multi-step units of work go through Snapshot/Restore under the caller's
// own serialisation.
type Store struct {
	mu sync.RWMutex

	users    map[string]models.User
	projects map[string]models.Project
	tasks    map[string]models.Task

	// insertion order, used for listing
	projectOrder []string
	taskOrder    []string

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:    map[string]models.User{},
		projects: map[string]models.Project{},
		tasks:    map[string]models.Task{},
		now:      time.Now,
	}
}

// errForeignKey mirrors a foreign key violation of the SQL schema.
var errForeignKey = errors.New("referenced record does not exist")

func newID() string { return uuid.NewString() }

// Snapshot is a point-in-time copy of a Store.
type Snapshot struct {
	users        map[string]models.User
	projects     map[string]models.Project
	tasks        map[string]models.Task
	projectOrder []string
	taskOrder    []string
}

func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{
		users:        maps.Clone(s.users),
		projects:     maps.Clone(s.projects),
		tasks:        maps.Clone(s.tasks),
		projectOrder: slices.Clone(s.projectOrder),
		taskOrder:    slices.Clone(s.taskOrder),
	}
}

// Restore rolls the store back to snap.
func (s *Store) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.projects = snap.projects
	s.tasks = snap.tasks
	s.projectOrder = snap.projectOrder
	s.taskOrder = snap.taskOrder
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
