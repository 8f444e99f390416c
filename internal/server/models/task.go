package models

import "time"

// Task is owned by the user that created it and belongs to one project.
type Task struct {
	ID        string
	OwnerID   string
	ProjectID string
	Name      string
	Completed bool
	CreatedAt time.Time
}

func (t *Task) GetOwnerID() string { return t.OwnerID }

// TaskUpdate describes an update of a task. A nil field leaves the stored
// value as is.
type TaskUpdate struct {
	Name      *string
	ProjectID *string
	Completed *bool
}

// Apply writes the update onto t.
func (u TaskUpdate) Apply(t *Task) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
}
