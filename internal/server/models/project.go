package models

import "time"

// Owned is implemented by records that belong to exactly one user.
type Owned interface {
	GetOwnerID() string
}

// Project is owned by the user that created it. Only Name is mutable.
type Project struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
}

func (p *Project) GetOwnerID() string { return p.OwnerID }
