// Package project defines the project documents owned by the project service.
package project

import "time"

// Project groups tasks under a creator and a set of assigned users.
// Invariant: CreatedBy is always a member of AssignedUsers. The project
// service enforces it on create and repairs it on every update that touches
// the assignment list.
type Project struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	AssignedUsers []string  `json:"assignedUsers"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasMember reports whether userID is in the assignment list.
func (p Project) HasMember(userID string) bool {
	for _, id := range p.AssignedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
