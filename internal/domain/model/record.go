// Package model contains domain models passed between layers.
package model

import "time"

// Transaction types reported by the data API.
const (
	TypeXP        = "xp"
	TypeAuditUp   = "up"
	TypeAuditDown = "down"
	SkillPrefix   = "skill_"
)

// ObjectTypeProject marks records attached to a project object.
const ObjectTypeProject = "project"

// TransactionRecord is one raw grant reported by the data API.
// Fields mirror the typed GraphQL contract; optional fields are zero when absent.
type TransactionRecord struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`        // "xp", "up", "down", "skill_*"
	Amount     float64   `json:"amount"`      // missing amounts decode as 0
	ObjectID   int64     `json:"object_id"`   // project / exercise id
	ObjectName string    `json:"object_name"` // optional
	ObjectType string    `json:"object_type"` // optional, e.g. "project"
	Path       string    `json:"path"`        // optional
	CreatedAt  time.Time `json:"created_at"`  // optional
}

// ProgressRecord is one graded attempt reported by the data API.
type ProgressRecord struct {
	ID         int64     `json:"id"`
	Grade      float64   `json:"grade"`
	ObjectID   int64     `json:"object_id"`
	ObjectName string    `json:"object_name"`
	ObjectType string    `json:"object_type"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"created_at"`
}

// UngradedGrade marks an attempt the data API has not graded yet.
// It counts toward totals but is neither a pass nor a failure.
const UngradedGrade = -1.0

// Passed reports whether the attempt counts as a pass (grade > 0).
func (p ProgressRecord) Passed() bool { return p.Grade > 0 }

// Failed reports whether the attempt counts as a failure (grade == 0).
func (p ProgressRecord) Failed() bool { return p.Grade == 0 }

// User is the identity of the signed-in account.
type User struct {
	Login     string `json:"login"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
