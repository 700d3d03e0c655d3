package model

import "time"

// RunStatus is the lifecycle state of an assessment run
type RunStatus string

const (
	RunStatusDraft     RunStatus = "DRAFT"
	RunStatusSubmitted RunStatus = "SUBMITTED"
	RunStatusCooldown  RunStatus = "COOLDOWN"
)

// Run is one instance of a user taking the assessment
type Run struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	UserID        string     `json:"userId" bson:"userId"`
	Status        RunStatus  `json:"status" bson:"status"`
	StartedAt     time.Time  `json:"startedAt" bson:"startedAt"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	CooldownUntil *time.Time `json:"cooldownUntil,omitempty" bson:"cooldownUntil,omitempty"`
}

// Active reports whether the run still accepts answer edits
func (r *Run) Active() bool {
	return r.Status == RunStatusDraft
}
