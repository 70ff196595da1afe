package models

import (
	"errors"
	"time"
)

// Status tracks a submitted application through review.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusInReview  Status = "in-review"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var (
	ErrUnknownStatus     = errors.New("unknown application status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// statusRank orders statuses along the review pipeline. Approved and rejected
// share the terminal rank: neither can be reached from the other.
var statusRank = map[Status]int{
	StatusSubmitted: 0,
	StatusInReview:  1,
	StatusApproved:  2,
	StatusRejected:  2,
}

// Valid reports whether s is one of the four legal status values.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether s ends the review pipeline.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanAdvance reports whether a transition from s to next is legal.
// Transitions must move strictly forward: submitted -> in-review ->
// {approved, rejected}, skipping in-review is allowed, going back or leaving
// a terminal state is not.
func (s Status) CanAdvance(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return statusRank[next] > statusRank[s]
}

// StepStatus classifies one timeline step of an application review.
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepError     StepStatus = "error"
	StepPending   StepStatus = "pending"
)

// TimelineStep is one entry of an application's reviewable history.
type TimelineStep struct {
	Label  string     `json:"label"`
	Date   *time.Time `json:"date"`
	Status StepStatus `json:"status"`
}

// Application is one submitted benefit application. Timeline is optional:
// a nil timeline is a valid record, and presentation layers synthesize a
// fallback from DateApplied and Status when it is absent.
type Application struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	ServiceName string            `json:"serviceName"`
	Category    string            `json:"category"`
	FormData    map[string]string `json:"formData,omitempty"`
	Status      Status            `json:"status"`
	DateApplied time.Time         `json:"dateApplied"`
	Timeline    []TimelineStep    `json:"timeline,omitempty"`
}
