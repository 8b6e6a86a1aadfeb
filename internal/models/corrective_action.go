package models

import "time"

type ActionStatus string

const (
	ActionPending    ActionStatus = "Pending"
	ActionInProgress ActionStatus = "In Progress"
	ActionVerified   ActionStatus = "Verified"
	ActionClosed     ActionStatus = "Closed"
)

var ActionStatuses = []ActionStatus{ActionPending, ActionInProgress, ActionVerified, ActionClosed}

func (s ActionStatus) Valid() bool {
	for _, v := range ActionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Resolved reports whether the action no longer counts towards overdue work.
func (s ActionStatus) Resolved() bool {
	return s == ActionVerified || s == ActionClosed
}

type CorrectiveAction struct {
	ID                string
	FindingID         string // ссылка на Finding.ID
	ResponsiblePerson string
	Description       string
	DueDate           time.Time
	Status            ActionStatus
	FollowUpEvidence  *Attachment
}
