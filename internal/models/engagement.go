package models

import "time"

type AuditType string
type EngagementStatus string

const (
	AuditCompliance  AuditType = "Compliance"
	AuditIT          AuditType = "IT"
	AuditOperational AuditType = "Operational"
	AuditFinancial   AuditType = "Financial"
	AuditOther       AuditType = "Other"

	EngagementDraft      EngagementStatus = "Draft"
	EngagementInProgress EngagementStatus = "In Progress"
	EngagementCompleted  EngagementStatus = "Completed"
	EngagementCancelled  EngagementStatus = "Cancelled"
)

// AuditTypes in the order the create form offers them.
var AuditTypes = []AuditType{AuditCompliance, AuditIT, AuditOperational, AuditFinancial, AuditOther}

var EngagementStatuses = []EngagementStatus{
	EngagementDraft,
	EngagementInProgress,
	EngagementCompleted,
	EngagementCancelled,
}

func (t AuditType) Valid() bool {
	for _, v := range AuditTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s EngagementStatus) Valid() bool {
	for _, v := range EngagementStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Engagement — аудиторская проверка подразделения.
type Engagement struct {
	ID         string
	Title      string
	Department string
	AuditType  AuditType
	Auditors   []string
	Auditees   []string
	StartDate  time.Time
	EndDate    time.Time
	Status     EngagementStatus
	Report     *Attachment // итоговый отчёт, необязателен
}
