package store

import (
	"fmt"
	"time"

	"ams-app/internal/models"
)

const recentLimit = 5

type Dashboard struct {
	TotalEngagements     int
	CompletedEngagements int
	TotalFindings        int
	ClosedFindings       int
	ClosedPercent        float64
	OverdueActions       int

	RecentEngagements []EngagementSummary
	RecentFindings    []FindingSummary
}

// ClosedPercentLabel formats ClosedPercent to one decimal place, e.g. "50.0%".
func (d Dashboard) ClosedPercentLabel() string {
	return fmt.Sprintf("%.1f%%", d.ClosedPercent)
}

// EngagementSummary is an engagement without the attachment bytes.
type EngagementSummary struct {
	ID         string                  `json:"id"`
	Title      string                  `json:"title"`
	Department string                  `json:"department"`
	AuditType  models.AuditType        `json:"audit_type"`
	Auditors   []string                `json:"auditors"`
	Auditees   []string                `json:"auditees"`
	StartDate  time.Time               `json:"start_date"`
	EndDate    time.Time               `json:"end_date"`
	Status     models.EngagementStatus `json:"status"`
	ReportName string                  `json:"report_name"`
	ReportSize int                     `json:"report_size"`
}

type FindingSummary struct {
	ID             string                 `json:"id"`
	EngagementID   string                 `json:"engagement_id"`
	Category       models.FindingCategory `json:"category"`
	Description    string                 `json:"description"`
	RiskLevel      models.RiskLevel       `json:"risk_level"`
	RootCause      string                 `json:"root_cause"`
	Recommendation string                 `json:"recommendation"`
	Status         models.FindingStatus   `json:"status"`
	EvidenceName   string                 `json:"evidence_name"`
	EvidenceSize   int                    `json:"evidence_size"`
}

type ActionSummary struct {
	ID                string              `json:"id"`
	FindingID         string              `json:"finding_id"`
	ResponsiblePerson string              `json:"responsible_person"`
	Description       string              `json:"description"`
	DueDate           time.Time           `json:"due_date"`
	Status            models.ActionStatus `json:"status"`
	Overdue           bool                `json:"overdue"`
	EvidenceName      string              `json:"evidence_name"`
	EvidenceSize      int                 `json:"evidence_size"`
}

func SummarizeEngagement(e models.Engagement) EngagementSummary {
	sum := EngagementSummary{
		ID:         e.ID,
		Title:      e.Title,
		Department: e.Department,
		AuditType:  e.AuditType,
		Auditors:   append([]string(nil), e.Auditors...),
		Auditees:   append([]string(nil), e.Auditees...),
		StartDate:  e.StartDate,
		EndDate:    e.EndDate,
		Status:     e.Status,
	}
	if e.Report != nil {
		sum.ReportName = e.Report.Name
		sum.ReportSize = e.Report.Size()
	}
	return sum
}

func SummarizeFinding(f models.Finding) FindingSummary {
	sum := FindingSummary{
		ID:             f.ID,
		EngagementID:   f.EngagementID,
		Category:       f.Category,
		Description:    f.Description,
		RiskLevel:      f.RiskLevel,
		RootCause:      f.RootCause,
		Recommendation: f.Recommendation,
		Status:         f.Status,
	}
	if f.Evidence != nil {
		sum.EvidenceName = f.Evidence.Name
		sum.EvidenceSize = f.Evidence.Size()
	}
	return sum
}

// Dashboard computes the KPIs from the current contents of the store.
func (s *Store) Dashboard() Dashboard {
	today := dateOnly(s.now())

	d := Dashboard{
		TotalEngagements: len(s.engagements),
		TotalFindings:    len(s.findings),
	}
	for _, e := range s.engagements {
		if e.Status == models.EngagementCompleted {
			d.CompletedEngagements++
		}
	}
	for _, f := range s.findings {
		if f.Status == models.FindingClosed {
			d.ClosedFindings++
		}
	}
	if d.TotalFindings > 0 {
		d.ClosedPercent = float64(d.ClosedFindings) / float64(d.TotalFindings) * 100
	}
	for _, a := range s.actions {
		if isOverdue(a, today) {
			d.OverdueActions++
		}
	}

	for _, e := range tail(s.engagements, recentLimit) {
		d.RecentEngagements = append(d.RecentEngagements, SummarizeEngagement(e))
	}
	for _, f := range tail(s.findings, recentLimit) {
		d.RecentFindings = append(d.RecentFindings, SummarizeFinding(f))
	}
	return d
}

// EngagementSummaries lists all engagements without attachment bytes.
func (s *Store) EngagementSummaries() []EngagementSummary {
	out := make([]EngagementSummary, 0, len(s.engagements))
	for _, e := range s.engagements {
		out = append(out, SummarizeEngagement(e))
	}
	return out
}

func (s *Store) FindingSummaries() []FindingSummary {
	out := make([]FindingSummary, 0, len(s.findings))
	for _, f := range s.findings {
		out = append(out, SummarizeFinding(f))
	}
	return out
}

func (s *Store) ActionSummaries() []ActionSummary {
	today := dateOnly(s.now())
	out := make([]ActionSummary, 0, len(s.actions))
	for _, a := range s.actions {
		sum := ActionSummary{
			ID:                a.ID,
			FindingID:         a.FindingID,
			ResponsiblePerson: a.ResponsiblePerson,
			Description:       a.Description,
			DueDate:           a.DueDate,
			Status:            a.Status,
			Overdue:           isOverdue(a, today),
		}
		if a.FollowUpEvidence != nil {
			sum.EvidenceName = a.FollowUpEvidence.Name
			sum.EvidenceSize = a.FollowUpEvidence.Size()
		}
		out = append(out, sum)
	}
	return out
}

func isOverdue(a models.CorrectiveAction, today time.Time) bool {
	return !a.Status.Resolved() && a.DueDate.Before(today)
}

func tail[T any](list []T, n int) []T {
	if len(list) <= n {
		return list
	}
	return list[len(list)-n:]
}
