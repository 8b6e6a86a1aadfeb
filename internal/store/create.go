package store

import (
	"fmt"
	"strings"
	"time"

	"ams-app/internal/models"
)

type EngagementInput struct {
	Title      string
	Department string
	AuditType  models.AuditType
	Auditors   []string
	Auditees   []string
	StartDate  time.Time
	EndDate    time.Time
	Report     *models.Attachment
}

type FindingInput struct {
	EngagementID   string
	Category       models.FindingCategory
	Description    string
	RiskLevel      models.RiskLevel
	RootCause      string
	Recommendation string
	Evidence       *models.Attachment
}

type CorrectiveActionInput struct {
	FindingID         string
	ResponsiblePerson string
	Description       string
	DueDate           time.Time
	Evidence          *models.Attachment
}

// CreateEngagement validates in, appends a Draft engagement and returns its ID.
// On error the store is left untouched.
func (s *Store) CreateEngagement(in EngagementInput) (string, error) {
	title := strings.TrimSpace(in.Title)
	department := strings.TrimSpace(in.Department)
	auditors := cleanList(in.Auditors)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if department == "" {
		missing = append(missing, "department")
	}
	if len(auditors) == 0 {
		missing = append(missing, "auditors")
	}
	if len(missing) > 0 {
		return "", &ValidationError{Entity: EntityEngagement, Fields: missing}
	}

	auditType := in.AuditType
	if auditType == "" {
		auditType = models.AuditTypes[0]
	}
	if !auditType.Valid() {
		return "", &ValidationError{
			Entity: EntityEngagement,
			Fields: []string{"audit_type"},
			Reason: fmt.Sprintf("unknown audit type %q", auditType),
		}
	}

	report, err := s.attachment(EntityEngagement, "report", in.Report)
	if err != nil {
		return "", err
	}

	id := NextID(EngagementPrefix, engagementIDs(s.engagements))
	s.engagements = append(s.engagements, models.Engagement{
		ID:         id,
		Title:      title,
		Department: department,
		AuditType:  auditType,
		Auditors:   auditors,
		Auditees:   cleanList(in.Auditees),
		StartDate:  dateOnly(in.StartDate),
		EndDate:    dateOnly(in.EndDate),
		Status:     models.EngagementDraft,
		Report:     report,
	})
	return id, nil
}

// CreateFinding appends an Open finding linked to an existing engagement.
func (s *Store) CreateFinding(in FindingInput) (string, error) {
	engagementID := strings.TrimSpace(in.EngagementID)
	description := strings.TrimSpace(in.Description)

	var missing []string
	if engagementID == "" {
		missing = append(missing, "engagement_id")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if in.RiskLevel == "" {
		missing = append(missing, "risk_level")
	}
	if len(missing) > 0 {
		return "", &ValidationError{Entity: EntityFinding, Fields: missing}
	}

	if !in.RiskLevel.Valid() {
		return "", &ValidationError{
			Entity: EntityFinding,
			Fields: []string{"risk_level"},
			Reason: fmt.Sprintf("unknown risk level %q", in.RiskLevel),
		}
	}
	category := in.Category
	if category == "" {
		category = models.FindingCategories[0]
	}
	if !category.Valid() {
		return "", &ValidationError{
			Entity: EntityFinding,
			Fields: []string{"category"},
			Reason: fmt.Sprintf("unknown category %q", category),
		}
	}

	evidence, err := s.attachment(EntityFinding, "evidence", in.Evidence)
	if err != nil {
		return "", err
	}

	if s.engagementIndex(engagementID) < 0 {
		return "", &ReferenceError{Entity: EntityFinding, Field: "engagement_id", ID: engagementID}
	}

	id := NextID(FindingPrefix, findingIDs(s.findings))
	s.findings = append(s.findings, models.Finding{
		ID:             id,
		EngagementID:   engagementID,
		Category:       category,
		Description:    description,
		Evidence:       evidence,
		RiskLevel:      in.RiskLevel,
		RootCause:      strings.TrimSpace(in.RootCause),
		Recommendation: strings.TrimSpace(in.Recommendation),
		Status:         models.FindingOpen,
	})
	return id, nil
}

// CreateCorrectiveAction appends a Pending action linked to an existing finding.
func (s *Store) CreateCorrectiveAction(in CorrectiveActionInput) (string, error) {
	findingID := strings.TrimSpace(in.FindingID)
	person := strings.TrimSpace(in.ResponsiblePerson)
	description := strings.TrimSpace(in.Description)

	var missing []string
	if findingID == "" {
		missing = append(missing, "finding_id")
	}
	if person == "" {
		missing = append(missing, "responsible_person")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if in.DueDate.IsZero() {
		missing = append(missing, "due_date")
	}
	if len(missing) > 0 {
		return "", &ValidationError{Entity: EntityAction, Fields: missing}
	}

	evidence, err := s.attachment(EntityAction, "evidence", in.Evidence)
	if err != nil {
		return "", err
	}

	if s.findingIndex(findingID) < 0 {
		return "", &ReferenceError{Entity: EntityAction, Field: "finding_id", ID: findingID}
	}

	id := NextID(ActionPrefix, actionIDs(s.actions))
	s.actions = append(s.actions, models.CorrectiveAction{
		ID:                id,
		FindingID:         findingID,
		ResponsiblePerson: person,
		Description:       description,
		DueDate:           dateOnly(in.DueDate),
		Status:            models.ActionPending,
		FollowUpEvidence:  evidence,
	})
	return id, nil
}

// attachment drops empty uploads and enforces the size cap.
func (s *Store) attachment(entity, field string, a *models.Attachment) (*models.Attachment, error) {
	if a == nil || (a.Name == "" && len(a.Data) == 0) {
		return nil, nil
	}
	if s.maxAttachment > 0 && int64(len(a.Data)) > s.maxAttachment {
		return nil, &ValidationError{
			Entity: entity,
			Fields: []string{field},
			Reason: fmt.Sprintf("%s exceeds %d bytes", field, s.maxAttachment),
		}
	}
	return a.Clone(), nil
}

func cleanList(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// dateOnly keeps the calendar day of t and drops the clock part.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func engagementIDs(list []models.Engagement) []string {
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return ids
}

func findingIDs(list []models.Finding) []string {
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return ids
}

func actionIDs(list []models.CorrectiveAction) []string {
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return ids
}
