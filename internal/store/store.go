// Package store holds the three record collections of one workspace:
// engagements, findings and corrective actions.
//
// A Store is not safe for concurrent use; the session layer serializes
// access to it.
package store

import (
	"time"

	"ams-app/internal/models"
)

const (
	EntityEngagement = "engagement"
	EntityFinding    = "finding"
	EntityAction     = "corrective_action"
)

type Store struct {
	engagements []models.Engagement
	findings    []models.Finding
	actions     []models.CorrectiveAction

	maxAttachment int64
	now           func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for overdue detection.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMaxAttachment caps attachment size in bytes; 0 disables the cap.
func WithMaxAttachment(n int64) Option {
	return func(s *Store) { s.maxAttachment = n }
}

func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Engagements() []models.Engagement {
	out := make([]models.Engagement, len(s.engagements))
	for i, e := range s.engagements {
		out[i] = cloneEngagement(e)
	}
	return out
}

func (s *Store) Findings() []models.Finding {
	out := make([]models.Finding, len(s.findings))
	for i, f := range s.findings {
		out[i] = cloneFinding(f)
	}
	return out
}

func (s *Store) Actions() []models.CorrectiveAction {
	out := make([]models.CorrectiveAction, len(s.actions))
	for i, a := range s.actions {
		out[i] = cloneAction(a)
	}
	return out
}

func (s *Store) Engagement(id string) (models.Engagement, error) {
	i := s.engagementIndex(id)
	if i < 0 {
		return models.Engagement{}, &NotFoundError{Entity: EntityEngagement, ID: id}
	}
	return cloneEngagement(s.engagements[i]), nil
}

func (s *Store) Finding(id string) (models.Finding, error) {
	i := s.findingIndex(id)
	if i < 0 {
		return models.Finding{}, &NotFoundError{Entity: EntityFinding, ID: id}
	}
	return cloneFinding(s.findings[i]), nil
}

func (s *Store) Action(id string) (models.CorrectiveAction, error) {
	i := s.actionIndex(id)
	if i < 0 {
		return models.CorrectiveAction{}, &NotFoundError{Entity: EntityAction, ID: id}
	}
	return cloneAction(s.actions[i]), nil
}

func (s *Store) engagementIndex(id string) int {
	for i := range s.engagements {
		if s.engagements[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findingIndex(id string) int {
	for i := range s.findings {
		if s.findings[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) actionIndex(id string) int {
	for i := range s.actions {
		if s.actions[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneEngagement(e models.Engagement) models.Engagement {
	e.Auditors = append([]string(nil), e.Auditors...)
	e.Auditees = append([]string(nil), e.Auditees...)
	e.Report = e.Report.Clone()
	return e
}

func cloneFinding(f models.Finding) models.Finding {
	f.Evidence = f.Evidence.Clone()
	return f
}

func cloneAction(a models.CorrectiveAction) models.CorrectiveAction {
	a.FollowUpEvidence = a.FollowUpEvidence.Clone()
	return a
}
