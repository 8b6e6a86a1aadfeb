package store

import (
	"fmt"

	"ams-app/internal/models"
)

// Status updates accept any value of the entity's enum at any time; there is
// no ordering between statuses. Unknown IDs yield *NotFoundError and leave
// every record unchanged.

func (s *Store) UpdateEngagementStatus(id string, status models.EngagementStatus) error {
	if !status.Valid() {
		return invalidStatus(EntityEngagement, string(status))
	}
	i := s.engagementIndex(id)
	if i < 0 {
		return &NotFoundError{Entity: EntityEngagement, ID: id}
	}
	s.engagements[i].Status = status
	return nil
}

func (s *Store) UpdateFindingStatus(id string, status models.FindingStatus) error {
	if !status.Valid() {
		return invalidStatus(EntityFinding, string(status))
	}
	i := s.findingIndex(id)
	if i < 0 {
		return &NotFoundError{Entity: EntityFinding, ID: id}
	}
	s.findings[i].Status = status
	return nil
}

func (s *Store) UpdateActionStatus(id string, status models.ActionStatus) error {
	if !status.Valid() {
		return invalidStatus(EntityAction, string(status))
	}
	i := s.actionIndex(id)
	if i < 0 {
		return &NotFoundError{Entity: EntityAction, ID: id}
	}
	s.actions[i].Status = status
	return nil
}

func invalidStatus(entity, status string) error {
	return &ValidationError{
		Entity: entity,
		Fields: []string{"status"},
		Reason: fmt.Sprintf("unknown status %q", status),
	}
}
