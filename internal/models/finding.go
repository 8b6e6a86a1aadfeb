package models

type FindingCategory string
type RiskLevel string
type FindingStatus string

const (
	CategoryMajor       FindingCategory = "Major"
	CategoryMinor       FindingCategory = "Minor"
	CategoryObservation FindingCategory = "Observation"
	CategoryOFI         FindingCategory = "OFI"

	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"

	FindingOpen   FindingStatus = "Open"
	FindingClosed FindingStatus = "Closed"
)

var FindingCategories = []FindingCategory{CategoryMajor, CategoryMinor, CategoryObservation, CategoryOFI}
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}
var FindingStatuses = []FindingStatus{FindingOpen, FindingClosed}

func (c FindingCategory) Valid() bool {
	for _, v := range FindingCategories {
		if v == c {
			return true
		}
	}
	return false
}

func (r RiskLevel) Valid() bool {
	for _, v := range RiskLevels {
		if v == r {
			return true
		}
	}
	return false
}

func (s FindingStatus) Valid() bool {
	for _, v := range FindingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Finding struct {
	ID             string
	EngagementID   string // ссылка на Engagement.ID
	Category       FindingCategory
	Description    string
	Evidence       *Attachment
	RiskLevel      RiskLevel
	RootCause      string
	Recommendation string
	Status         FindingStatus
}
