package model

import "database/sql/driver"

// RequestStatus is the lifecycle state of a budget request.
type RequestStatus string

const (
	StatusDraft             RequestStatus = "draft"
	StatusSubmitted         RequestStatus = "submitted"
	StatusUnderReview       RequestStatus = "under_review"
	StatusApproved          RequestStatus = "approved"
	StatusRejected          RequestStatus = "rejected"
	StatusRevisionRequested RequestStatus = "revision_requested"
)

// StatusSet is a named class of statuses.
type StatusSet map[RequestStatus]struct{}

// Contains reports whether status belongs to the set.
func (s StatusSet) Contains(status RequestStatus) bool {
	_, ok := s[status]
	return ok
}

func newStatusSet(statuses ...RequestStatus) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

var (
	// EditableStatuses permit item and file mutation.
	EditableStatuses = newStatusSet(StatusDraft, StatusRevisionRequested)
	// LockedStatuses forbid item and file mutation.
	LockedStatuses = newStatusSet(StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected)
)

// RequestStatuses lists every status in lifecycle order.
var RequestStatuses = []RequestStatus{
	StatusDraft, StatusSubmitted, StatusUnderReview,
	StatusApproved, StatusRejected, StatusRevisionRequested,
}

// IsValid reports whether s is a known status.
func (s RequestStatus) IsValid() bool {
	return EditableStatuses.Contains(s) || LockedStatuses.Contains(s)
}

// Scan implements sql.Scanner interface
func (s *RequestStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = RequestStatus(v)
	case []byte:
		*s = RequestStatus(v)
	}
	return nil
}

// Value implements driver.Valuer interface
func (s RequestStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// PriorityLevel ranks a request.
type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "low"
	PriorityMedium   PriorityLevel = "medium"
	PriorityHigh     PriorityLevel = "high"
	PriorityCritical PriorityLevel = "critical"
)

// ItemCategory classifies a line item.
type ItemCategory string

const (
	CategoryPersonnel      ItemCategory = "personnel"
	CategoryEquipment      ItemCategory = "equipment"
	CategorySupplies       ItemCategory = "supplies"
	CategoryServices       ItemCategory = "services"
	CategoryTravel         ItemCategory = "travel"
	CategoryTraining       ItemCategory = "training"
	CategoryInfrastructure ItemCategory = "infrastructure"
	CategoryOther          ItemCategory = "other"
)
