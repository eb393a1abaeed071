// Package policy decides which mutations a budget request's status allows.
package policy

import "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"

// StatusPolicy gates mutations by the persisted request status.
type StatusPolicy interface {
	// CanMutateChildren reports whether items and files may be created,
	// updated or deleted.
	CanMutateChildren(status model.RequestStatus) bool
	// CanUpdateMetadata reports whether request fields other than the
	// reviewer decision may change.
	CanUpdateMetadata(status model.RequestStatus) bool
}

type setPolicy struct {
	children model.StatusSet
	metadata model.StatusSet
}

func (p setPolicy) CanMutateChildren(status model.RequestStatus) bool {
	return p.children.Contains(status)
}

func (p setPolicy) CanUpdateMetadata(status model.RequestStatus) bool {
	if p.metadata == nil {
		return true
	}
	return p.metadata.Contains(status)
}

// Default allows child mutation only in editable statuses and metadata
// updates in every status.
func Default() StatusPolicy {
	return setPolicy{children: model.EditableStatuses}
}

// Strict also limits metadata updates to editable statuses.
func Strict() StatusPolicy {
	return setPolicy{children: model.EditableStatuses, metadata: model.EditableStatuses}
}

// New returns Strict when strictMetadata is set, Default otherwise.
func New(strictMetadata bool) StatusPolicy {
	if strictMetadata {
		return Strict()
	}
	return Default()
}
