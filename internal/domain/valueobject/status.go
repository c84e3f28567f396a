package valueobject

import "github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"

type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusOpen       JobStatus = "open"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:      {JobStatusOpen},
	JobStatusOpen:       {JobStatusAssigned, JobStatusCancelled},
	JobStatusAssigned:   {JobStatusInProgress, JobStatusCompleted, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusAssigned, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

func (s JobStatus) CanTransitionTo(newStatus JobStatus) bool {
	for _, status := range jobTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

// HasVendor reports whether a job in this status must carry an assigned vendor.
func (s JobStatus) HasVendor() bool {
	switch s {
	case JobStatusAssigned, JobStatusInProgress, JobStatusCompleted:
		return true
	}
	return false
}

func NewJobStatus(status string) (JobStatus, error) {
	s := JobStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "invalid job status")
	}
	return s, nil
}

type BidStatus string

const (
	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusWithdrawn BidStatus = "withdrawn"
)

func (s BidStatus) IsValid() bool {
	switch s {
	case BidStatusPending, BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn:
		return true
	}
	return false
}

// CanTransitionTo covers accept/reject/withdraw only. A re-bid is not a
// transition: it replaces the offer and always lands in pending.
func (s BidStatus) CanTransitionTo(newStatus BidStatus) bool {
	return s == BidStatusPending && newStatus != BidStatusPending && newStatus.IsValid()
}

func NewBidStatus(status string) (BidStatus, error) {
	s := BidStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "invalid bid status")
	}
	return s, nil
}

type JobItemKind string

const (
	JobItemKindCategory    JobItemKind = "category"
	JobItemKindSubCategory JobItemKind = "sub-category"
)

func (k JobItemKind) IsValid() bool {
	return k == JobItemKindCategory || k == JobItemKindSubCategory
}

func NewJobItemKind(kind string) (JobItemKind, error) {
	k := JobItemKind(kind)
	if !k.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "kind must be category or sub-category")
	}
	return k, nil
}
