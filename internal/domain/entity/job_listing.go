package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

// HH:mm or HH:mm:ss
var scheduledTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// JobListing is a customer's posted unit of work.
type JobListing struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	JobItemID        uuid.UUID
	Details          *string
	City             *string
	Pincode          *string
	ScheduledDate    *time.Time
	ScheduledTime    *string
	Status           valueobject.JobStatus
	AssignedVendorID *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Task is filled when the listing was loaded with its job item.
	Task *JobItem
}

type JobDetails struct {
	Details       *string
	City          *string
	Pincode       *string
	ScheduledDate *time.Time
	ScheduledTime *string
}

// NewJobListing builds an open listing. task must already be resolved as a
// sub-category.
func NewJobListing(customerID uuid.UUID, task *JobItem, d JobDetails) (*JobListing, error) {
	if customerID == uuid.Nil {
		return nil, apperror.ErrUnauthorized
	}
	if task == nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "jobTaskId is required")
	}
	if err := task.EnsureTask(); err != nil {
		return nil, err
	}
	if d.ScheduledTime != nil && !scheduledTimePattern.MatchString(*d.ScheduledTime) {
		return nil, apperror.New(apperror.ErrCodeValidation, "scheduled_time must be HH:mm or HH:mm:ss")
	}

	var date *time.Time
	if d.ScheduledDate != nil {
		day := d.ScheduledDate.UTC().Truncate(24 * time.Hour)
		date = &day
	}

	now := time.Now()
	return &JobListing{
		ID:            NewID(),
		CustomerID:    customerID,
		JobItemID:     task.ID,
		Details:       d.Details,
		City:          d.City,
		Pincode:       d.Pincode,
		ScheduledDate: date,
		ScheduledTime: d.ScheduledTime,
		Status:        valueobject.JobStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
		Task:          task,
	}, nil
}

func (j *JobListing) IsOwnedBy(customerID uuid.UUID) bool {
	return j.CustomerID == customerID
}

func (j *JobListing) IsAssignedTo(vendorID uuid.UUID) bool {
	return j.AssignedVendorID != nil && *j.AssignedVendorID == vendorID
}

func (j *JobListing) AcceptsBids() bool {
	return j.Status == valueobject.JobStatusOpen
}

// AssignTo records the winning vendor. Only an open job can be assigned.
func (j *JobListing) AssignTo(vendorID uuid.UUID) error {
	if !j.Status.CanTransitionTo(valueobject.JobStatusAssigned) {
		return apperror.ErrJobNotOpen
	}
	j.Status = valueobject.JobStatusAssigned
	j.AssignedVendorID = &vendorID
	j.UpdatedAt = time.Now()
	return nil
}

func (j *JobListing) StartWork(vendorID uuid.UUID) error {
	if !j.IsAssignedTo(vendorID) {
		return apperror.New(apperror.ErrCodeForbidden, "only the assigned vendor can start this job")
	}
	if !j.Status.CanTransitionTo(valueobject.JobStatusInProgress) {
		return apperror.Newf(apperror.ErrCodeConflict, "cannot start a job in status %s", j.Status)
	}
	j.Status = valueobject.JobStatusInProgress
	j.UpdatedAt = time.Now()
	return nil
}

func (j *JobListing) Complete(vendorID uuid.UUID) error {
	if !j.IsAssignedTo(vendorID) {
		return apperror.New(apperror.ErrCodeForbidden, "only the assigned vendor can complete this job")
	}
	if !j.Status.CanTransitionTo(valueobject.JobStatusCompleted) {
		return apperror.Newf(apperror.ErrCodeConflict, "cannot complete a job in status %s", j.Status)
	}
	j.Status = valueobject.JobStatusCompleted
	j.UpdatedAt = time.Now()
	return nil
}

// Cancel closes an open or assigned job and drops the assignment.
func (j *JobListing) Cancel() error {
	if !j.Status.CanTransitionTo(valueobject.JobStatusCancelled) {
		return apperror.Newf(apperror.ErrCodeConflict, "cannot cancel a job in status %s", j.Status)
	}
	j.Status = valueobject.JobStatusCancelled
	j.AssignedVendorID = nil
	j.UpdatedAt = time.Now()
	return nil
}

// CheckInvariant verifies that a vendor is recorded exactly for the statuses
// that require one.
func (j *JobListing) CheckInvariant() error {
	if j.Status.HasVendor() != (j.AssignedVendorID != nil) {
		return apperror.Newf(apperror.ErrCodeInternal, "job %s: assigned vendor does not match status %s", j.ID, j.Status)
	}
	return nil
}
