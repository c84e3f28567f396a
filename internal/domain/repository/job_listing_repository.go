package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type JobListingRepository interface {
	Create(ctx context.Context, job *entity.JobListing) error
	// Transition persists status and assignment changes of job, provided the
	// stored status is still from. Otherwise it returns a ConflictError.
	Transition(ctx context.Context, job *entity.JobListing, from valueobject.JobStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobListing, error)
	// FindByIDForUpdate is FindByID plus a row lock held until the surrounding
	// unit of work ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.JobListing, error)
	FindByIDAndCustomer(ctx context.Context, id, customerID uuid.UUID) (*entity.JobListing, error)
	List(ctx context.Context, filter JobFilter) ([]*entity.JobListing, int, error)
	ListOpen(ctx context.Context) ([]OpenJobView, error)
}

type JobSort string

const (
	JobSortNewest JobSort = "newest"
	JobSortOldest JobSort = "oldest"
)

type JobFilter struct {
	CustomerID uuid.UUID
	Status     *valueobject.JobStatus
	Sort       JobSort
	Limit      int
	Offset     int
}

// OpenJobView is the vendor-facing projection of an open job.
type OpenJobView struct {
	ID            uuid.UUID
	TaskName      string
	CategoryName  string
	Owner         entity.PublicProfile
	Details       *string
	City          *string
	Pincode       *string
	ScheduledDate *time.Time
	ScheduledTime *string
	CreatedAt     time.Time
}

// StaleTransitionError is returned by Transition when the stored status no
// longer matches the expected one.
func StaleTransitionError(from valueobject.JobStatus) error {
	if from == valueobject.JobStatusOpen {
		return apperror.ErrJobNotOpen
	}
	return apperror.Newf(apperror.ErrCodeConflict, "job is no longer %s", from)
}
