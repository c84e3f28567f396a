package job

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
)

// MarkAssigned moves an open job to assigned. It is only called by the bid
// engine inside the unit of work that accepts the winning bid.
func MarkAssigned(ctx context.Context, jobRepo repository.JobListingRepository, job *entity.JobListing, vendorID uuid.UUID) error {
	from := job.Status
	if err := job.AssignTo(vendorID); err != nil {
		return err
	}
	if err := jobRepo.Transition(ctx, job, from); err != nil {
		return err
	}
	logTransition(ctx, job, from)
	return nil
}

func logTransition(ctx context.Context, job *entity.JobListing, from valueobject.JobStatus) {
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"job_id": job.ID,
		"from":   from,
		"to":     job.Status,
	}).Info("job: status changed")
}

type StartWorkUseCase struct {
	jobRepo repository.JobListingRepository
}

func NewStartWorkUseCase(jobRepo repository.JobListingRepository) *StartWorkUseCase {
	return &StartWorkUseCase{jobRepo: jobRepo}
}

func (uc *StartWorkUseCase) Execute(ctx context.Context, jobID uuid.UUID) (*entity.JobListing, error) {
	vendor, err := authz.RequireVendor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	from := job.Status
	if err := job.StartWork(vendor.ID); err != nil {
		return nil, err
	}
	if err := uc.jobRepo.Transition(ctx, job, from); err != nil {
		return nil, err
	}
	logTransition(ctx, job, from)

	return job, nil
}

type MarkCompletedUseCase struct {
	jobRepo repository.JobListingRepository
}

func NewMarkCompletedUseCase(jobRepo repository.JobListingRepository) *MarkCompletedUseCase {
	return &MarkCompletedUseCase{jobRepo: jobRepo}
}

// Execute lets the assigned vendor close the job. A vendor that is not the
// assignee gets Forbidden even if the job is in a state that cannot complete.
func (uc *MarkCompletedUseCase) Execute(ctx context.Context, jobID uuid.UUID) (*entity.JobListing, error) {
	vendor, err := authz.RequireVendor(ctx)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	from := job.Status
	if err := job.Complete(vendor.ID); err != nil {
		return nil, err
	}
	if err := uc.jobRepo.Transition(ctx, job, from); err != nil {
		return nil, err
	}
	logTransition(ctx, job, from)

	return job, nil
}

type CancelJobUseCase struct {
	jobRepo repository.JobListingRepository
}

func NewCancelJobUseCase(jobRepo repository.JobListingRepository) *CancelJobUseCase {
	return &CancelJobUseCase{jobRepo: jobRepo}
}

// Execute cancels an open or assigned job of the caller. Bids are kept as
// they are.
func (uc *CancelJobUseCase) Execute(ctx context.Context, jobID uuid.UUID) (*entity.JobListing, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.FindByIDAndCustomer(ctx, jobID, customer.ID)
	if err != nil {
		return nil, err
	}

	from := job.Status
	if err := job.Cancel(); err != nil {
		return nil, err
	}
	if err := uc.jobRepo.Transition(ctx, job, from); err != nil {
		return nil, err
	}
	logTransition(ctx, job, from)

	return job, nil
}
