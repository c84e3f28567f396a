package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
)

// TaskResolver loads a sub-category a job can reference.
type TaskResolver interface {
	Execute(ctx context.Context, taskID uuid.UUID) (*entity.JobItem, error)
}

type CreateJobInput struct {
	TaskID        uuid.UUID
	Details       *string
	City          *string
	Pincode       *string
	ScheduledDate *time.Time
	ScheduledTime *string
}

type CreateJobUseCase struct {
	jobRepo repository.JobListingRepository
	tasks   TaskResolver
}

func NewCreateJobUseCase(jobRepo repository.JobListingRepository, tasks TaskResolver) *CreateJobUseCase {
	return &CreateJobUseCase{jobRepo: jobRepo, tasks: tasks}
}

func (uc *CreateJobUseCase) Execute(ctx context.Context, input CreateJobInput) (*entity.JobListing, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}

	task, err := uc.tasks.Execute(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	job, err := entity.NewJobListing(customer.ID, task, entity.JobDetails{
		Details:       input.Details,
		City:          input.City,
		Pincode:       input.Pincode,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"job_id":      job.ID,
		"customer_id": customer.ID,
		"task":        task.Name,
	}).Info("job: created")

	return job, nil
}
