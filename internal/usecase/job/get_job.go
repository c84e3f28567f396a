package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
)

type GetJobUseCase struct {
	jobRepo repository.JobListingRepository
}

func NewGetJobUseCase(jobRepo repository.JobListingRepository) *GetJobUseCase {
	return &GetJobUseCase{jobRepo: jobRepo}
}

// Execute returns NotFound for jobs of other customers so their existence is
// not revealed.
func (uc *GetJobUseCase) Execute(ctx context.Context, jobID uuid.UUID) (*entity.JobListing, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return uc.jobRepo.FindByIDAndCustomer(ctx, jobID, customer.ID)
}
