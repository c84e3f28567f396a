package job

import (
	"context"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
)

type ListOpenJobsUseCase struct {
	jobRepo repository.JobListingRepository
}

func NewListOpenJobsUseCase(jobRepo repository.JobListingRepository) *ListOpenJobsUseCase {
	return &ListOpenJobsUseCase{jobRepo: jobRepo}
}

func (uc *ListOpenJobsUseCase) Execute(ctx context.Context) ([]repository.OpenJobView, error) {
	if _, err := authz.RequireVendor(ctx); err != nil {
		return nil, err
	}
	return uc.jobRepo.ListOpen(ctx)
}
