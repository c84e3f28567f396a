package bid

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
)

type ListJobBidsUseCase struct {
	jobRepo repository.JobListingRepository
	bidRepo repository.BidRepository
}

func NewListJobBidsUseCase(jobRepo repository.JobListingRepository, bidRepo repository.BidRepository) *ListJobBidsUseCase {
	return &ListJobBidsUseCase{jobRepo: jobRepo, bidRepo: bidRepo}
}

func (uc *ListJobBidsUseCase) Execute(ctx context.Context, jobID uuid.UUID) ([]repository.BidView, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authz.EnsureOwner(customer, job.CustomerID); err != nil {
		return nil, err
	}

	return uc.bidRepo.ListByJob(ctx, job.ID)
}

type ListMyBidsUseCase struct {
	bidRepo repository.BidRepository
}

func NewListMyBidsUseCase(bidRepo repository.BidRepository) *ListMyBidsUseCase {
	return &ListMyBidsUseCase{bidRepo: bidRepo}
}

func (uc *ListMyBidsUseCase) Execute(ctx context.Context) ([]repository.VendorBidView, error) {
	vendor, err := authz.RequireVendor(ctx)
	if err != nil {
		return nil, err
	}
	return uc.bidRepo.ListByVendor(ctx, vendor.ID)
}
