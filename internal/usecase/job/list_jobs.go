package job

import (
	"context"
	"math"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 20

	// MaxPage keeps (page-1)*pageSize within int.
	MaxPage = math.MaxInt / MaxPageSize
)

type ListJobsInput struct {
	Status   string
	Page     int
	PageSize int
	Sort     string
}

type JobsPage struct {
	Jobs       []*entity.JobListing
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

type ListJobsUseCase struct {
	jobRepo repository.JobListingRepository
}

func NewListJobsUseCase(jobRepo repository.JobListingRepository) *ListJobsUseCase {
	return &ListJobsUseCase{jobRepo: jobRepo}
}

// Execute lists the caller's own jobs. Page size is clamped to
// [1, MaxPageSize]; zero means DefaultPageSize. Page is clamped to
// [1, MaxPage]; pages past the end come back empty.
func (uc *ListJobsUseCase) Execute(ctx context.Context, input ListJobsInput) (*JobsPage, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}

	page, pageSize := normalizePaging(input.Page, input.PageSize)

	filter := repository.JobFilter{
		CustomerID: customer.ID,
		Sort:       repository.JobSortNewest,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}
	switch input.Sort {
	case "", string(repository.JobSortNewest):
	case string(repository.JobSortOldest):
		filter.Sort = repository.JobSortOldest
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "sort must be newest or oldest")
	}
	if input.Status != "" {
		status, err := valueobject.NewJobStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	jobs, total, err := uc.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &JobsPage{
		Jobs:       jobs,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func normalizePaging(page, pageSize int) (int, int) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize < 1:
		pageSize = 1
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}
