package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

// ResolveTaskUseCase loads a job item that a job may reference: a
// sub-category together with its parent category.
type ResolveTaskUseCase struct {
	itemRepo repository.JobItemRepository
}

func NewResolveTaskUseCase(itemRepo repository.JobItemRepository) *ResolveTaskUseCase {
	return &ResolveTaskUseCase{itemRepo: itemRepo}
}

func (uc *ResolveTaskUseCase) Execute(ctx context.Context, taskID uuid.UUID) (*entity.JobItem, error) {
	if taskID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "Invalid jobTaskId")
	}

	item, err := uc.itemRepo.FindByIDWithParent(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := item.EnsureTask(); err != nil {
		return nil, err
	}

	return item, nil
}
