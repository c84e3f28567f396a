package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type CreateItemInput struct {
	Name     string
	Slug     string
	Kind     string
	ParentID *uuid.UUID
}

type CreateItemUseCase struct {
	itemRepo repository.JobItemRepository
}

func NewCreateItemUseCase(itemRepo repository.JobItemRepository) *CreateItemUseCase {
	return &CreateItemUseCase{itemRepo: itemRepo}
}

func (uc *CreateItemUseCase) Execute(ctx context.Context, input CreateItemInput) (*entity.JobItem, error) {
	if _, err := authz.RequireCustomer(ctx); err != nil {
		return nil, err
	}

	kind, err := valueobject.NewJobItemKind(input.Kind)
	if err != nil {
		return nil, err
	}

	var parent *entity.JobItem
	if input.ParentID != nil {
		parent, err = uc.itemRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.New(apperror.ErrCodeValidation, "Invalid parentId")
			}
			return nil, err
		}
	}

	item, err := entity.NewJobItem(input.Name, input.Slug, kind, parent)
	if err != nil {
		return nil, err
	}

	taken, err := uc.itemRepo.ExistsInScope(ctx, item.ParentID, item.Name, item.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.ErrDuplicateJobItem
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"job_item_id": item.ID,
		"kind":        item.Kind,
	}).Info("catalog: job item created")

	return item, nil
}
