package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
)

type JobItemRepository interface {
	Create(ctx context.Context, item *entity.JobItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobItem, error)
	// FindByIDWithParent loads the item and, for a sub-category, its parent.
	FindByIDWithParent(ctx context.Context, id uuid.UUID) (*entity.JobItem, error)
	// ExistsInScope reports whether an item under parentID (nil for the root)
	// already uses name or slug.
	ExistsInScope(ctx context.Context, parentID *uuid.UUID, name, slug string) (bool, error)
	ListActive(ctx context.Context) ([]*entity.JobItem, error)
}
