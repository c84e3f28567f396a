package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type jobItemRepo struct {
	run access
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func scopeTaken(t *tables, parentID *uuid.UUID, name, slug string) bool {
	for _, it := range t.items {
		if !sameParent(it.ParentID, parentID) {
			continue
		}
		if strings.EqualFold(it.Name, name) || strings.EqualFold(it.Slug, slug) {
			return true
		}
	}
	return false
}

func (r *jobItemRepo) Create(_ context.Context, item *entity.JobItem) error {
	return r.run(func(t *tables) error {
		if _, exists := t.items[item.ID]; exists {
			return apperror.New(apperror.ErrCodeConflict, "job item already exists")
		}
		if scopeTaken(t, item.ParentID, item.Name, item.Slug) {
			return apperror.ErrDuplicateJobItem
		}
		cp := *item
		cp.Parent = nil
		t.items[item.ID] = cp
		return nil
	})
}

func (r *jobItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.JobItem, error) {
	var out *entity.JobItem
	err := r.run(func(t *tables) error {
		it, ok := t.items[id]
		if !ok {
			return apperror.ErrJobItemNotFound
		}
		out = &it
		return nil
	})
	return out, err
}

func (r *jobItemRepo) FindByIDWithParent(_ context.Context, id uuid.UUID) (*entity.JobItem, error) {
	var out *entity.JobItem
	err := r.run(func(t *tables) error {
		it, ok := t.items[id]
		if !ok {
			return apperror.ErrJobItemNotFound
		}
		it.Parent = loadParent(t, &it)
		out = &it
		return nil
	})
	return out, err
}

func loadParent(t *tables, it *entity.JobItem) *entity.JobItem {
	if it.ParentID == nil {
		return nil
	}
	parent, ok := t.items[*it.ParentID]
	if !ok {
		return nil
	}
	return &parent
}

func (r *jobItemRepo) ExistsInScope(_ context.Context, parentID *uuid.UUID, name, slug string) (bool, error) {
	var taken bool
	err := r.run(func(t *tables) error {
		taken = scopeTaken(t, parentID, name, slug)
		return nil
	})
	return taken, err
}

func (r *jobItemRepo) ListActive(_ context.Context) ([]*entity.JobItem, error) {
	var out []*entity.JobItem
	err := r.run(func(t *tables) error {
		for _, it := range t.items {
			if !it.IsActive {
				continue
			}
			cp := it
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out, err
}
