package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

const (
	MaxJobItemNameLength = 150
	MaxJobItemSlugLength = 180
	minJobItemTextLength = 2
)

// JobItem is a node of the two-level catalog: a category or a sub-category task.
type JobItem struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Kind      valueobject.JobItemKind
	ParentID  *uuid.UUID
	IsActive  bool
	CreatedAt time.Time

	// Parent is filled when the item was loaded with its parent.
	Parent *JobItem
}

func NewJobItem(name, slug string, kind valueobject.JobItemKind, parent *JobItem) (*JobItem, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	if n := utf8.RuneCountInString(name); n < minJobItemTextLength || n > MaxJobItemNameLength {
		return nil, apperror.Newf(apperror.ErrCodeValidation, "name must be %d-%d characters", minJobItemTextLength, MaxJobItemNameLength)
	}
	if n := utf8.RuneCountInString(slug); n < minJobItemTextLength || n > MaxJobItemSlugLength {
		return nil, apperror.Newf(apperror.ErrCodeValidation, "slug must be %d-%d characters", minJobItemTextLength, MaxJobItemSlugLength)
	}
	if !kind.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "kind must be category or sub-category")
	}

	item := &JobItem{
		ID:        NewID(),
		Name:      name,
		Slug:      slug,
		Kind:      kind,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	switch kind {
	case valueobject.JobItemKindCategory:
		if parent != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, "a category cannot have a parent")
		}
	case valueobject.JobItemKindSubCategory:
		if parent == nil {
			return nil, apperror.New(apperror.ErrCodeValidation, "parentId is required for a sub-category")
		}
		if parent.Kind != valueobject.JobItemKindCategory {
			return nil, apperror.New(apperror.ErrCodeValidation, "parentId must reference a category")
		}
		parentID := parent.ID
		item.ParentID = &parentID
		item.Parent = parent
	}

	return item, nil
}

// EnsureTask checks that the item can classify a job: a sub-category with a
// loaded parent category.
func (i *JobItem) EnsureTask() error {
	if i.Kind != valueobject.JobItemKindSubCategory {
		return apperror.ErrTaskNotSubCategory
	}
	if i.ParentID == nil || i.Parent == nil {
		return apperror.ErrTaskWithoutCategory
	}
	return nil
}

func (i *JobItem) IsCategory() bool {
	return i.Kind == valueobject.JobItemKindCategory
}

// CategoryName returns the parent's name for a loaded task, or "".
func (i *JobItem) CategoryName() string {
	if i.Parent == nil {
		return ""
	}
	return i.Parent.Name
}
