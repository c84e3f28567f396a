package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type JobItemRepositoryAdapter struct {
	db dbtx
}

func NewJobItemRepositoryAdapter(db dbtx) *JobItemRepositoryAdapter {
	return &JobItemRepositoryAdapter{db: db}
}

const jobItemColumns = `id, name, slug, kind, parent_id, is_active, created_at`

func (r *JobItemRepositoryAdapter) Create(ctx context.Context, item *entity.JobItem) error {
	query := `
		INSERT INTO job_items (id, name, slug, kind, parent_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Slug, string(item.Kind), item.ParentID, item.IsActive, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrDuplicateJobItem
		}
		return dbError(err, "failed to create job item")
	}
	return nil
}

func (r *JobItemRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobItem, error) {
	var row jobItemRow
	query := `SELECT ` + jobItemColumns + ` FROM job_items WHERE id = $1`
	if err := sqlxGet(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrJobItemNotFound
		}
		return nil, dbError(err, "failed to get job item")
	}
	return row.toEntity(), nil
}

func (r *JobItemRepositoryAdapter) FindByIDWithParent(ctx context.Context, id uuid.UUID) (*entity.JobItem, error) {
	var row jobItemWithParentRow
	query := `
		SELECT i.id, i.name, i.slug, i.kind, i.parent_id, i.is_active, i.created_at,
		       p.name AS parent_name, p.slug AS parent_slug, p.kind AS parent_kind,
		       p.is_active AS parent_is_active, p.created_at AS parent_created_at
		FROM job_items i
		LEFT JOIN job_items p ON p.id = i.parent_id
		WHERE i.id = $1
	`
	if err := sqlxGet(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrJobItemNotFound
		}
		return nil, dbError(err, "failed to get job item")
	}
	return row.toEntity(), nil
}

func (r *JobItemRepositoryAdapter) ExistsInScope(ctx context.Context, parentID *uuid.UUID, name, slug string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM job_items
			WHERE parent_id IS NOT DISTINCT FROM $1
			  AND (lower(name) = lower($2) OR lower(slug) = lower($3))
		)
	`
	if err := sqlxGet(ctx, r.db, &exists, query, parentID, name, slug); err != nil {
		return false, dbError(err, "failed to check job item scope")
	}
	return exists, nil
}

func (r *JobItemRepositoryAdapter) ListActive(ctx context.Context) ([]*entity.JobItem, error) {
	var rows []jobItemRow
	query := `SELECT ` + jobItemColumns + ` FROM job_items WHERE is_active ORDER BY name`
	if err := sqlxSelect(ctx, r.db, &rows, query); err != nil {
		return nil, dbError(err, "failed to list job items")
	}
	items := make([]*entity.JobItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toEntity()
	}
	return items, nil
}

type jobItemRow struct {
	ID        uuid.UUID  `db:"id"`
	Name      string     `db:"name"`
	Slug      string     `db:"slug"`
	Kind      string     `db:"kind"`
	ParentID  *uuid.UUID `db:"parent_id"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
}

func (r *jobItemRow) toEntity() *entity.JobItem {
	return &entity.JobItem{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Kind:      valueobject.JobItemKind(r.Kind),
		ParentID:  r.ParentID,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

type jobItemWithParentRow struct {
	jobItemRow
	ParentName      *string    `db:"parent_name"`
	ParentSlug      *string    `db:"parent_slug"`
	ParentKind      *string    `db:"parent_kind"`
	ParentIsActive  *bool      `db:"parent_is_active"`
	ParentCreatedAt *time.Time `db:"parent_created_at"`
}

func (r *jobItemWithParentRow) toEntity() *entity.JobItem {
	item := r.jobItemRow.toEntity()
	if r.ParentID != nil && r.ParentName != nil {
		item.Parent = &entity.JobItem{
			ID:        *r.ParentID,
			Name:      *r.ParentName,
			Slug:      deref(r.ParentSlug),
			Kind:      valueobject.JobItemKind(deref(r.ParentKind)),
			IsActive:  r.ParentIsActive != nil && *r.ParentIsActive,
			CreatedAt: derefTime(r.ParentCreatedAt),
		}
	}
	return item
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
