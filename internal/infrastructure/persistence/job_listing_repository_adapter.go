package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type JobListingRepositoryAdapter struct {
	db dbtx
}

func NewJobListingRepositoryAdapter(db dbtx) *JobListingRepositoryAdapter {
	return &JobListingRepositoryAdapter{db: db}
}

// Jobs are always read with their task and the task's category.
const jobSelect = `
	SELECT j.id, j.customer_id, j.job_item_id, j.details, j.city, j.pincode,
	       j.scheduled_date, j.scheduled_time::text AS scheduled_time, j.status,
	       j.assigned_vendor_id, j.created_at, j.updated_at,
	       t.name AS task_name, t.slug AS task_slug, t.kind AS task_kind,
	       t.parent_id AS task_parent_id, t.is_active AS task_is_active, t.created_at AS task_created_at,
	       c.name AS category_name, c.slug AS category_slug, c.kind AS category_kind,
	       c.is_active AS category_is_active, c.created_at AS category_created_at
	FROM job_listings j
	JOIN job_items t ON t.id = j.job_item_id
	LEFT JOIN job_items c ON c.id = t.parent_id
`

func (r *JobListingRepositoryAdapter) Create(ctx context.Context, job *entity.JobListing) error {
	query := `
		INSERT INTO job_listings (id, customer_id, job_item_id, details, city, pincode,
			scheduled_date, scheduled_time, status, assigned_vendor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.CustomerID, job.JobItemID, job.Details, job.City, job.Pincode,
		job.ScheduledDate, job.ScheduledTime, string(job.Status), job.AssignedVendorID,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "failed to create job")
	}
	return nil
}

func (r *JobListingRepositoryAdapter) Transition(ctx context.Context, job *entity.JobListing, from valueobject.JobStatus) error {
	if err := job.CheckInvariant(); err != nil {
		return err
	}
	query := `
		UPDATE job_listings SET status = $2, assigned_vendor_id = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		job.ID, string(job.Status), job.AssignedVendorID, job.UpdatedAt, string(from),
	)
	if err != nil {
		return dbError(err, "failed to update job status")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbError(err, "failed to update job status")
	}
	if n == 0 {
		var exists bool
		if err := sqlxGet(ctx, r.db, &exists, `SELECT EXISTS (SELECT 1 FROM job_listings WHERE id = $1)`, job.ID); err != nil {
			return dbError(err, "failed to update job status")
		}
		if !exists {
			return apperror.ErrJobNotFound
		}
		return repository.StaleTransitionError(from)
	}
	return nil
}

func (r *JobListingRepositoryAdapter) findOne(ctx context.Context, query string, args ...interface{}) (*entity.JobListing, error) {
	var row jobRow
	if err := sqlxGet(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrJobNotFound
		}
		return nil, dbError(err, "failed to get job")
	}
	return row.toEntity(), nil
}

func (r *JobListingRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobListing, error) {
	return r.findOne(ctx, jobSelect+` WHERE j.id = $1`, id)
}

// FindByIDForUpdate locks only the job row; the catalog rows stay unlocked.
func (r *JobListingRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.JobListing, error) {
	return r.findOne(ctx, jobSelect+` WHERE j.id = $1 FOR UPDATE OF j`, id)
}

func (r *JobListingRepositoryAdapter) FindByIDAndCustomer(ctx context.Context, id, customerID uuid.UUID) (*entity.JobListing, error) {
	return r.findOne(ctx, jobSelect+` WHERE j.id = $1 AND j.customer_id = $2`, id, customerID)
}

func (r *JobListingRepositoryAdapter) List(ctx context.Context, filter repository.JobFilter) ([]*entity.JobListing, int, error) {
	where := ` WHERE j.customer_id = $1`
	args := []interface{}{filter.CustomerID}
	argNum := 2

	if filter.Status != nil {
		where += fmt.Sprintf(" AND j.status = $%d", argNum)
		args = append(args, string(*filter.Status))
		argNum++
	}

	var total int
	if err := sqlxGet(ctx, r.db, &total, `SELECT COUNT(*) FROM job_listings j`+where, args...); err != nil {
		return nil, 0, dbError(err, "failed to count jobs")
	}

	order := "DESC"
	if filter.Sort == repository.JobSortOldest {
		order = "ASC"
	}
	query := fmt.Sprintf(`%s%s ORDER BY j.id %s LIMIT $%d OFFSET $%d`, jobSelect, where, order, argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	var rows []jobRow
	if err := sqlxSelect(ctx, r.db, &rows, query, args...); err != nil {
		return nil, 0, dbError(err, "failed to list jobs")
	}

	jobs := make([]*entity.JobListing, len(rows))
	for i := range rows {
		jobs[i] = rows[i].toEntity()
	}
	return jobs, total, nil
}

func (r *JobListingRepositoryAdapter) ListOpen(ctx context.Context) ([]repository.OpenJobView, error) {
	query := `
		SELECT j.id, t.name AS task_name, COALESCE(c.name, '') AS category_name,
		       u.id AS owner_id, u.name AS owner_name, u.phone AS owner_phone, u.email AS owner_email,
		       j.details, j.city, j.pincode, j.scheduled_date,
		       j.scheduled_time::text AS scheduled_time, j.created_at
		FROM job_listings j
		JOIN job_items t ON t.id = j.job_item_id
		LEFT JOIN job_items c ON c.id = t.parent_id
		JOIN customers u ON u.id = j.customer_id
		WHERE j.status = 'open'
		ORDER BY j.id DESC
	`
	var rows []openJobRow
	if err := sqlxSelect(ctx, r.db, &rows, query); err != nil {
		return nil, dbError(err, "failed to list open jobs")
	}

	views := make([]repository.OpenJobView, len(rows))
	for i, row := range rows {
		views[i] = repository.OpenJobView{
			ID:           row.ID,
			TaskName:     row.TaskName,
			CategoryName: row.CategoryName,
			Owner: entity.PublicProfile{
				ID:    row.OwnerID,
				Name:  row.OwnerName,
				Phone: row.OwnerPhone,
				Email: row.OwnerEmail,
			},
			Details:       row.Details,
			City:          row.City,
			Pincode:       row.Pincode,
			ScheduledDate: row.ScheduledDate,
			ScheduledTime: row.ScheduledTime,
			CreatedAt:     row.CreatedAt,
		}
	}
	return views, nil
}

type jobRow struct {
	ID               uuid.UUID  `db:"id"`
	CustomerID       uuid.UUID  `db:"customer_id"`
	JobItemID        uuid.UUID  `db:"job_item_id"`
	Details          *string    `db:"details"`
	City             *string    `db:"city"`
	Pincode          *string    `db:"pincode"`
	ScheduledDate    *time.Time `db:"scheduled_date"`
	ScheduledTime    *string    `db:"scheduled_time"`
	Status           string     `db:"status"`
	AssignedVendorID *uuid.UUID `db:"assigned_vendor_id"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`

	TaskName      string     `db:"task_name"`
	TaskSlug      string     `db:"task_slug"`
	TaskKind      string     `db:"task_kind"`
	TaskParentID  *uuid.UUID `db:"task_parent_id"`
	TaskIsActive  bool       `db:"task_is_active"`
	TaskCreatedAt time.Time  `db:"task_created_at"`

	CategoryName      *string    `db:"category_name"`
	CategorySlug      *string    `db:"category_slug"`
	CategoryKind      *string    `db:"category_kind"`
	CategoryIsActive  *bool      `db:"category_is_active"`
	CategoryCreatedAt *time.Time `db:"category_created_at"`
}

func (r *jobRow) toEntity() *entity.JobListing {
	status, _ := valueobject.NewJobStatus(r.Status)
	task := &entity.JobItem{
		ID:        r.JobItemID,
		Name:      r.TaskName,
		Slug:      r.TaskSlug,
		Kind:      valueobject.JobItemKind(r.TaskKind),
		ParentID:  r.TaskParentID,
		IsActive:  r.TaskIsActive,
		CreatedAt: r.TaskCreatedAt,
	}
	if r.TaskParentID != nil && r.CategoryName != nil {
		task.Parent = &entity.JobItem{
			ID:        *r.TaskParentID,
			Name:      *r.CategoryName,
			Slug:      deref(r.CategorySlug),
			Kind:      valueobject.JobItemKind(deref(r.CategoryKind)),
			IsActive:  r.CategoryIsActive != nil && *r.CategoryIsActive,
			CreatedAt: derefTime(r.CategoryCreatedAt),
		}
	}

	return &entity.JobListing{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		JobItemID:        r.JobItemID,
		Details:          r.Details,
		City:             r.City,
		Pincode:          r.Pincode,
		ScheduledDate:    r.ScheduledDate,
		ScheduledTime:    r.ScheduledTime,
		Status:           status,
		AssignedVendorID: r.AssignedVendorID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Task:             task,
	}
}

type openJobRow struct {
	ID            uuid.UUID  `db:"id"`
	TaskName      string     `db:"task_name"`
	CategoryName  string     `db:"category_name"`
	OwnerID       uuid.UUID  `db:"owner_id"`
	OwnerName     string     `db:"owner_name"`
	OwnerPhone    string     `db:"owner_phone"`
	OwnerEmail    *string    `db:"owner_email"`
	Details       *string    `db:"details"`
	City          *string    `db:"city"`
	Pincode       *string    `db:"pincode"`
	ScheduledDate *time.Time `db:"scheduled_date"`
	ScheduledTime *string    `db:"scheduled_time"`
	CreatedAt     time.Time  `db:"created_at"`
}
