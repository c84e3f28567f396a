package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type BidRepositoryAdapter struct {
	db dbtx
}

func NewBidRepositoryAdapter(db dbtx) *BidRepositoryAdapter {
	return &BidRepositoryAdapter{db: db}
}

const bidColumns = `b.id, b.job_id, b.vendor_id, b.amount, b.message, b.status, b.created_at, b.updated_at`

func (r *BidRepositoryAdapter) Create(ctx context.Context, bid *entity.Bid) error {
	query := `
		INSERT INTO bids (id, job_id, vendor_id, amount, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		bid.ID, bid.JobID, bid.VendorID, bid.Amount.String(), bid.Message,
		string(bid.Status), bid.CreatedAt, bid.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.New(apperror.ErrCodeConflict, "vendor already bid on this job")
		}
		return dbError(err, "failed to create bid")
	}
	return nil
}

func (r *BidRepositoryAdapter) Update(ctx context.Context, bid *entity.Bid) error {
	query := `
		UPDATE bids SET amount = $2, message = $3, status = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		bid.ID, bid.Amount.String(), bid.Message, string(bid.Status), bid.UpdatedAt,
	)
	if err != nil {
		return dbError(err, "failed to update bid")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.ErrBidNotFound
	}
	return nil
}

func (r *BidRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	var row bidRow
	query := `SELECT ` + bidColumns + ` FROM bids b WHERE b.id = $1`
	if err := sqlxGet(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, dbError(err, "failed to get bid")
	}
	return row.toEntity(), nil
}

func (r *BidRepositoryAdapter) FindByJobAndVendor(ctx context.Context, jobID, vendorID uuid.UUID) (*entity.Bid, error) {
	var row bidRow
	query := `SELECT ` + bidColumns + ` FROM bids b WHERE b.job_id = $1 AND b.vendor_id = $2`
	if err := sqlxGet(ctx, r.db, &row, query, jobID, vendorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(err, "failed to get bid")
	}
	return row.toEntity(), nil
}

func (r *BidRepositoryAdapter) RejectOthers(ctx context.Context, jobID, winnerID uuid.UUID) (int64, error) {
	query := `
		UPDATE bids SET status = 'rejected', updated_at = NOW()
		WHERE job_id = $1 AND id <> $2 AND status IN ('pending', 'rejected')
	`
	res, err := r.db.ExecContext(ctx, query, jobID, winnerID)
	if err != nil {
		return 0, dbError(err, "failed to reject competing bids")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError(err, "failed to reject competing bids")
	}
	return n, nil
}

func (r *BidRepositoryAdapter) ListByJob(ctx context.Context, jobID uuid.UUID) ([]repository.BidView, error) {
	query := `
		SELECT ` + bidColumns + `,
		       v.name AS vendor_name, v.phone AS vendor_phone, v.email AS vendor_email
		FROM bids b
		JOIN vendors v ON v.id = b.vendor_id
		WHERE b.job_id = $1
		ORDER BY b.id DESC
	`
	var rows []bidWithVendorRow
	if err := sqlxSelect(ctx, r.db, &rows, query, jobID); err != nil {
		return nil, dbError(err, "failed to list bids")
	}

	views := make([]repository.BidView, len(rows))
	for i := range rows {
		views[i] = repository.BidView{
			Bid: rows[i].toEntity(),
			Vendor: entity.PublicProfile{
				ID:    rows[i].VendorID,
				Name:  rows[i].VendorName,
				Phone: rows[i].VendorPhone,
				Email: rows[i].VendorEmail,
			},
		}
	}
	return views, nil
}

func (r *BidRepositoryAdapter) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]repository.VendorBidView, error) {
	query := `
		SELECT ` + bidColumns + `,
		       j.status AS job_status, j.city AS job_city, t.name AS task_name
		FROM bids b
		JOIN job_listings j ON j.id = b.job_id
		JOIN job_items t ON t.id = j.job_item_id
		WHERE b.vendor_id = $1
		ORDER BY b.id DESC
	`
	var rows []bidWithJobRow
	if err := sqlxSelect(ctx, r.db, &rows, query, vendorID); err != nil {
		return nil, dbError(err, "failed to list bids")
	}

	views := make([]repository.VendorBidView, len(rows))
	for i := range rows {
		status, _ := valueobject.NewJobStatus(rows[i].JobStatus)
		views[i] = repository.VendorBidView{
			Bid:       rows[i].toEntity(),
			JobStatus: status,
			TaskName:  rows[i].TaskName,
			City:      rows[i].JobCity,
		}
	}
	return views, nil
}

type bidRow struct {
	ID        uuid.UUID       `db:"id"`
	JobID     uuid.UUID       `db:"job_id"`
	VendorID  uuid.UUID       `db:"vendor_id"`
	Amount    decimal.Decimal `db:"amount"`
	Message   *string         `db:"message"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r *bidRow) toEntity() *entity.Bid {
	status, _ := valueobject.NewBidStatus(r.Status)
	// The column type guarantees a valid amount.
	amount, _ := valueobject.AmountFromDecimal(r.Amount)
	return &entity.Bid{
		ID:        r.ID,
		JobID:     r.JobID,
		VendorID:  r.VendorID,
		Amount:    amount,
		Message:   r.Message,
		Status:    status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type bidWithVendorRow struct {
	bidRow
	VendorName  string  `db:"vendor_name"`
	VendorPhone string  `db:"vendor_phone"`
	VendorEmail *string `db:"vendor_email"`
}

type bidWithJobRow struct {
	bidRow
	JobStatus string  `db:"job_status"`
	JobCity   *string `db:"job_city"`
	TaskName  string  `db:"task_name"`
}
