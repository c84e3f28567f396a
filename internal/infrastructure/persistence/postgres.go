package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

const uniqueViolation = pq.ErrorCode("23505")

// dbtx is satisfied by both *sqlx.DB and *sqlx.Tx.
type dbtx interface {
	sqlx.ExtContext
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func dbError(err error, message string) error {
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

// UnitOfWork runs repository calls inside one read-committed transaction.
type UnitOfWork struct {
	db *sqlx.DB
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return WithTransaction(ctx, u.db, func(tx *sqlx.Tx) error {
		return fn(ctx, repository.Repositories{
			JobItems: NewJobItemRepositoryAdapter(tx),
			Jobs:     NewJobListingRepositoryAdapter(tx),
			Bids:     NewBidRepositoryAdapter(tx),
		})
	})
}

// WithTransaction commits when fn returns nil and rolls back on error or panic.
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dbError(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit transaction")
	}
	return nil
}

func sqlxGet(ctx context.Context, db dbtx, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, db, dest, query, args...)
}

func sqlxSelect(ctx context.Context, db dbtx, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, db, dest, query, args...)
}

var (
	_ repository.JobItemRepository    = (*JobItemRepositoryAdapter)(nil)
	_ repository.JobListingRepository = (*JobListingRepositoryAdapter)(nil)
	_ repository.BidRepository        = (*BidRepositoryAdapter)(nil)
	_ repository.CustomerRepository   = (*CustomerRepositoryAdapter)(nil)
	_ repository.VendorRepository     = (*VendorRepositoryAdapter)(nil)
)
