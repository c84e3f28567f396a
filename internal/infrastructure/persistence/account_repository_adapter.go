package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

var errPhoneTaken = apperror.New(apperror.ErrCodeConflict, "account already exists with this phone")

type accountRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Email        *string   `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Location     *string   `db:"location"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *accountRow) toAccount() entity.Account {
	return entity.Account{
		ID:           r.ID,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Location:     r.Location,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const accountColumns = `id, name, phone, email, password_hash, location, created_at, updated_at`

type CustomerRepositoryAdapter struct {
	db dbtx
}

func NewCustomerRepositoryAdapter(db dbtx) *CustomerRepositoryAdapter {
	return &CustomerRepositoryAdapter{db: db}
}

func (r *CustomerRepositoryAdapter) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, password_hash, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.Email, c.PasswordHash, c.Location, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errPhoneTaken
		}
		return dbError(err, "failed to create customer")
	}
	return nil
}

func (r *CustomerRepositoryAdapter) find(ctx context.Context, where string, arg interface{}) (*entity.Customer, error) {
	var row accountRow
	if err := sqlxGet(ctx, r.db, &row, `SELECT `+accountColumns+` FROM customers WHERE `+where, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrCustomerNotFound
		}
		return nil, dbError(err, "failed to get customer")
	}
	return &entity.Customer{Account: row.toAccount()}, nil
}

func (r *CustomerRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.find(ctx, "id = $1", id)
}

func (r *CustomerRepositoryAdapter) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	return r.find(ctx, "phone = $1", phone)
}

type VendorRepositoryAdapter struct {
	db dbtx
}

func NewVendorRepositoryAdapter(db dbtx) *VendorRepositoryAdapter {
	return &VendorRepositoryAdapter{db: db}
}

type vendorRow struct {
	accountRow
	VendorType            string `db:"vendor_type"`
	PreferredWorkLocation string `db:"preferred_work_location"`
}

func (r *VendorRepositoryAdapter) Create(ctx context.Context, v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, phone, email, password_hash, location,
			vendor_type, preferred_work_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Phone, v.Email, v.PasswordHash, v.Location,
		string(v.VendorType), string(v.PreferredWorkLocation), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errPhoneTaken
		}
		return dbError(err, "failed to create vendor")
	}
	return nil
}

func (r *VendorRepositoryAdapter) find(ctx context.Context, where string, arg interface{}) (*entity.Vendor, error) {
	var row vendorRow
	query := `SELECT ` + accountColumns + `, vendor_type, preferred_work_location FROM vendors WHERE ` + where
	if err := sqlxGet(ctx, r.db, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrVendorNotFound
		}
		return nil, dbError(err, "failed to get vendor")
	}
	return &entity.Vendor{
		Account:               row.toAccount(),
		VendorType:            entity.VendorType(row.VendorType),
		PreferredWorkLocation: entity.WorkLocation(row.PreferredWorkLocation),
	}, nil
}

func (r *VendorRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return r.find(ctx, "id = $1", id)
}

func (r *VendorRepositoryAdapter) FindByPhone(ctx context.Context, phone string) (*entity.Vendor, error) {
	return r.find(ctx, "phone = $1", phone)
}
