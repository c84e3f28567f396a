package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

var errPhoneTaken = apperror.New(apperror.ErrCodeConflict, "phone is already registered")

type customerRepo struct {
	run access
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.run(func(t *tables) error {
		for _, existing := range t.customers {
			if existing.Phone == c.Phone {
				return errPhoneTaken
			}
		}
		t.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.run(func(t *tables) error {
		c, ok := t.customers[id]
		if !ok {
			return apperror.ErrCustomerNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *customerRepo) FindByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.run(func(t *tables) error {
		for _, c := range t.customers {
			if c.Phone == phone {
				cp := c
				out = &cp
				return nil
			}
		}
		return apperror.ErrCustomerNotFound
	})
	return out, err
}

type vendorRepo struct {
	run access
}

func (r *vendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	return r.run(func(t *tables) error {
		for _, existing := range t.vendors {
			if existing.Phone == v.Phone {
				return errPhoneTaken
			}
		}
		t.vendors[v.ID] = *v
		return nil
	})
}

func (r *vendorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vendor, error) {
	var out *entity.Vendor
	err := r.run(func(t *tables) error {
		v, ok := t.vendors[id]
		if !ok {
			return apperror.ErrVendorNotFound
		}
		out = &v
		return nil
	})
	return out, err
}

func (r *vendorRepo) FindByPhone(_ context.Context, phone string) (*entity.Vendor, error) {
	var out *entity.Vendor
	err := r.run(func(t *tables) error {
		for _, v := range t.vendors {
			if v.Phone == phone {
				cp := v
				out = &cp
				return nil
			}
		}
		return apperror.ErrVendorNotFound
	})
	return out, err
}
