package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type VendorType string

const (
	VendorTypeIndividual VendorType = "individual"
	VendorTypeCompany    VendorType = "company"
)

type WorkLocation string

const (
	WorkLocationInside  WorkLocation = "inside"
	WorkLocationOutside WorkLocation = "outside"
	WorkLocationBoth    WorkLocation = "both"
)

// Account holds the fields shared by customers and vendors.
type Account struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Email        *string
	PasswordHash string
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is what the other side of the marketplace may see.
type PublicProfile struct {
	ID    uuid.UUID
	Name  string
	Phone string
	Email *string
}

func (a *Account) Public() PublicProfile {
	return PublicProfile{ID: a.ID, Name: a.Name, Phone: a.Phone, Email: a.Email}
}

type Customer struct {
	Account
}

type Vendor struct {
	Account
	VendorType            VendorType
	PreferredWorkLocation WorkLocation
}

func newAccount(name, phone string, email *string, passwordHash string, location *string) (Account, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return Account{}, apperror.New(apperror.ErrCodeValidation, "name is required")
	}
	if phone == "" {
		return Account{}, apperror.New(apperror.ErrCodeValidation, "phone is required")
	}
	if passwordHash == "" {
		return Account{}, apperror.New(apperror.ErrCodeValidation, "password is required")
	}
	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		email = &normalized
	}

	now := time.Now()
	return Account{
		ID:           NewID(),
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: passwordHash,
		Location:     location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func NewCustomer(name, phone string, email *string, passwordHash string, location *string) (*Customer, error) {
	acc, err := newAccount(name, phone, email, passwordHash, location)
	if err != nil {
		return nil, err
	}
	return &Customer{Account: acc}, nil
}

func NewVendor(name, phone string, email *string, passwordHash string, location *string, vendorType VendorType, workLocation WorkLocation) (*Vendor, error) {
	acc, err := newAccount(name, phone, email, passwordHash, location)
	if err != nil {
		return nil, err
	}
	if vendorType == "" {
		vendorType = VendorTypeIndividual
	}
	if vendorType != VendorTypeIndividual && vendorType != VendorTypeCompany {
		return nil, apperror.New(apperror.ErrCodeValidation, "vendorType must be individual or company")
	}
	if workLocation == "" {
		workLocation = WorkLocationBoth
	}
	switch workLocation {
	case WorkLocationInside, WorkLocationOutside, WorkLocationBoth:
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "preferredWorkLocation must be inside, outside or both")
	}
	return &Vendor{Account: acc, VendorType: vendorType, PreferredWorkLocation: workLocation}, nil
}
