package account

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/jobmarket-backend/internal/validation"
)

type TokenIssuer interface {
	Issue(p authz.Principal) (string, time.Time, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) (bool, error)
}

var errPhoneRegistered = apperror.New(apperror.ErrCodeConflict, "account already exists with this phone")

type RegisterInput struct {
	Name     string
	Phone    string
	Email    *string
	Password string
	Location *string
	// vendors only
	VendorType            string
	PreferredWorkLocation string
}

type LoginInput struct {
	Phone    string
	Password string
}

type AuthResult struct {
	Principal   authz.Principal
	Profile     entity.PublicProfile
	AccessToken string
	ExpiresAt   time.Time
}

// normalize checks the credential rules and rewrites the phone into its
// stored form.
func (in *RegisterInput) normalize() error {
	phone, err := validation.NormalizePhone(in.Phone)
	if err != nil {
		return apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	in.Phone = phone

	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

type RegisterCustomerUseCase struct {
	customers repository.CustomerRepository
	hasher    PasswordHasher
}

func NewRegisterCustomerUseCase(customers repository.CustomerRepository, hasher PasswordHasher) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{customers: customers, hasher: hasher}
}

func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, input RegisterInput) (*entity.Customer, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if _, err := uc.customers.FindByPhone(ctx, input.Phone); err == nil {
		return nil, errPhoneRegistered
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	customer, err := entity.NewCustomer(input.Name, input.Phone, input.Email, hash, input.Location)
	if err != nil {
		return nil, err
	}
	if err := uc.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("customer_id", customer.ID).Info("account: customer registered")
	return customer, nil
}

type RegisterVendorUseCase struct {
	vendors repository.VendorRepository
	hasher  PasswordHasher
}

func NewRegisterVendorUseCase(vendors repository.VendorRepository, hasher PasswordHasher) *RegisterVendorUseCase {
	return &RegisterVendorUseCase{vendors: vendors, hasher: hasher}
}

func (uc *RegisterVendorUseCase) Execute(ctx context.Context, input RegisterInput) (*entity.Vendor, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if _, err := uc.vendors.FindByPhone(ctx, input.Phone); err == nil {
		return nil, errPhoneRegistered
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	vendor, err := entity.NewVendor(input.Name, input.Phone, input.Email, hash, input.Location,
		entity.VendorType(input.VendorType), entity.WorkLocation(input.PreferredWorkLocation))
	if err != nil {
		return nil, err
	}
	if err := uc.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("vendor_id", vendor.ID).Info("account: vendor registered")
	return vendor, nil
}

// LoginUseCase authenticates one role. Customers and vendors log in through
// separate instances, so the issued token carries the role of its path.
type LoginUseCase struct {
	role   authz.Role
	find   func(ctx context.Context, phone string) (*entity.Account, error)
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewCustomerLoginUseCase(customers repository.CustomerRepository, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{
		role: authz.RoleCustomer,
		find: func(ctx context.Context, phone string) (*entity.Account, error) {
			c, err := customers.FindByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			return &c.Account, nil
		},
		hasher: hasher,
		tokens: tokens,
	}
}

func NewVendorLoginUseCase(vendors repository.VendorRepository, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{
		role: authz.RoleVendor,
		find: func(ctx context.Context, phone string) (*entity.Account, error) {
			v, err := vendors.FindByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			return &v.Account, nil
		},
		hasher: hasher,
		tokens: tokens,
	}
}

// Execute never tells an unknown phone apart from a wrong password.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*AuthResult, error) {
	phone, err := validation.NormalizePhone(input.Phone)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	acc, err := uc.find(ctx, phone)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.hasher.Matches(acc.PasswordHash, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}

	principal := authz.Principal{ID: acc.ID, Role: uc.role}
	token, exp, err := uc.tokens.Issue(principal)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to issue token")
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"principal_id": acc.ID,
		"role":         uc.role,
	}).Info("account: logged in")

	return &AuthResult{
		Principal:   principal,
		Profile:     acc.Public(),
		AccessToken: token,
		ExpiresAt:   exp,
	}, nil
}
