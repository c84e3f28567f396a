// Package authz resolves which authenticated principal may invoke which
// operation. The principal travels as an explicit context value.
package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleVendor
}

// Principal is an authenticated actor. The role is fixed by the login path
// that issued the credential.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.ID == uuid.Nil || !p.Role.IsValid() {
		return Principal{}, false
	}
	return p, true
}

// Require returns the principal when it holds one of roles.
func Require(ctx context.Context, roles ...Role) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return Principal{}, apperror.ErrUnauthorized
	}
	for _, role := range roles {
		if p.Role == role {
			return p, nil
		}
	}
	return Principal{}, apperror.ErrForbidden
}

func RequireCustomer(ctx context.Context) (Principal, error) {
	return Require(ctx, RoleCustomer)
}

func RequireVendor(ctx context.Context) (Principal, error) {
	return Require(ctx, RoleVendor)
}

// EnsureOwner compares the principal against an owner id taken from a freshly
// loaded entity.
func EnsureOwner(p Principal, ownerID uuid.UUID) error {
	if p.ID != ownerID {
		return apperror.ErrForbidden
	}
	return nil
}
