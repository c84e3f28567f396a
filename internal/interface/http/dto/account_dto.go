package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/account"
)

type RegisterCustomerRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=150"`
	Phone    string  `json:"phone" binding:"required,min=5,max=32"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Location *string `json:"location" binding:"omitempty,max=255"`
}

func (r RegisterCustomerRequest) ToInput() account.RegisterInput {
	return account.RegisterInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Password: r.Password,
		Location: r.Location,
	}
}

type RegisterVendorRequest struct {
	RegisterCustomerRequest
	VendorType            string `json:"vendorType" binding:"omitempty,oneof=individual company"`
	PreferredWorkLocation string `json:"preferredWorkLocation" binding:"omitempty,oneof=inside outside both"`
}

func (r RegisterVendorRequest) ToInput() account.RegisterInput {
	in := r.RegisterCustomerRequest.ToInput()
	in.VendorType = r.VendorType
	in.PreferredWorkLocation = r.PreferredWorkLocation
	return in
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email *string   `json:"email"`
}

func ToProfileResponse(p entity.PublicProfile) ProfileResponse {
	return ProfileResponse{ID: p.ID, Name: p.Name, Phone: p.Phone, Email: p.Email}
}

type VendorProfileResponse struct {
	ProfileResponse
	VendorType            string `json:"vendorType"`
	PreferredWorkLocation string `json:"preferredWorkLocation"`
}

func ToVendorProfileResponse(v *entity.Vendor) VendorProfileResponse {
	return VendorProfileResponse{
		ProfileResponse:       ToProfileResponse(v.Public()),
		VendorType:            string(v.VendorType),
		PreferredWorkLocation: string(v.PreferredWorkLocation),
	}
}

type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	Role        string          `json:"role"`
	Profile     ProfileResponse `json:"profile"`
}

func ToAuthResponse(r *account.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken: r.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   r.ExpiresAt,
		Role:        string(r.Principal.Role),
		Profile:     ToProfileResponse(r.Profile),
	}
}
