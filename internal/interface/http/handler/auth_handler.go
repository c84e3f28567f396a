package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/account"
)

type AuthHandler struct {
	registerCustomerUC *account.RegisterCustomerUseCase
	registerVendorUC   *account.RegisterVendorUseCase
	customerLoginUC    *account.LoginUseCase
	vendorLoginUC      *account.LoginUseCase
}

func NewAuthHandler(
	registerCustomerUC *account.RegisterCustomerUseCase,
	registerVendorUC *account.RegisterVendorUseCase,
	customerLoginUC *account.LoginUseCase,
	vendorLoginUC *account.LoginUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerCustomerUC: registerCustomerUC,
		registerVendorUC:   registerVendorUC,
		customerLoginUC:    customerLoginUC,
		vendorLoginUC:      vendorLoginUC,
	}
}

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.registerCustomerUC.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProfileResponse(customer.Public()))
}

func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req dto.RegisterVendorRequest
	if !bindJSON(c, &req) {
		return
	}

	vendor, err := h.registerVendorUC.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToVendorProfileResponse(vendor))
}

func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	h.login(c, h.customerLoginUC)
}

func (h *AuthHandler) VendorLogin(c *gin.Context) {
	h.login(c, h.vendorLoginUC)
}

func (h *AuthHandler) login(c *gin.Context, uc *account.LoginUseCase) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := uc.Execute(c.Request.Context(), account.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAuthResponse(result))
}
