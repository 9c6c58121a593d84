package handler

import (
	"log/slog"
	"net/http"
	"time"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves admin and customer profiles, addresses and family members.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// AddressRequest represents a new address in a profile update
type AddressRequest struct {
	AddressTypeID int64  `json:"address_type_id" validate:"required,gt=0"`
	HouseNo       string `json:"house_no" validate:"max=50"`
	Street        string `json:"street" validate:"max=255"`
	Locality      string `json:"locality" validate:"max=255"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state" validate:"required,max=100"`
	Pincode       string `json:"pincode" validate:"required,numeric,len=6"`
}

// UpdateProfileRequest represents the request body for patching a profile
type UpdateProfileRequest struct {
	Name         *string         `json:"name" validate:"omitempty,max=100"`
	PhoneNumber  *string         `json:"phone_number" validate:"omitempty,e164"`
	BloodGroup   *string         `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Gender       *string         `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth  *time.Time      `json:"dob"`
	ProfilePicID *int64          `json:"profile_pic_id" validate:"omitempty,gt=0"`
	Address      *AddressRequest `json:"address"`
}

func (r *UpdateProfileRequest) patch() *entity.ProfilePatch {
	patch := &entity.ProfilePatch{
		Name:         r.Name,
		PhoneNumber:  r.PhoneNumber,
		BloodGroup:   r.BloodGroup,
		Gender:       r.Gender,
		DateOfBirth:  r.DateOfBirth,
		ProfilePicID: r.ProfilePicID,
	}
	if r.Address != nil {
		patch.Address = &entity.Address{
			AddressTypeID: r.Address.AddressTypeID,
			HouseNo:       r.Address.HouseNo,
			Street:        r.Address.Street,
			Locality:      r.Address.Locality,
			City:          r.Address.City,
			State:         r.Address.State,
			Pincode:       r.Address.Pincode,
		}
	}

	return patch
}

// FamilyMemberRequest represents the request body for adding a family member
type FamilyMemberRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,e164"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *time.Time `json:"dob"`
}

// UpdateFamilyMemberRequest represents the request body for patching a family member
type UpdateFamilyMemberRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	PhoneNumber *string    `json:"phone_number" validate:"omitempty,e164"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *time.Time `json:"dob"`
}

// GetAdminProfile returns the caller's staff profile
func (h *ProfileHandler) GetAdminProfile(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.profileUC.GetAdminProfile(c.Request().Context(), principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// UpdateAdminProfile patches the caller's staff profile
func (h *ProfileHandler) UpdateAdminProfile(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	profile, err := h.profileUC.UpdateAdminProfile(c.Request().Context(), principal.UserID, req.patch())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// GetCustomerProfile returns the caller's customer profile
func (h *ProfileHandler) GetCustomerProfile(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.profileUC.GetCustomerProfile(c.Request().Context(), principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// UpdateCustomerProfile patches the caller's customer profile
func (h *ProfileHandler) UpdateCustomerProfile(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	profile, err := h.profileUC.UpdateCustomerProfile(c.Request().Context(), principal.UserID, req.patch())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// ListAddresses returns the caller's addresses
func (h *ProfileHandler) ListAddresses(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	addresses, err := h.profileUC.ListAddresses(c.Request().Context(), principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addresses)
}

// AddFamilyMember adds a dependant to the caller's account
func (h *ProfileHandler) AddFamilyMember(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req FamilyMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid family member input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	member, err := h.profileUC.AddFamilyMember(c.Request().Context(), &entity.FamilyMember{
		UserID:      principal.UserID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, member)
}

// ListFamilyMembers returns the caller's family members
func (h *ProfileHandler) ListFamilyMembers(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	members, err := h.profileUC.ListFamilyMembers(c.Request().Context(), principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, members)
}

// UpdateFamilyMember patches one of the caller's family members
func (h *ProfileHandler) UpdateFamilyMember(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	memberID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateFamilyMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid family member input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	member, err := h.profileUC.UpdateFamilyMember(c.Request().Context(), principal.UserID, memberID, &entity.FamilyMemberPatch{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, member)
}

// DeleteFamilyMember soft deletes one of the caller's family members
func (h *ProfileHandler) DeleteFamilyMember(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	memberID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.profileUC.DeleteFamilyMember(c.Request().Context(), principal.UserID, memberID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
