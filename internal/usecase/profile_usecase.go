package usecase

import (
	"context"

	"medico/internal/domain/entity"
)

// ProfileUsecase defines the profile, address and family member operations.
type ProfileUsecase interface {
	GetAdminProfile(ctx context.Context, userID int64) (*entity.ManagementProfile, error)
	UpdateAdminProfile(ctx context.Context, userID int64, patch *entity.ProfilePatch) (*entity.ManagementProfile, error)

	GetCustomerProfile(ctx context.Context, userID int64) (*entity.CustomerProfile, error)
	// UpdateCustomerProfile patches the profile. A new address in the patch is
	// stored and becomes the profile's address.
	UpdateCustomerProfile(ctx context.Context, userID int64, patch *entity.ProfilePatch) (*entity.CustomerProfile, error)
	ListAddresses(ctx context.Context, userID int64) ([]*entity.Address, error)

	AddFamilyMember(ctx context.Context, member *entity.FamilyMember) (*entity.FamilyMember, error)
	ListFamilyMembers(ctx context.Context, userID int64) ([]*entity.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, userID, memberID int64, patch *entity.FamilyMemberPatch) (*entity.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, userID, memberID int64) error
}
