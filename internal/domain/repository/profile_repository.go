package repository

import (
	"context"

	"medico/internal/domain/entity"
)

// ProfileRepository defines the persistence of profiles, addresses and family members.
type ProfileRepository interface {
	FindManagementProfile(ctx context.Context, userID int64) (*entity.ManagementProfile, error)
	SaveManagementProfile(ctx context.Context, profile *entity.ManagementProfile) error

	FindCustomerProfile(ctx context.Context, userID int64) (*entity.CustomerProfile, error)
	SaveCustomerProfile(ctx context.Context, profile *entity.CustomerProfile) error

	CreateAddress(ctx context.Context, address *entity.Address) error
	FindAddressByID(ctx context.Context, id int64) (*entity.Address, error)
	ListAddresses(ctx context.Context, userID int64) ([]*entity.Address, error)

	CreateFamilyMember(ctx context.Context, member *entity.FamilyMember) error
	FindFamilyMemberByID(ctx context.Context, id int64) (*entity.FamilyMember, error)
	ListFamilyMembers(ctx context.Context, userID int64) ([]*entity.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, member *entity.FamilyMember) error
	SoftDeleteFamilyMember(ctx context.Context, id, deletedBy int64) error
}
