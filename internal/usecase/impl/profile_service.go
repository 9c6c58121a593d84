package impl

import (
	"context"
	"log/slog"

	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/errors"
	"medico/internal/usecase"

	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		repos:     params.Repos,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetAdminProfile retrieves the management profile of a staff user.
func (srv *profileService) GetAdminProfile(ctx context.Context, userID int64) (*entity.ManagementProfile, error) {
	profile, err := srv.repos.ProfileRepo().FindManagementProfile(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get admin profile")
	}

	return profile, nil
}

// UpdateAdminProfile patches the management profile, creating it on first use.
func (srv *profileService) UpdateAdminProfile(ctx context.Context, userID int64, patch *entity.ProfilePatch) (*entity.ManagementProfile, error) {
	var profile *entity.ManagementProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		var err error
		profile, err = profileRepo.FindManagementProfile(ctx, userID)
		if errors.Is(err, domainerrors.ErrProfileNotFound) {
			profile = &entity.ManagementProfile{UserID: userID}
		} else if err != nil {
			return err
		}

		if patch.Name != nil {
			profile.Name = *patch.Name
		}
		if patch.PhoneNumber != nil {
			profile.PhoneNumber = *patch.PhoneNumber
		}
		if patch.ProfilePicID != nil {
			if _, err := repoFactory.FileRepo().FindFileAssetByID(ctx, *patch.ProfilePicID); err != nil {
				return err
			}
			profile.ProfilePicID = patch.ProfilePicID
		}

		return profileRepo.SaveManagementProfile(ctx, profile)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update admin profile")
	}

	srv.log(ctx).Info("Admin profile updated", slog.Int64("userID", userID))

	return profile, nil
}

// GetCustomerProfile retrieves the profile of a customer.
func (srv *profileService) GetCustomerProfile(ctx context.Context, userID int64) (*entity.CustomerProfile, error) {
	profile, err := srv.repos.ProfileRepo().FindCustomerProfile(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get customer profile")
	}

	return profile, nil
}

// UpdateCustomerProfile patches the customer profile, creating it on first use.
func (srv *profileService) UpdateCustomerProfile(ctx context.Context, userID int64, patch *entity.ProfilePatch) (*entity.CustomerProfile, error) {
	var profile *entity.CustomerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		var err error
		profile, err = profileRepo.FindCustomerProfile(ctx, userID)
		if errors.Is(err, domainerrors.ErrProfileNotFound) {
			profile = &entity.CustomerProfile{UserID: userID}
		} else if err != nil {
			return err
		}

		applyCustomerPatch(profile, patch)

		if patch.ProfilePicID != nil {
			if _, err := repoFactory.FileRepo().FindFileAssetByID(ctx, *patch.ProfilePicID); err != nil {
				return err
			}
			profile.ProfilePicID = patch.ProfilePicID
		}

		if patch.Address != nil {
			address := *patch.Address
			address.ID = 0
			address.UserID = userID
			if _, err := repoFactory.LookupRepo().FindLookupByID(ctx, entity.LookupAddressType, address.AddressTypeID); err != nil {
				return err
			}
			if err := profileRepo.CreateAddress(ctx, &address); err != nil {
				return err
			}
			profile.AddressID = &address.ID
		}

		return profileRepo.SaveCustomerProfile(ctx, profile)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update customer profile")
	}

	srv.log(ctx).Info("Customer profile updated", slog.Int64("userID", userID))

	return profile, nil
}

func applyCustomerPatch(profile *entity.CustomerProfile, patch *entity.ProfilePatch) {
	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.BloodGroup != nil {
		profile.BloodGroup = *patch.BloodGroup
	}
	if patch.Gender != nil {
		profile.Gender = *patch.Gender
	}
	if patch.DateOfBirth != nil {
		profile.DateOfBirth = patch.DateOfBirth
	}
}

// ListAddresses returns the addresses of a customer.
func (srv *profileService) ListAddresses(ctx context.Context, userID int64) ([]*entity.Address, error) {
	addresses, err := srv.repos.ProfileRepo().ListAddresses(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// AddFamilyMember adds a dependant to an existing customer.
func (srv *profileService) AddFamilyMember(ctx context.Context, member *entity.FamilyMember) (*entity.FamilyMember, error) {
	if _, err := srv.repos.UserRepo().FindUserByID(ctx, member.UserID); err != nil {
		return nil, errors.Wrap(err, "failed to find family member owner")
	}

	if err := srv.repos.ProfileRepo().CreateFamilyMember(ctx, member); err != nil {
		return nil, errors.Wrap(err, "failed to add family member")
	}

	srv.log(ctx).Info("Family member added", slog.Int64("userID", member.UserID), slog.Int64("memberID", member.ID))

	return member, nil
}

// ListFamilyMembers returns the live family members of a customer.
func (srv *profileService) ListFamilyMembers(ctx context.Context, userID int64) ([]*entity.FamilyMember, error) {
	members, err := srv.repos.ProfileRepo().ListFamilyMembers(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list family members")
	}

	return members, nil
}

// UpdateFamilyMember patches a family member owned by userID.
func (srv *profileService) UpdateFamilyMember(ctx context.Context, userID, memberID int64, patch *entity.FamilyMemberPatch) (*entity.FamilyMember, error) {
	profileRepo := srv.repos.ProfileRepo()

	member, err := findOwnedMember(ctx, profileRepo, userID, memberID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		member.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		member.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Email != nil {
		member.Email = *patch.Email
	}
	if patch.Gender != nil {
		member.Gender = *patch.Gender
	}
	if patch.DateOfBirth != nil {
		member.DateOfBirth = patch.DateOfBirth
	}

	if err := profileRepo.UpdateFamilyMember(ctx, member); err != nil {
		return nil, errors.Wrap(err, "failed to update family member")
	}

	return member, nil
}

// DeleteFamilyMember soft-deletes a family member owned by userID.
func (srv *profileService) DeleteFamilyMember(ctx context.Context, userID, memberID int64) error {
	profileRepo := srv.repos.ProfileRepo()

	if _, err := findOwnedMember(ctx, profileRepo, userID, memberID); err != nil {
		return err
	}

	if err := profileRepo.SoftDeleteFamilyMember(ctx, memberID, userID); err != nil {
		return errors.Wrap(err, "failed to delete family member")
	}

	srv.log(ctx).Info("Family member deleted", slog.Int64("userID", userID), slog.Int64("memberID", memberID))

	return nil
}

// findOwnedMember hides members of other customers behind NotFound.
func findOwnedMember(ctx context.Context, profileRepo repository.ProfileRepository, userID, memberID int64) (*entity.FamilyMember, error) {
	member, err := profileRepo.FindFamilyMemberByID(ctx, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find family member")
	}
	if member.UserID != userID {
		return nil, domainerrors.ErrFamilyMemberNotFound
	}

	return member, nil
}
