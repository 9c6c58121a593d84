package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements the domain.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindManagementProfile retrieves the profile of a staff user.
func (repo *profileRepository) FindManagementProfile(ctx context.Context, userID int64) (*entity.ManagementProfile, error) {
	var profileM model.ManagementProfileModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrProfileNotFound, "find management profile")
	}

	return &entity.ManagementProfile{
		UserID:       profileM.UserID,
		Name:         profileM.Name,
		PhoneNumber:  profileM.PhoneNumber,
		ProfilePicID: profileM.ProfilePicID,
		UpdatedAt:    profileM.UpdatedAt,
	}, nil
}

// SaveManagementProfile creates or replaces the profile of a staff user.
func (repo *profileRepository) SaveManagementProfile(ctx context.Context, profile *entity.ManagementProfile) error {
	profileM := &model.ManagementProfileModel{
		UserID:       profile.UserID,
		Name:         profile.Name,
		PhoneNumber:  profile.PhoneNumber,
		ProfilePicID: profile.ProfilePicID,
	}

	if err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(profileM).Error; err != nil {
		return writeError(err, nil, "save management profile")
	}
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindCustomerProfile retrieves the profile of a customer.
func (repo *profileRepository) FindCustomerProfile(ctx context.Context, userID int64) (*entity.CustomerProfile, error) {
	var profileM model.CustomerProfileModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrProfileNotFound, "find customer profile")
	}

	return &entity.CustomerProfile{
		UserID:       profileM.UserID,
		Name:         profileM.Name,
		Email:        profileM.Email,
		BloodGroup:   profileM.BloodGroup,
		Gender:       profileM.Gender,
		DateOfBirth:  profileM.DateOfBirth,
		AddressID:    profileM.AddressID,
		ProfilePicID: profileM.ProfilePicID,
		UpdatedAt:    profileM.UpdatedAt,
	}, nil
}

// SaveCustomerProfile creates or replaces the profile of a customer.
func (repo *profileRepository) SaveCustomerProfile(ctx context.Context, profile *entity.CustomerProfile) error {
	profileM := &model.CustomerProfileModel{
		UserID:       profile.UserID,
		Name:         profile.Name,
		Email:        profile.Email,
		BloodGroup:   profile.BloodGroup,
		Gender:       profile.Gender,
		DateOfBirth:  profile.DateOfBirth,
		AddressID:    profile.AddressID,
		ProfilePicID: profile.ProfilePicID,
	}

	if err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(profileM).Error; err != nil {
		return writeError(err, nil, "save customer profile")
	}
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// CreateAddress persists a new address of a user.
func (repo *profileRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAddressTypeNotFound.WrapMessage("invalid address type reference")
		}

		return writeError(err, nil, "create address")
	}

	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt

	return nil
}

// FindAddressByID retrieves a live address.
func (repo *profileRepository) FindAddressByID(ctx context.Context, id int64) (*entity.Address, error) {
	var addressM model.AddressModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&addressM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrAddressNotFound, "find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// ListAddresses returns the live addresses of a user, oldest first.
func (repo *profileRepository) ListAddresses(ctx context.Context, userID int64) ([]*entity.Address, error) {
	var addressModels []model.AddressModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&addressModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for i := range addressModels {
		addresses = append(addresses, toAddressDomain(&addressModels[i]))
	}

	return addresses, nil
}

// CreateFamilyMember persists a family member of a customer.
func (repo *profileRepository) CreateFamilyMember(ctx context.Context, member *entity.FamilyMember) error {
	memberM := fromFamilyMemberDomain(member)

	if err := repo.db.WithContext(ctx).Create(memberM).Error; err != nil {
		return writeError(err, nil, "create family member")
	}

	member.ID = memberM.ID
	member.CreatedAt = memberM.CreatedAt

	return nil
}

// FindFamilyMemberByID retrieves a live family member.
func (repo *profileRepository) FindFamilyMemberByID(ctx context.Context, id int64) (*entity.FamilyMember, error) {
	var memberM model.FamilyMemberModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&memberM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrFamilyMemberNotFound, "find family member by ID")
	}

	return toFamilyMemberDomain(&memberM), nil
}

// ListFamilyMembers returns the live family members of a customer.
func (repo *profileRepository) ListFamilyMembers(ctx context.Context, userID int64) ([]*entity.FamilyMember, error) {
	var memberModels []model.FamilyMemberModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("user_id = ?", userID).
		Order("id").
		Find(&memberModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list family members")
	}

	members := make([]*entity.FamilyMember, 0, len(memberModels))
	for i := range memberModels {
		members = append(members, toFamilyMemberDomain(&memberModels[i]))
	}

	return members, nil
}

// UpdateFamilyMember saves the editable fields of a family member.
func (repo *profileRepository) UpdateFamilyMember(ctx context.Context, member *entity.FamilyMember) error {
	result := repo.db.WithContext(ctx).Model(&model.FamilyMemberModel{}).
		Scopes(live).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"name":          member.Name,
			"phone_number":  member.PhoneNumber,
			"email":         member.Email,
			"gender":        member.Gender,
			"date_of_birth": member.DateOfBirth,
		})
	if result.Error != nil {
		return writeError(result.Error, nil, "update family member")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrFamilyMemberNotFound.WrapMessage("update family member")
	}

	return nil
}

// SoftDeleteFamilyMember flags a family member as deleted.
func (repo *profileRepository) SoftDeleteFamilyMember(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.FamilyMemberModel{}.TableName(), id, deletedBy, domainerrors.ErrFamilyMemberNotFound)
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:            data.ID,
		UserID:        data.UserID,
		AddressTypeID: data.AddressTypeID,
		HouseNo:       data.HouseNo,
		Street:        data.Street,
		Locality:      data.Locality,
		City:          data.City,
		State:         data.State,
		Pincode:       data.Pincode,
		CreatedAt:     data.CreatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:            data.ID,
		UserID:        data.UserID,
		AddressTypeID: data.AddressTypeID,
		HouseNo:       data.HouseNo,
		Street:        data.Street,
		Locality:      data.Locality,
		City:          data.City,
		State:         data.State,
		Pincode:       data.Pincode,
		CreatedAt:     data.CreatedAt,
	}
}

// toFamilyMemberDomain converts a GORM FamilyMemberModel to a domain FamilyMember entity.
func toFamilyMemberDomain(data *model.FamilyMemberModel) *entity.FamilyMember {
	if data == nil {
		return nil
	}

	return &entity.FamilyMember{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		PhoneNumber: data.PhoneNumber,
		Email:       data.Email,
		Gender:      data.Gender,
		DateOfBirth: data.DateOfBirth,
		CreatedAt:   data.CreatedAt,
	}
}

// fromFamilyMemberDomain converts a domain FamilyMember entity to a GORM FamilyMemberModel.
func fromFamilyMemberDomain(data *entity.FamilyMember) *model.FamilyMemberModel {
	if data == nil {
		return nil
	}

	return &model.FamilyMemberModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		PhoneNumber: data.PhoneNumber,
		Email:       data.Email,
		Gender:      data.Gender,
		DateOfBirth: data.DateOfBirth,
		CreatedAt:   data.CreatedAt,
	}
}
