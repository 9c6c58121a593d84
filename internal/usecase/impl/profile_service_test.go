package impl

import (
	"context"
	"testing"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	"medico/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockrepository.MockTransactionManager
	profiles  *mockrepository.MockProfileRepository
	users     *mockrepository.MockUserRepository
	lookups   *mockrepository.MockLookupRepository
	files     *mockrepository.MockFileRepository
	repos     *mockrepository.Repositories
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	fx := profileServiceFixtures{
		txManager: mockrepository.NewMockTransactionManager(t),
		profiles:  mockrepository.NewMockProfileRepository(t),
		users:     mockrepository.NewMockUserRepository(t),
		lookups:   mockrepository.NewMockLookupRepository(t),
		files:     mockrepository.NewMockFileRepository(t),
	}
	fx.repos = &mockrepository.Repositories{
		T:       t,
		Profile: fx.profiles,
		User:    fx.users,
		Lookup:  fx.lookups,
		File:    fx.files,
	}
	fx.service = NewProfileService(ProfileServiceParams{
		TxManager: fx.txManager,
		Repos:     fx.repos,
		Logger:    discardLogger(),
	})

	return fx
}

func TestProfileService_GetAdminProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	fx.profiles.On("FindManagementProfile", mock.Anything, int64(7)).Return(nil, domainerrors.ErrProfileNotFound).Once()

	_, err := fx.service.GetAdminProfile(context.Background(), 7)

	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
}

func TestProfileService_UpdateAdminProfile_CreatesOnFirstUse(t *testing.T) {
	fx := createTestProfileService(t)
	name := "Head Pharmacist"

	fx.txManager.OnExecute(fx.repos).Once()
	fx.profiles.On("FindManagementProfile", mock.Anything, int64(7)).Return(nil, domainerrors.ErrProfileNotFound).Once()
	fx.profiles.On("SaveManagementProfile", mock.Anything, &entity.ManagementProfile{UserID: 7, Name: name}).Return(nil).Once()

	profile, err := fx.service.UpdateAdminProfile(context.Background(), 7, &entity.ProfilePatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, name, profile.Name)
}

func TestProfileService_UpdateAdminProfile_UnknownPicture(t *testing.T) {
	fx := createTestProfileService(t)
	picID := int64(404)

	fx.txManager.OnExecute(fx.repos).Once()
	fx.profiles.On("FindManagementProfile", mock.Anything, int64(7)).Return(&entity.ManagementProfile{UserID: 7}, nil).Once()
	fx.files.On("FindFileAssetByID", mock.Anything, picID).Return(nil, domainerrors.ErrFileNotFound).Once()

	_, err := fx.service.UpdateAdminProfile(context.Background(), 7, &entity.ProfilePatch{ProfilePicID: &picID})

	assert.True(t, errors.Is(err, domainerrors.ErrFileNotFound))
	fx.profiles.AssertNotCalled(t, "SaveManagementProfile", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateCustomerProfile_StoresNewAddress(t *testing.T) {
	fx := createTestProfileService(t)
	bloodGroup := "O+"

	fx.txManager.OnExecute(fx.repos).Once()
	fx.profiles.On("FindCustomerProfile", mock.Anything, int64(2)).
		Return(&entity.CustomerProfile{UserID: 2, Name: "Asha"}, nil).Once()
	fx.lookups.On("FindLookupByID", mock.Anything, entity.LookupAddressType, int64(1)).
		Return(&entity.Lookup{ID: 1, Name: "home"}, nil).Once()
	fx.profiles.On("CreateAddress", mock.Anything, mock.MatchedBy(func(a *entity.Address) bool {
		return a.UserID == 2 && a.ID == 0 && a.City == "Pune"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Address).ID = 12
	}).Return(nil).Once()
	fx.profiles.On("SaveCustomerProfile", mock.Anything, mock.AnythingOfType("*entity.CustomerProfile")).Return(nil).Once()

	profile, err := fx.service.UpdateCustomerProfile(context.Background(), 2, &entity.ProfilePatch{
		BloodGroup: &bloodGroup,
		Address:    &entity.Address{ID: 99, AddressTypeID: 1, City: "Pune", State: "MH", Pincode: "411001"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, bloodGroup, profile.BloodGroup)
	require.NotNil(t, profile.AddressID)
	assert.Equal(t, int64(12), *profile.AddressID)
}

func TestProfileService_AddFamilyMember_UnknownOwner(t *testing.T) {
	fx := createTestProfileService(t)

	fx.users.On("FindUserByID", mock.Anything, int64(404)).Return(nil, domainerrors.ErrUserNotFound).Once()

	_, err := fx.service.AddFamilyMember(context.Background(), &entity.FamilyMember{UserID: 404, Name: "Ravi"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	fx.profiles.AssertNotCalled(t, "CreateFamilyMember", mock.Anything, mock.Anything)
}

func TestProfileService_FamilyMemberOwnership(t *testing.T) {
	foreign := &entity.FamilyMember{ID: 8, UserID: 99, Name: "Someone else"}

	t.Run("update", func(t *testing.T) {
		fx := createTestProfileService(t)
		name := "Renamed"
		fx.profiles.On("FindFamilyMemberByID", mock.Anything, int64(8)).Return(foreign, nil).Once()

		_, err := fx.service.UpdateFamilyMember(context.Background(), 2, 8, &entity.FamilyMemberPatch{Name: &name})

		assert.True(t, errors.Is(err, domainerrors.ErrFamilyMemberNotFound))
		fx.profiles.AssertNotCalled(t, "UpdateFamilyMember", mock.Anything, mock.Anything)
	})

	t.Run("delete", func(t *testing.T) {
		fx := createTestProfileService(t)
		fx.profiles.On("FindFamilyMemberByID", mock.Anything, int64(8)).Return(foreign, nil).Once()

		err := fx.service.DeleteFamilyMember(context.Background(), 2, 8)

		assert.True(t, errors.Is(err, domainerrors.ErrFamilyMemberNotFound))
		fx.profiles.AssertNotCalled(t, "SoftDeleteFamilyMember", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileService_UpdateFamilyMember(t *testing.T) {
	fx := createTestProfileService(t)
	email := "ravi@example.com"
	member := &entity.FamilyMember{ID: 8, UserID: 2, Name: "Ravi"}

	fx.profiles.On("FindFamilyMemberByID", mock.Anything, int64(8)).Return(member, nil).Once()
	fx.profiles.On("UpdateFamilyMember", mock.Anything, &entity.FamilyMember{ID: 8, UserID: 2, Name: "Ravi", Email: email}).
		Return(nil).Once()

	got, err := fx.service.UpdateFamilyMember(context.Background(), 2, 8, &entity.FamilyMemberPatch{Email: &email})

	require.NoError(t, err)
	assert.Equal(t, email, got.Email)
}
