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

type roleServiceFixtures struct {
	service   usecase.RoleUsecase
	txManager *mockrepository.MockTransactionManager
	roles     *mockrepository.MockRoleRepository
}

func createTestRoleService(t *testing.T) roleServiceFixtures {
	fx := roleServiceFixtures{
		txManager: mockrepository.NewMockTransactionManager(t),
		roles:     mockrepository.NewMockRoleRepository(t),
	}
	repos := &mockrepository.Repositories{T: t, Role: fx.roles}
	fx.service = NewRoleService(RoleServiceParams{
		TxManager: fx.txManager,
		Repos:     repos,
		Logger:    discardLogger(),
	})
	fx.txManager.OnExecute(repos).Maybe()

	return fx
}

func TestRoleService_CreateRole(t *testing.T) {
	fx := createTestRoleService(t)
	perms := []entity.Permission{{ID: 1, Name: entity.ScopeUserRead}, {ID: 2, Name: entity.ScopeUserWrite}}

	fx.roles.On("FindRoleByName", mock.Anything, "pharmacist").Return(nil, domainerrors.ErrRoleNotFound).Once()
	fx.roles.On("FindPermissionsByNames", mock.Anything, []string{entity.ScopeUserRead, entity.ScopeUserWrite}).Return(perms, nil).Once()
	fx.roles.On("CreateRole", mock.Anything, mock.MatchedBy(func(r *entity.Role) bool {
		return r.Name == "pharmacist" && len(r.Permissions) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Role).ID = 9
	}).Return(nil).Once()

	role, err := fx.service.CreateRole(context.Background(), &usecase.CreateRoleInput{
		Name:        "pharmacist",
		Permissions: []string{entity.ScopeUserRead, entity.ScopeUserWrite},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), role.ID)
	assert.ElementsMatch(t, entity.Scopes{entity.ScopeUserRead, entity.ScopeUserWrite}, role.Scopes())
}

func TestRoleService_CreateRole_DuplicateName(t *testing.T) {
	fx := createTestRoleService(t)
	fx.roles.On("FindRoleByName", mock.Anything, "admin").Return(&entity.Role{ID: 1, Name: "admin"}, nil).Once()

	_, err := fx.service.CreateRole(context.Background(), &usecase.CreateRoleInput{Name: "admin"})

	assert.True(t, errors.Is(err, domainerrors.ErrRoleAlreadyExists))
	fx.roles.AssertNotCalled(t, "CreateRole", mock.Anything, mock.Anything)
}

func TestRoleService_CreateRole_UnknownPermission(t *testing.T) {
	fx := createTestRoleService(t)
	fx.roles.On("FindRoleByName", mock.Anything, "pharmacist").Return(nil, domainerrors.ErrRoleNotFound).Once()
	fx.roles.On("FindPermissionsByNames", mock.Anything, []string{"orders:fly"}).Return(nil, domainerrors.ErrPermissionNotFound).Once()

	_, err := fx.service.CreateRole(context.Background(), &usecase.CreateRoleInput{Name: "pharmacist", Permissions: []string{"orders:fly"}})

	assert.True(t, errors.Is(err, domainerrors.ErrPermissionNotFound))
}

func TestRoleService_UpdateRole_ReplacesPermissions(t *testing.T) {
	fx := createTestRoleService(t)
	current := &entity.Role{ID: 4, Name: "pharmacist", Permissions: []entity.Permission{{ID: 1, Name: entity.ScopeUserRead}}}
	updated := &entity.Role{ID: 4, Name: "pharmacist", Permissions: []entity.Permission{{ID: 3, Name: entity.ScopeAdminRead}}}

	fx.roles.On("FindRoleByID", mock.Anything, int64(4)).Return(current, nil).Once()
	fx.roles.On("UpdateRole", mock.Anything, current).Return(nil).Once()
	fx.roles.On("FindPermissionsByNames", mock.Anything, []string{entity.ScopeAdminRead}).
		Return([]entity.Permission{{ID: 3, Name: entity.ScopeAdminRead}}, nil).Once()
	fx.roles.On("ReplacePermissions", mock.Anything, int64(4), []int64{3}).Return(nil).Once()
	fx.roles.On("FindRoleByID", mock.Anything, int64(4)).Return(updated, nil).Once()

	role, err := fx.service.UpdateRole(context.Background(), 4, &entity.RolePatch{
		Description: ptr("Dispensing staff"),
		Permissions: &[]string{entity.ScopeAdminRead},
	})

	require.NoError(t, err)
	assert.Equal(t, "Dispensing staff", current.Description)
	assert.Equal(t, entity.Scopes{entity.ScopeAdminRead}, role.Scopes())
}

func TestRoleService_UpdateRole_KeepsPermissionsWhenOmitted(t *testing.T) {
	fx := createTestRoleService(t)
	current := &entity.Role{ID: 4, Name: "pharmacist"}

	fx.roles.On("FindRoleByID", mock.Anything, int64(4)).Return(current, nil).Twice()
	fx.roles.On("FindRoleByName", mock.Anything, "dispenser").Return(nil, domainerrors.ErrRoleNotFound).Once()
	fx.roles.On("UpdateRole", mock.Anything, mock.MatchedBy(func(r *entity.Role) bool { return r.Name == "dispenser" })).Return(nil).Once()

	_, err := fx.service.UpdateRole(context.Background(), 4, &entity.RolePatch{Name: ptr("dispenser")})

	require.NoError(t, err)
	fx.roles.AssertNotCalled(t, "ReplacePermissions", mock.Anything, mock.Anything, mock.Anything)
}
