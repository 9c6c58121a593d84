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

type roleService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	logger    *slog.Logger
}

// RoleServiceParams holds dependencies for RoleService, injected by Fx.
type RoleServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Logger    *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(params RoleServiceParams) usecase.RoleUsecase {
	return &roleService{
		txManager: params.TxManager,
		repos:     params.Repos,
		logger:    params.Logger,
	}
}

func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRole inserts a role with the named permissions. Unknown permissions are NotFound.
func (srv *roleService) CreateRole(ctx context.Context, input *usecase.CreateRoleInput) (*entity.Role, error) {
	var created *entity.Role
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.RoleRepo()

		if err := ensureRoleNameFree(ctx, roleRepo, input.Name, 0); err != nil {
			return err
		}

		perms, err := roleRepo.FindPermissionsByNames(ctx, input.Permissions)
		if err != nil {
			return err
		}

		role := &entity.Role{Name: input.Name, Description: input.Description, Permissions: perms}
		if err := roleRepo.CreateRole(ctx, role); err != nil {
			return err
		}
		created = role

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create role")
	}

	srv.log(ctx).Info("Role created", slog.Int64("roleID", created.ID), slog.String("name", created.Name))

	return created, nil
}

func (srv *roleService) GetRole(ctx context.Context, id int64) (*entity.Role, error) {
	return srv.repos.RoleRepo().FindRoleByID(ctx, id)
}

func (srv *roleService) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	return srv.repos.RoleRepo().ListRoles(ctx)
}

// UpdateRole patches the name and description and replaces the permissions when given.
func (srv *roleService) UpdateRole(ctx context.Context, id int64, patch *entity.RolePatch) (*entity.Role, error) {
	var updated *entity.Role
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.RoleRepo()

		role, err := roleRepo.FindRoleByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil && *patch.Name != role.Name {
			if err := ensureRoleNameFree(ctx, roleRepo, *patch.Name, id); err != nil {
				return err
			}
			role.Name = *patch.Name
		}
		if patch.Description != nil {
			role.Description = *patch.Description
		}
		if err := roleRepo.UpdateRole(ctx, role); err != nil {
			return err
		}

		if patch.Permissions != nil {
			perms, err := roleRepo.FindPermissionsByNames(ctx, *patch.Permissions)
			if err != nil {
				return err
			}
			ids := make([]int64, 0, len(perms))
			for _, p := range perms {
				ids = append(ids, p.ID)
			}
			if err := roleRepo.ReplacePermissions(ctx, id, ids); err != nil {
				return err
			}
		}

		updated, err = roleRepo.FindRoleByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update role")
	}

	srv.log(ctx).Info("Role updated", slog.Int64("roleID", id))

	return updated, nil
}

func ensureRoleNameFree(ctx context.Context, roleRepo repository.RoleRepository, name string, selfID int64) error {
	existing, err := roleRepo.FindRoleByName(ctx, name)
	switch {
	case errors.Is(err, domainerrors.ErrRoleNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return domainerrors.ErrRoleAlreadyExists.WrapMessage(name)
	}

	return nil
}
