package postgres

import (
	"context"
	"strings"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// roleRepository implements the domain.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// CreateRole persists a role and links the permissions already resolved on it.
func (repo *roleRepository) CreateRole(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)

	if err := repo.db.WithContext(ctx).Omit("Permissions").Create(roleM).Error; err != nil {
		return writeError(err, domainerrors.ErrRoleAlreadyExists, "create role")
	}

	role.ID = roleM.ID
	role.CreatedAt = roleM.CreatedAt
	role.UpdatedAt = roleM.UpdatedAt

	ids := make([]int64, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		ids = append(ids, p.ID)
	}

	return repo.ReplacePermissions(ctx, role.ID, ids)
}

// FindRoleByID retrieves a role by its unique ID.
func (repo *roleRepository) FindRoleByID(ctx context.Context, id int64) (*entity.Role, error) {
	var roleM model.RoleModel
	err := repo.db.WithContext(ctx).Preload("Permissions").Scopes(live).
		Where("id = ?", id).
		First(&roleM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrRoleNotFound, "find role by ID")
	}

	return toRoleDomain(&roleM), nil
}

// FindRoleByName retrieves a role by its name.
func (repo *roleRepository) FindRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	var roleM model.RoleModel
	err := repo.db.WithContext(ctx).Preload("Permissions").Scopes(live).
		Where("name = ?", name).
		First(&roleM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrRoleNotFound, "find role by name")
	}

	return toRoleDomain(&roleM), nil
}

// ListRoles returns all live roles ordered by ID.
func (repo *roleRepository) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	var roleModels []model.RoleModel
	err := repo.db.WithContext(ctx).Preload("Permissions").Scopes(live).
		Order("id").
		Find(&roleModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list roles")
	}

	roles := make([]*entity.Role, 0, len(roleModels))
	for i := range roleModels {
		roles = append(roles, toRoleDomain(&roleModels[i]))
	}

	return roles, nil
}

// UpdateRole saves the name and description of a role.
func (repo *roleRepository) UpdateRole(ctx context.Context, role *entity.Role) error {
	result := repo.db.WithContext(ctx).Model(&model.RoleModel{}).
		Scopes(live).
		Where("id = ?", role.ID).
		Updates(map[string]any{
			"name":        role.Name,
			"description": role.Description,
		})
	if result.Error != nil {
		return writeError(result.Error, domainerrors.ErrRoleAlreadyExists, "update role")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotFound.WrapMessage("update role")
	}

	return nil
}

// ReplacePermissions rewrites the permission links of a role.
func (repo *roleRepository) ReplacePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("role_id = ?", roleID).Delete(&model.RolePermissionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear role permissions")
	}

	permissionIDs = uniqueIDs(permissionIDs)
	if len(permissionIDs) == 0 {
		return nil
	}

	links := make([]model.RolePermissionModel, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		links = append(links, model.RolePermissionModel{RoleID: roleID, PermissionID: id})
	}
	if err := db.Create(&links).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrPermissionNotFound.WrapMessage("invalid permission reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to link role permissions")
	}

	return nil
}

// FindPermissionsByNames resolves permission names to records.
func (repo *roleRepository) FindPermissionsByNames(ctx context.Context, names []string) ([]entity.Permission, error) {
	if len(names) == 0 {
		return []entity.Permission{}, nil
	}

	var permissionModels []model.PermissionModel
	if err := repo.db.WithContext(ctx).Where("name IN ?", names).Find(&permissionModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find permissions")
	}

	found := make(map[string]struct{}, len(permissionModels))
	for _, p := range permissionModels {
		found[p.Name] = struct{}{}
	}
	var missing []string
	for _, name := range names {
		if _, ok := found[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, domainerrors.ErrPermissionNotFound.WrapMessage(strings.Join(missing, ", "))
	}

	return toPermissionsDomain(permissionModels), nil
}

// --- Mapper Functions ---

// toRoleDomain converts a GORM RoleModel to a domain Role entity.
func toRoleDomain(data *model.RoleModel) *entity.Role {
	if data == nil {
		return nil
	}

	return &entity.Role{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Permissions: toPermissionsDomain(data.Permissions),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromRoleDomain converts a domain Role entity to a GORM RoleModel without its permissions.
func fromRoleDomain(data *entity.Role) *model.RoleModel {
	if data == nil {
		return nil
	}

	return &model.RoleModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toPermissionsDomain(data []model.PermissionModel) []entity.Permission {
	permissions := make([]entity.Permission, 0, len(data))
	for _, p := range data {
		permissions = append(permissions, entity.Permission{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		})
	}

	return permissions
}
