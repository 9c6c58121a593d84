package postgres

import (
	"context"

	"medico/internal/domain/entity"
	"medico/internal/errors"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultLookups = map[string][]model.LookupModel{
	"discount_types": {
		{Name: entity.DiscountTypePercentage, Description: "Percentage of the purchase amount"},
		{Name: entity.DiscountTypeFlat, Description: "Fixed amount off the purchase"},
	},
	"issue_categories": {
		{Name: "delivery", Description: "Late, missing or damaged deliveries"},
		{Name: "payment", Description: "Charges, refunds and failed payments"},
		{Name: "product", Description: "Wrong or defective medicines"},
		{Name: "other", Description: "Anything else"},
	},
	"address_types": {
		{Name: "home"},
		{Name: "work"},
		{Name: "other"},
	},
}

// Migrate creates or updates every table and seeds the reference data the
// service expects: permissions, the admin and customer roles, discount types,
// issue categories and address types. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedPermissions(tx); err != nil {
			return err
		}
		if err := seedRole(tx, entity.RoleAdmin, "Pharmacy staff with full access", entity.AllScopes); err != nil {
			return err
		}
		if err := seedRole(tx, entity.RoleCustomer, "Customer accounts created through OTP login", entity.CustomerScopes); err != nil {
			return err
		}

		return seedLookups(tx)
	})
}

func seedPermissions(tx *gorm.DB) error {
	perms := make([]model.PermissionModel, 0, len(entity.AllScopes))
	for _, name := range entity.AllScopes {
		perms = append(perms, model.PermissionModel{Name: name})
	}

	err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&perms).Error
	if err != nil {
		return errors.Wrap(err, "failed to seed permissions")
	}

	return nil
}

func seedRole(tx *gorm.DB, name, description string, scopes entity.Scopes) error {
	var role model.RoleModel
	err := live(tx.Model(&model.RoleModel{})).Where("name = ?", name).First(&role).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		role = model.RoleModel{Name: name, Description: description}
		if err := tx.Omit("Permissions").Create(&role).Error; err != nil {
			return errors.Wrapf(err, "failed to seed role %s", name)
		}
	case err != nil:
		return errors.Wrapf(err, "failed to look up role %s", name)
	}

	var permIDs []int64
	if err := tx.Model(&model.PermissionModel{}).Where("name IN ?", []string(scopes)).Pluck("id", &permIDs).Error; err != nil {
		return errors.Wrapf(err, "failed to load permissions for role %s", name)
	}

	links := make([]model.RolePermissionModel, 0, len(permIDs))
	for _, id := range permIDs {
		links = append(links, model.RolePermissionModel{RoleID: role.ID, PermissionID: id})
	}
	if len(links) == 0 {
		return nil
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return errors.Wrapf(err, "failed to grant permissions to role %s", name)
	}

	return nil
}

func seedLookups(tx *gorm.DB) error {
	for table, rows := range defaultLookups {
		for _, row := range rows {
			var count int64
			if err := live(tx.Table(table)).Where("name = ?", row.Name).Count(&count).Error; err != nil {
				return errors.Wrapf(err, "failed to check %s seed", table)
			}
			if count > 0 {
				continue
			}

			if err := tx.Table(table).Create(map[string]any{
				"name":        row.Name,
				"description": row.Description,
				"created_at":  tx.NowFunc(),
				"updated_at":  tx.NowFunc(),
				"is_deleted":  false,
			}).Error; err != nil {
				return errors.Wrapf(err, "failed to seed %s", table)
			}
		}
	}

	return nil
}
