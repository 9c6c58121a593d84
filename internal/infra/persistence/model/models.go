package model

// All returns every model in dependency order for schema migration.
func All() []any {
	return []any{
		&PermissionModel{}, &RoleModel{}, &RolePermissionModel{}, &UserModel{},
		&SessionModel{}, &RevokedTokenModel{}, &OTPCodeModel{}, &PasswordResetModel{},
		&AddressTypeModel{}, &ManagementProfileModel{}, &CustomerProfileModel{},
		&AddressModel{}, &FamilyMemberModel{},
		&FileAssetModel{},
		&CategoryModel{}, &TagModel{}, &SideEffectModel{}, &AlternativeModel{},
		&MedicineModel{}, &MedicineCategoryModel{}, &MedicineTagModel{},
		&MedicineSideEffectModel{}, &MedicineAlternativeModel{},
		&MedicineBatchModel{}, &GSTSlabModel{},
		&DiscountTypeModel{}, &DiscountModel{}, &DiscountParameterModel{},
		&DiscountMedicineModel{}, &DiscountCategoryModel{}, &CouponModel{},
		&PrescriptionModel{}, &OrderModel{}, &OrderItemModel{},
		&InvoiceModel{}, &InvoiceItemModel{}, &PaymentModel{},
		&IssueCategoryModel{}, &IssueModel{}, &IssueMessageModel{}, &IssueAttachmentModel{},
	}
}
