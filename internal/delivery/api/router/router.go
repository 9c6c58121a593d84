// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"medico/internal/delivery/api/middleware"
	"medico/internal/delivery/api/router/handler"
	"medico/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	RoleHandler         *handler.RoleHandler
	ProfileHandler      *handler.ProfileHandler
	LookupHandler       *handler.LookupHandler
	InventoryHandler    *handler.InventoryHandler
	DiscountHandler     *handler.DiscountHandler
	CouponHandler       *handler.CouponHandler
	OrderHandler        *handler.OrderHandler
	PrescriptionHandler *handler.PrescriptionHandler
	BillingHandler      *handler.BillingHandler
	IssueHandler        *handler.IssueHandler
	FileHandler         *handler.FileHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	roleHandler         *handler.RoleHandler
	profileHandler      *handler.ProfileHandler
	lookupHandler       *handler.LookupHandler
	inventoryHandler    *handler.InventoryHandler
	discountHandler     *handler.DiscountHandler
	couponHandler       *handler.CouponHandler
	orderHandler        *handler.OrderHandler
	prescriptionHandler *handler.PrescriptionHandler
	billingHandler      *handler.BillingHandler
	issueHandler        *handler.IssueHandler
	fileHandler         *handler.FileHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		roleHandler:         params.RoleHandler,
		profileHandler:      params.ProfileHandler,
		lookupHandler:       params.LookupHandler,
		inventoryHandler:    params.InventoryHandler,
		discountHandler:     params.DiscountHandler,
		couponHandler:       params.CouponHandler,
		orderHandler:        params.OrderHandler,
		prescriptionHandler: params.PrescriptionHandler,
		billingHandler:      params.BillingHandler,
		issueHandler:        params.IssueHandler,
		fileHandler:         params.FileHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// lookupRoutes maps URL segments to the reference lists they serve.
var lookupRoutes = []struct {
	path string
	kind entity.LookupKind
}{
	{"/categories", entity.LookupCategory},
	{"/tags", entity.LookupTag},
	{"/side-effects", entity.LookupSideEffect},
	{"/alternatives", entity.LookupAlternative},
	{"/discount-types", entity.LookupDiscountType},
	{"/issue-categories", entity.LookupIssueCategory},
	{"/address-types", entity.LookupAddressType},
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware
	read, write := auth.RequireScopes(entity.ScopeUserRead), auth.RequireScopes(entity.ScopeUserWrite)
	staffRead, staffWrite := auth.RequireScopes(entity.ScopeAdminRead), auth.RequireScopes(entity.ScopeAdminWrite)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/admin/login", r.authHandler.AdminLogin)
		authGroup.POST("/admin/register", r.authHandler.RegisterAdmin, auth.Authenticate, auth.RequireScopes(entity.ScopeRoleWrite))
		authGroup.POST("/admin/logout", r.authHandler.AdminLogout, auth.Authenticate)
		authGroup.POST("/admin/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.POST("/otp", r.authHandler.RequestOTP)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout, auth.Authenticate)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(auth.Authenticate) // All API v1 routes require authentication

	apiV1.GET("/me", r.authHandler.Me)

	rolesGroup := apiV1.Group("/roles")
	{
		rolesGroup.GET("", r.roleHandler.ListRoles, auth.RequireScopes(entity.ScopeRoleRead))
		rolesGroup.GET("/:id", r.roleHandler.GetRole, auth.RequireScopes(entity.ScopeRoleRead))
		rolesGroup.POST("", r.roleHandler.CreateRole, auth.RequireScopes(entity.ScopeRoleWrite))
		rolesGroup.PATCH("/:id", r.roleHandler.UpdateRole, auth.RequireScopes(entity.ScopeRoleWrite))
	}

	adminProfile := apiV1.Group("/admin/profile")
	{
		adminProfile.GET("", r.profileHandler.GetAdminProfile, auth.RequireScopes(entity.ScopeProfileRead))
		adminProfile.PATCH("", r.profileHandler.UpdateAdminProfile, auth.RequireScopes(entity.ScopeProfileWrite))
	}

	customerRead := auth.RequireScopes(entity.ScopeCustomerProfileRead)
	customerWrite := auth.RequireScopes(entity.ScopeCustomerProfileWrite)
	customerGroup := apiV1.Group("/customer")
	{
		customerGroup.GET("/profile", r.profileHandler.GetCustomerProfile, customerRead)
		customerGroup.PATCH("/profile", r.profileHandler.UpdateCustomerProfile, customerWrite)
		customerGroup.GET("/addresses", r.profileHandler.ListAddresses, customerRead)
		customerGroup.GET("/family-members", r.profileHandler.ListFamilyMembers, customerRead)
		customerGroup.POST("/family-members", r.profileHandler.AddFamilyMember, customerWrite)
		customerGroup.PATCH("/family-members/:id", r.profileHandler.UpdateFamilyMember, customerWrite)
		customerGroup.DELETE("/family-members/:id", r.profileHandler.DeleteFamilyMember, customerWrite)
	}

	// Reference lists are readable by every user and managed by staff.
	for _, route := range lookupRoutes {
		group := apiV1.Group(route.path)
		group.GET("", r.lookupHandler.List(route.kind), read)
		group.GET("/:id", r.lookupHandler.Get(route.kind), read)
		group.POST("", r.lookupHandler.Create(route.kind), staffWrite)
		group.PATCH("/:id", r.lookupHandler.Update(route.kind), staffWrite)
		group.DELETE("/:id", r.lookupHandler.Delete(route.kind), staffWrite)
	}

	medicinesGroup := apiV1.Group("/medicines")
	{
		medicinesGroup.GET("", r.inventoryHandler.ListMedicines, read)
		medicinesGroup.GET("/:id", r.inventoryHandler.GetMedicine, read)
		medicinesGroup.POST("", r.inventoryHandler.CreateMedicine, staffWrite)
		medicinesGroup.PATCH("/:id", r.inventoryHandler.UpdateMedicine, staffWrite)
		medicinesGroup.DELETE("/:id", r.inventoryHandler.DeleteMedicine, staffWrite)
		medicinesGroup.PUT("/:id/categories", r.inventoryHandler.ReplaceLinks(entity.LookupCategory), staffWrite)
		medicinesGroup.PUT("/:id/tags", r.inventoryHandler.ReplaceLinks(entity.LookupTag), staffWrite)
		medicinesGroup.PUT("/:id/side-effects", r.inventoryHandler.ReplaceLinks(entity.LookupSideEffect), staffWrite)
		medicinesGroup.PUT("/:id/alternatives", r.inventoryHandler.ReplaceLinks(entity.LookupAlternative), staffWrite)
	}

	batchesGroup := apiV1.Group("/batches", staffRead)
	{
		batchesGroup.GET("", r.inventoryHandler.ListBatches)
		batchesGroup.GET("/export", r.inventoryHandler.ExportBatches)
		batchesGroup.GET("/:id", r.inventoryHandler.GetBatch)
		batchesGroup.POST("", r.inventoryHandler.CreateBatch, staffWrite)
		batchesGroup.PATCH("/:id", r.inventoryHandler.UpdateBatch, staffWrite)
		batchesGroup.DELETE("/:id", r.inventoryHandler.DeleteBatch, staffWrite)
	}

	gstGroup := apiV1.Group("/gst-slabs")
	{
		gstGroup.GET("", r.inventoryHandler.ListGSTSlabs, read)
		gstGroup.GET("/:id", r.inventoryHandler.GetGSTSlab, read)
		gstGroup.POST("", r.inventoryHandler.CreateGSTSlab, staffWrite)
		gstGroup.PATCH("/:id", r.inventoryHandler.UpdateGSTSlab, staffWrite)
		gstGroup.DELETE("/:id", r.inventoryHandler.DeleteGSTSlab, staffWrite)
	}

	discountsGroup := apiV1.Group("/discounts", staffRead)
	{
		discountsGroup.GET("", r.discountHandler.ListDiscounts)
		discountsGroup.GET("/:id", r.discountHandler.GetDiscount)
		discountsGroup.POST("", r.discountHandler.CreateDiscount, staffWrite)
		discountsGroup.PATCH("/:id", r.discountHandler.UpdateDiscount, staffWrite)
		discountsGroup.DELETE("/:id", r.discountHandler.DeleteDiscount, staffWrite)
		discountsGroup.GET("/:id/parameters", r.discountHandler.ListParameters)
		discountsGroup.POST("/:id/parameters", r.discountHandler.AddParameter, staffWrite)
		discountsGroup.PATCH("/:id/parameters/:paramId", r.discountHandler.UpdateParameter, staffWrite)
		discountsGroup.DELETE("/:id/parameters/:paramId", r.discountHandler.DeleteParameter, staffWrite)
		discountsGroup.POST("/:id/medicines", r.discountHandler.AssignMedicines, staffWrite)
		discountsGroup.DELETE("/:id/medicines/:medicineId", r.discountHandler.RemoveMedicine, staffWrite)
		discountsGroup.POST("/:id/categories", r.discountHandler.AssignCategories, staffWrite)
		discountsGroup.DELETE("/:id/categories/:categoryId", r.discountHandler.RemoveCategory, staffWrite)
	}

	couponsGroup := apiV1.Group("/coupons")
	{
		couponsGroup.POST("/validate", r.couponHandler.ValidateCoupon, read)
		couponsGroup.POST("/quote", r.couponHandler.QuoteDiscount, read)
		couponsGroup.GET("", r.couponHandler.ListCoupons, staffRead)
		couponsGroup.GET("/:id", r.couponHandler.GetCoupon, staffRead)
		couponsGroup.GET("/:id/qr", r.couponHandler.CouponQR, staffRead)
		couponsGroup.POST("", r.couponHandler.CreateCoupon, staffWrite)
		couponsGroup.POST("/:id/usage", r.couponHandler.IncrementUsage, staffWrite)
		couponsGroup.DELETE("/:id", r.couponHandler.DeleteCoupon, staffWrite)
	}

	// Order routes check ownership in the handler; staff see every order.
	ordersGroup := apiV1.Group("/orders")
	{
		ordersGroup.GET("", r.orderHandler.ListOrders, read)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder, read)
		ordersGroup.POST("", r.orderHandler.CreateOrder, write)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus, write)
		ordersGroup.DELETE("/:id", r.orderHandler.DeleteOrder, staffWrite)
		ordersGroup.GET("/:id/items", r.orderHandler.ListItems, read)
		ordersGroup.POST("/:id/items", r.orderHandler.AddItem, write)
		ordersGroup.PATCH("/:id/items/:itemId", r.orderHandler.UpdateItem, write)
		ordersGroup.DELETE("/:id/items/:itemId", r.orderHandler.DeleteItem, write)
	}

	prescriptionsGroup := apiV1.Group("/prescriptions")
	{
		prescriptionsGroup.GET("", r.prescriptionHandler.List, read)
		prescriptionsGroup.GET("/:id", r.prescriptionHandler.Get, read)
		prescriptionsGroup.POST("", r.prescriptionHandler.Upload, write)
		prescriptionsGroup.PATCH("/:id/verify", r.prescriptionHandler.Verify, staffWrite)
		prescriptionsGroup.DELETE("/:id", r.prescriptionHandler.Delete, staffWrite)
	}

	invoicesGroup := apiV1.Group("/invoices")
	{
		invoicesGroup.GET("", r.billingHandler.ListInvoices, read)
		invoicesGroup.GET("/:id", r.billingHandler.GetInvoice, read)
		invoicesGroup.GET("/:id/pdf", r.billingHandler.DownloadInvoice, read)
		invoicesGroup.POST("", r.billingHandler.GenerateInvoice, staffWrite)
		invoicesGroup.PATCH("/:id/status", r.billingHandler.UpdateInvoiceStatus, staffWrite)
	}

	paymentsGroup := apiV1.Group("/payments")
	{
		paymentsGroup.GET("", r.billingHandler.ListOrderPayments, read)
		paymentsGroup.GET("/history", r.billingHandler.PaymentHistory, read)
		paymentsGroup.POST("", r.billingHandler.InitiatePayment, write)
		paymentsGroup.PATCH("/:id/status", r.billingHandler.UpdatePaymentStatus, staffWrite)
	}

	issuesGroup := apiV1.Group("/issues")
	{
		issuesGroup.GET("", r.issueHandler.ListIssues, read)
		issuesGroup.GET("/:id", r.issueHandler.GetIssue, read)
		issuesGroup.POST("", r.issueHandler.RaiseIssue, write)
		issuesGroup.PATCH("/:id/status", r.issueHandler.UpdateStatus, staffWrite)
		issuesGroup.PATCH("/:id/assignee", r.issueHandler.Assign, staffWrite)
		issuesGroup.DELETE("/:id", r.issueHandler.DeleteIssue, staffWrite)
		issuesGroup.GET("/:id/messages", r.issueHandler.ListMessages, read)
		issuesGroup.POST("/:id/messages", r.issueHandler.AddMessage, write)
		issuesGroup.GET("/:id/messages/:messageId/attachments", r.issueHandler.ListAttachments, read)
		issuesGroup.POST("/:id/messages/:messageId/attachments", r.issueHandler.UploadAttachment, write)
	}

	filesGroup := apiV1.Group("/files")
	{
		filesGroup.POST("", r.fileHandler.Upload, write)
		filesGroup.POST("/batch", r.fileHandler.UploadMany, write)
		filesGroup.GET("/archive", r.fileHandler.DownloadArchive, staffRead)
		filesGroup.GET("/:id", r.fileHandler.Download, read)
	}
}
