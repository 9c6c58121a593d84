package errors

import (
	"net/http"

	"medico/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

func notFound(code, message string) *BaseError {
	return NewBaseError(http.StatusNotFound, code, message, "")
}

func conflict(code, message string) *BaseError {
	return NewBaseError(http.StatusConflict, code, message, "")
}

func badRequest(code, message string) *BaseError {
	return NewBaseError(http.StatusBadRequest, code, message, "")
}

// General errors
var (
	ErrInternalError    = NewBaseError(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later", "")
	ErrValidation       = badRequest("VALIDATION_ERROR", "Request validation failed")
	ErrForbidden        = NewBaseError(http.StatusForbidden, "FORBIDDEN", "Access denied", "")
	ErrAlreadyDeleted   = conflict("ALREADY_DELETED", "Resource is already deleted")
	ErrInvalidReference = badRequest("INVALID_REFERENCE", "Referenced record does not exist")
)

// Authentication and authorization errors
var (
	ErrInvalidCredentials = NewBaseError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", "")
	ErrTokenInvalid       = NewBaseError(http.StatusUnauthorized, "TOKEN_INVALID", "Invalid or expired token", "")
	ErrTokenRevoked       = NewBaseError(http.StatusUnauthorized, "TOKEN_REVOKED", "Token has been revoked", "")
	ErrSessionInvalid     = NewBaseError(http.StatusUnauthorized, "SESSION_INVALID", "Session is expired or revoked", "")
	ErrUserInactive       = NewBaseError(http.StatusUnauthorized, "USER_INACTIVE", "User account is inactive", "")
	ErrInsufficientScope  = NewBaseError(http.StatusForbidden, "INSUFFICIENT_SCOPE", "Not enough permissions", "")
	ErrPasswordHashFailed = NewBaseError(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "Password processing failed", "")
	ErrWeakPassword       = badRequest("WEAK_PASSWORD", "Password does not meet the strength policy")

	ErrOTPNotFound = notFound("OTP_NOT_FOUND", "No OTP was requested for this number")
	ErrOTPInvalid  = badRequest("OTP_INVALID", "Invalid OTP")
	ErrOTPExpired  = badRequest("OTP_EXPIRED", "OTP expired")

	ErrResetTokenInvalid = badRequest("RESET_TOKEN_INVALID", "Invalid password reset token")
	ErrResetTokenUsed    = badRequest("RESET_TOKEN_USED", "Password reset token already used")
	ErrResetTokenExpired = badRequest("RESET_TOKEN_EXPIRED", "Password reset token expired")
)

// User, role and profile errors
var (
	ErrUserNotFound             = notFound("USER_NOT_FOUND", "User not found")
	ErrUserAlreadyExists        = conflict("USER_ALREADY_EXISTS", "User with this email or phone already exists")
	ErrRoleNotFound             = notFound("ROLE_NOT_FOUND", "Role not found")
	ErrRoleAlreadyExists        = conflict("ROLE_ALREADY_EXISTS", "Role already exists")
	ErrPermissionNotFound       = notFound("PERMISSION_NOT_FOUND", "Permission not found")
	ErrProfileNotFound          = notFound("PROFILE_NOT_FOUND", "Profile not found")
	ErrAddressNotFound          = notFound("ADDRESS_NOT_FOUND", "Address not found")
	ErrFamilyMemberNotFound     = notFound("FAMILY_MEMBER_NOT_FOUND", "Family member not found")
	ErrAddressTypeNotFound      = notFound("ADDRESS_TYPE_NOT_FOUND", "Address type not found")
	ErrAddressTypeAlreadyExists = conflict("ADDRESS_TYPE_ALREADY_EXISTS", "Address type already exists")
)

// Inventory errors
var (
	ErrMedicineNotFound         = notFound("MEDICINE_NOT_FOUND", "Medicine not found")
	ErrBatchNotFound            = notFound("BATCH_NOT_FOUND", "Medicine batch not found")
	ErrCategoryNotFound         = notFound("CATEGORY_NOT_FOUND", "Category not found")
	ErrCategoryAlreadyExists    = conflict("CATEGORY_ALREADY_EXISTS", "Category name already exists")
	ErrTagNotFound              = notFound("TAG_NOT_FOUND", "Tag not found")
	ErrTagAlreadyExists         = conflict("TAG_ALREADY_EXISTS", "Tag name already exists")
	ErrSideEffectNotFound       = notFound("SIDE_EFFECT_NOT_FOUND", "Side effect not found")
	ErrSideEffectAlreadyExists  = conflict("SIDE_EFFECT_ALREADY_EXISTS", "Side effect already exists")
	ErrAlternativeNotFound      = notFound("ALTERNATIVE_NOT_FOUND", "Alternative not found")
	ErrAlternativeAlreadyExists = conflict("ALTERNATIVE_ALREADY_EXISTS", "Alternative already exists")
	ErrGSTSlabNotFound          = notFound("GST_SLAB_NOT_FOUND", "GST slab not found")
	ErrGSTSlabAlreadyExists     = conflict("GST_SLAB_ALREADY_EXISTS", "GST slab with this HSN code already exists")
)

// Discount and coupon errors
var (
	ErrDiscountTypeNotFound        = notFound("DISCOUNT_TYPE_NOT_FOUND", "Discount type not found")
	ErrDiscountTypeAlreadyExists   = conflict("DISCOUNT_TYPE_ALREADY_EXISTS", "Discount type already exists")
	ErrDiscountNotFound            = notFound("DISCOUNT_NOT_FOUND", "Discount not found")
	ErrInvalidDiscountPeriod       = badRequest("INVALID_DISCOUNT_PERIOD", "End date must be after start date")
	ErrDiscountParameterNotFound   = notFound("DISCOUNT_PARAMETER_NOT_FOUND", "Discount parameter not found")
	ErrRelationNotFound            = notFound("RELATION_NOT_FOUND", "Relation not found")
	ErrCouponNotFound              = notFound("COUPON_NOT_FOUND", "Coupon not found")
	ErrCouponAlreadyExists         = conflict("COUPON_ALREADY_EXISTS", "Coupon code already exists")
	ErrCouponUsageLimitReached     = badRequest("COUPON_USAGE_LIMIT_REACHED", "Coupon usage limit reached")
	ErrCouponNotApplicable         = badRequest("COUPON_NOT_APPLICABLE", "Coupon cannot be applied")
	ErrMinimumPurchaseNotMet       = badRequest("MINIMUM_PURCHASE_NOT_MET", "Order amount is below the discount minimum")
	ErrInvalidCouponUsageIncrement = badRequest("INVALID_USAGE_INCREMENT", "Usage increment must be positive")
)

// Order, prescription, invoice and payment errors
var (
	ErrOrderNotFound              = notFound("ORDER_NOT_FOUND", "Order not found")
	ErrOrderItemNotFound          = notFound("ORDER_ITEM_NOT_FOUND", "Order item not found")
	ErrInvalidTransition          = badRequest("INVALID_TRANSITION", "Status transition is not allowed")
	ErrOrderNotEditable           = conflict("ORDER_NOT_EDITABLE", "Order items can only change while the order is pending")
	ErrOrderCancelled             = conflict("ORDER_CANCELLED", "Order is cancelled")
	ErrEmptyOrder                 = badRequest("EMPTY_ORDER", "Order must contain at least one item")
	ErrPrescriptionNotFound       = notFound("PRESCRIPTION_NOT_FOUND", "Prescription not found")
	ErrPrescriptionAlreadyDecided = conflict("PRESCRIPTION_ALREADY_DECIDED", "Prescription has already been verified or rejected")
	ErrInvoiceNotFound            = notFound("INVOICE_NOT_FOUND", "Invoice not found")
	ErrInvoiceAlreadyExists       = conflict("INVOICE_ALREADY_EXISTS", "Invoice already generated for this order")
	ErrPaymentNotFound            = notFound("PAYMENT_NOT_FOUND", "Payment not found")
)

// Issue errors
var (
	ErrIssueNotFound              = notFound("ISSUE_NOT_FOUND", "Issue not found")
	ErrIssueCategoryNotFound      = notFound("ISSUE_CATEGORY_NOT_FOUND", "Issue category not found")
	ErrIssueCategoryAlreadyExists = conflict("ISSUE_CATEGORY_ALREADY_EXISTS", "Issue category already exists")
	ErrIssueMessageNotFound       = notFound("ISSUE_MESSAGE_NOT_FOUND", "Issue message not found")
)

// File errors
var (
	ErrFileNotFound        = notFound("FILE_NOT_FOUND", "File not found")
	ErrUnsupportedFileType = NewBaseError(http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "File type is not allowed", "")
	ErrFileTooLarge        = NewBaseError(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum allowed size", "")
	ErrTooManyFiles        = badRequest("TOO_MANY_FILES", "Too many files in one request")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// Unwrap exposes the driver error to errors.Is and errors.As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
