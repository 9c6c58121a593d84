package handler

import (
	"context"
	"log/slog"
	"net/http"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// IssueHandlerParams holds dependencies for IssueHandler, injected by Fx.
type IssueHandlerParams struct {
	fx.In

	IssueUC usecase.IssueUsecase
	Logger  *slog.Logger
}

// IssueHandler serves support issues, their messages and attachments.
type IssueHandler struct {
	issueUC usecase.IssueUsecase
	logger  *slog.Logger
}

// NewIssueHandler is the constructor for IssueHandler
func NewIssueHandler(params IssueHandlerParams) *IssueHandler {
	return &IssueHandler{
		issueUC: params.IssueUC,
		logger:  params.Logger,
	}
}

// RaiseIssueRequest represents the request body for opening an issue
type RaiseIssueRequest struct {
	OrderID     *int64 `json:"order_id" validate:"omitempty,gt=0"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=2000"`
}

// UpdateIssueStatusRequest represents the request body for moving an issue along its lifecycle
type UpdateIssueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// AssignIssueRequest represents the request body for assigning an issue to staff
type AssignIssueRequest struct {
	AssigneeID int64 `json:"assignee_id" validate:"required,gt=0"`
}

// AddMessageRequest represents the request body for posting to an issue thread
type AddMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// loadIssue fetches an issue the caller may see.
func (h *IssueHandler) loadIssue(ctx context.Context, p *entity.Principal, id int64) (*entity.Issue, error) {
	issue, err := h.issueUC.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(p, issue.CustomerID) {
		return nil, domainerrors.ErrForbidden
	}

	return issue, nil
}

// RaiseIssue handles opening an issue for the caller
func (h *IssueHandler) RaiseIssue(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req RaiseIssueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid issue input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	issue, err := h.issueUC.RaiseIssue(c.Request().Context(), &usecase.RaiseIssueInput{
		CustomerID:  principal.UserID,
		OrderID:     req.OrderID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, issue)
}

// GetIssue handles retrieving one issue
func (h *IssueHandler) GetIssue(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	issue, err := h.loadIssue(c.Request().Context(), principal, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, issue)
}

// ListIssues handles the issue list. ?order_id= lists the issues of one order,
// otherwise the paged issues of the caller or of ?user_id= for staff.
func (h *IssueHandler) ListIssues(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orderID, err := optionalQueryID(c, "order_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if orderID != nil {
		issues, err := h.issueUC.ListOrderIssues(c.Request().Context(), *orderID)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		visible := make([]*entity.Issue, 0, len(issues))
		for _, issue := range issues {
			if canAccess(principal, issue.CustomerID) {
				visible = append(visible, issue)
			}
		}

		return response.Success(c, http.StatusOK, visible)
	}

	customerID, err := targetUserID(c, principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.issueUC.ListCustomerIssues(c.Request().Context(), customerID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// UpdateStatus handles moving an issue along its lifecycle
func (h *IssueHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateIssueStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	issue, err := h.issueUC.UpdateStatus(c.Request().Context(), id, entity.IssueStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, issue)
}

// Assign handles assigning an issue to a staff member
func (h *IssueHandler) Assign(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AssignIssueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	issue, err := h.issueUC.Assign(c.Request().Context(), id, req.AssigneeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, issue)
}

// DeleteIssue handles soft deleting an issue
func (h *IssueHandler) DeleteIssue(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.issueUC.DeleteIssue(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddMessage handles posting to the thread of an issue
func (h *IssueHandler) AddMessage(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if _, err := h.loadIssue(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	message, err := h.issueUC.AddMessage(c.Request().Context(), id, principal.UserID, req.Message)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, message)
}

// ListMessages handles listing the thread of an issue
func (h *IssueHandler) ListMessages(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if _, err := h.loadIssue(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	messages, err := h.issueUC.ListMessages(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, messages)
}

// UploadAttachment handles a multipart attachment upload in the "file" field
func (h *IssueHandler) UploadAttachment(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	messageID, err := pathID(c, "messageId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if _, err := h.loadIssue(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	fh, err := formFile(c, "file")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	upload, f, err := openUpload(fh)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer f.Close()

	attachment, err := h.issueUC.UploadAttachment(c.Request().Context(), id, messageID, principal.UserID, upload)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, attachment)
}

// ListAttachments handles listing the attachments of a message
func (h *IssueHandler) ListAttachments(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	messageID, err := pathID(c, "messageId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if _, err := h.loadIssue(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	attachments, err := h.issueUC.ListAttachments(c.Request().Context(), id, messageID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, attachments)
}
