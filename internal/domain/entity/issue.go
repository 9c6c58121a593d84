package entity

import "time"

// IssueStatus is the support state of a customer issue.
type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

var issueTransitions = transitionTable[IssueStatus]{
	IssueOpen:       {IssueInProgress, IssueResolved, IssueClosed},
	IssueInProgress: {IssueResolved, IssueClosed},
	IssueResolved:   {IssueClosed, IssueInProgress},
}

// IsValid checks if the IssueStatus is a known value.
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether an issue in s may move to next.
func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	return issueTransitions.allows(s, next)
}

// StampsClosedAt reports whether entering s records the closing time.
func (s IssueStatus) StampsClosedAt() bool {
	return s == IssueResolved || s == IssueClosed
}

// Issue is a support ticket raised by a customer, optionally about an order.
type Issue struct {
	ID          int64       `json:"id"`
	CustomerID  int64       `json:"customer_id"`
	OrderID     *int64      `json:"order_id,omitempty"`
	CategoryID  int64       `json:"category_id"`
	Description string      `json:"description"`
	Status      IssueStatus `json:"status"`
	AssignedTo  *int64      `json:"assigned_to,omitempty"`
	OpenedAt    time.Time   `json:"opened_at"`
	ClosedAt    *time.Time  `json:"closed_at,omitempty"`
}

// Message types of an issue conversation.
const (
	IssueMessageText       = "text"
	IssueMessageAttachment = "attachment"
)

// IssueMessage is one entry of the conversation on an issue.
type IssueMessage struct {
	ID          int64             `json:"id"`
	IssueID     int64             `json:"issue_id"`
	SenderID    int64             `json:"sender_id"`
	Message     string            `json:"message"`
	MessageType string            `json:"message_type"`
	Attachments []IssueAttachment `json:"attachments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// IssueAttachment links an uploaded file to an issue message.
type IssueAttachment struct {
	ID          int64     `json:"id"`
	MessageID   int64     `json:"message_id"`
	FileAssetID int64     `json:"file_asset_id"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
