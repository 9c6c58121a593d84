package model

import "time"

// IssueModel mirrors the 'issues' table.
type IssueModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CustomerID  int64  `gorm:"not null;index"`
	OrderID     *int64 `gorm:"index"`
	CategoryID  int64  `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"type:varchar(20);not null"`
	AssignedTo  *int64
	OpenedAt    time.Time `gorm:"not null"`
	ClosedAt    *time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (IssueModel) TableName() string {
	return "issues"
}

// IssueMessageModel mirrors the 'issue_messages' table.
type IssueMessageModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	IssueID     int64  `gorm:"not null;index"`
	SenderID    int64  `gorm:"not null"`
	Message     string `gorm:"type:text;not null"`
	MessageType string `gorm:"type:varchar(50)"`
	CreatedAt   time.Time
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (IssueMessageModel) TableName() string {
	return "issue_messages"
}

// IssueAttachmentModel mirrors the 'issue_attachments' table.
type IssueAttachmentModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	MessageID   int64     `gorm:"not null;index"`
	FileAssetID int64     `gorm:"not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	FileType    string    `gorm:"type:varchar(100)"`
	UploadedAt  time.Time `gorm:"not null"`
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (IssueAttachmentModel) TableName() string {
	return "issue_attachments"
}

// FileAssetModel mirrors the 'file_assets' table. Several rows may share a blob key.
type FileAssetModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	FileName    string `gorm:"type:varchar(255);not null"`
	BlobKey     string `gorm:"type:varchar(255);not null;index"`
	Checksum    string `gorm:"type:varchar(64);not null"`
	ContentType string `gorm:"type:varchar(100);not null"`
	SizeBytes   int64  `gorm:"not null"`
	UploadedBy  int64  `gorm:"not null;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FileAssetModel) TableName() string {
	return "file_assets"
}
