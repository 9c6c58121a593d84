package entity

import "time"

// FileAsset is the metadata row of a blob stored under a content-addressed key.
type FileAsset struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"file_name"`
	BlobKey     string    `json:"-"`
	Checksum    string    `json:"checksum"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  int64     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
