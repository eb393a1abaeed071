package model

import "time"

// MaxFileSize is the largest accepted attachment, in bytes.
const MaxFileSize int64 = 50 * 1024 * 1024

// AllowedMimeTypes are the accepted attachment content types.
var AllowedMimeTypes = map[string]struct{}{
	"application/pdf":          {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"text/csv":           {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
	"image/jpeg": {},
	"image/png":  {},
}

// IsAllowedMimeType reports whether mimeType may be attached.
func IsAllowedMimeType(mimeType string) bool {
	_, ok := AllowedMimeTypes[mimeType]
	return ok
}

// FileAttachment is the metadata of a supporting document. The bytes live in
// the file store at FilePath.
type FileAttachment struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BudgetRequestID  int64     `gorm:"not null;index:idx_file_attachments_request" json:"budget_request_id"`
	Filename         string    `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	FilePath         string    `gorm:"size:1024;not null" json:"file_path"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	MimeType         string    `gorm:"size:255;not null" json:"mime_type"`
	UploadedAt       time.Time `gorm:"not null" json:"uploaded_at"`
}

// TableName specifies the table name for GORM
func (FileAttachment) TableName() string {
	return "file_attachments"
}
