package dto

// CreateFileAttachmentInput is the upload metadata. Size and type are taken
// as declared; content is never inspected.
type CreateFileAttachmentInput struct {
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	FilePath         string `json:"file_path"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
}
