package validation

import (
	"strings"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// CreateFile checks the shape of upload metadata. The size limit and MIME
// allow-list are enforced by the upload operation after the parent status
// check.
func (v *Validator) CreateFile(in dto.CreateFileAttachmentInput) (*model.FileAttachment, error) {
	c := v.newCollector()

	file := &model.FileAttachment{
		Filename:         strings.TrimSpace(in.Filename),
		OriginalFilename: strings.TrimSpace(in.OriginalFilename),
		FilePath:         strings.TrimSpace(in.FilePath),
		FileSize:         in.FileSize,
		MimeType:         strings.ToLower(strings.TrimSpace(in.MimeType)),
	}

	c.check("filename", file.Filename, "required,notblank,max=255")
	c.check("original_filename", file.OriginalFilename, "required,notblank,max=255")
	c.check("file_path", file.FilePath, "required,notblank,max=1024")
	c.check("file_size", file.FileSize, "gt=0")
	c.check("mime_type", file.MimeType, "required,max=255")

	if err := c.err(); err != nil {
		return nil, err
	}
	return file, nil
}
