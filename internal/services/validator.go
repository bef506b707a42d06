package services

import (
	"fmt"
	"mime/multipart"
)

const AllowedContentType = "application/pdf"

type FileValidator interface {
	Validate(file *multipart.FileHeader) error
}

type fileValidator struct {
	maxFileSize int64
}

func NewFileValidator(maxFileSize int64) FileValidator {
	return &fileValidator{maxFileSize: maxFileSize}
}

// Validate checks the declared content type and size from the part header.
// The file body is never opened.
func (v *fileValidator) Validate(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if contentType != AllowedContentType {
		return badRequest(fmt.Sprintf("Invalid file type '%s'. Only PDF files are allowed.", contentType), nil)
	}

	if file.Size > v.maxFileSize {
		return badRequest(fmt.Sprintf(
			"File '%s' too large (%dKB). Max size is %dMB",
			file.Filename,
			file.Size/1024,
			v.maxFileSize/(1024*1024),
		), nil)
	}

	return nil
}
