package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/campusq/campusq-backend/internal/service"
)

// formAttachment reads an optional multipart file field into an Attachment.
// Returns (nil, nil) when the field is absent.
func formAttachment(c *gin.Context, field string) (*service.Attachment, error) {
	header, err := c.FormFile(field)
	if err != nil {
		// Absent file field is not an error for optional uploads.
		return nil, nil
	}
	return readAttachment(header)
}

func readAttachment(header *multipart.FileHeader) (*service.Attachment, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	return &service.Attachment{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}
