package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps multipart form memory (8MB covers phone photos).
const maxUploadBytes = 8 << 20

// readUploadedImage pulls the single image file out of a multipart form.
// Accepts a few common field names so the web and mobile clients don't
// have to agree on one.
func readUploadedImage(c *gin.Context) ([]byte, error) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	form := c.Request.MultipartForm
	if form == nil {
		return nil, fmt.Errorf("multipart form is nil")
	}

	var file *multipart.FileHeader
	fieldNames := []string{"upload", "image", "file", "photo", "mugshot"}
	for _, fieldName := range fieldNames {
		if f := form.File[fieldName]; len(f) > 0 {
			file = f[0]
			break
		}
	}
	if file == nil {
		return nil, fmt.Errorf("no image file uploaded; expected one of field names %v", fieldNames)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}
