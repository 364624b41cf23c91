package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/adapters/storage"
	"social-feed-api/pkg/lambda"
)

// formFile reads an uploaded multipart file from a gin request. Returns nil
// without error when the field is absent.
func formFile(c *gin.Context, name string) (*storage.File, error) {
	fileHeader, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &storage.File{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// lambdaFile converts a parsed multipart form part into a storage file.
// Returns nil when the field is absent.
func lambdaFile(form *lambda.Form, name string) *storage.File {
	file := form.File(name)
	if file == nil {
		return nil
	}
	return &storage.File{
		Name:        file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}
}
