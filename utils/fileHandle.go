package utils

import (
	"fmt"
	"io"
	"mime/multipart"
)

// maxUploadSize caps certificate images at 10MB
const maxUploadSize = 10 << 20

// ReadUploadedFile reads an uploaded multipart file fully into memory,
// enforcing the size cap.
func ReadUploadedFile(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxUploadSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", file.Size, maxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadSize {
		return nil, fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	return data, nil
}
