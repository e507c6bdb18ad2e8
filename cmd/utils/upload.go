package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	MaxUploadSize = 10 << 20 // 10 MB

	// multipartOverhead allows for boundaries and form fields on top of the file.
	multipartOverhead = 1 << 20
)

var (
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrMissingFile     = errors.New("file is required")
)

var documentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// ContentTypeFor returns the MIME type of an accepted document extension.
func ContentTypeFor(filename string) (string, bool) {
	ct, ok := documentTypes[strings.ToLower(filepath.Ext(filename))]
	return ct, ok
}

// ParseUpload parses a multipart request, enforcing MaxUploadSize, and
// returns the file in field.
func ParseUpload(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, ErrFileTooLarge
		}
		return nil, nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, ErrMissingFile
		}
		return nil, nil, fmt.Errorf("read form file: %w", err)
	}

	if header.Size > MaxUploadSize {
		file.Close()
		return nil, nil, ErrFileTooLarge
	}
	return file, header, nil
}

// UploadErrorStatus maps ParseUpload errors to HTTP status codes.
func UploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
