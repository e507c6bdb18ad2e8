// Package storage persists uploaded files and returns the URL they are
// reachable at. Objects are location-addressed by key.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/KAsare1/Kodefx-channels/config"
	"github.com/google/uuid"
)

const (
	PrefixIDDocuments = "id-documents"
	PrefixProfitPlans = "profit-plans"
)

// Store saves objects under a key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// NewKey builds a unique object key under prefix that keeps the original
// file extension.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s-%s%s",
		prefix,
		time.Now().Format("20060102"),
		uuid.New().String(),
		ext,
	)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.Storage, publicBaseURL string) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStore(cfg.UploadDir, publicBaseURL+"/uploads")
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
