package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

const defaultMimeType = "image/jpeg"

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// MimeTypeFor infers the upload MIME type from a file name, defaulting to
// image/jpeg.
func MimeTypeFor(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultMimeType
}

// FilePayload is a file that can write itself into a multipart form.
type FilePayload interface {
	AttachTo(ctx context.Context, w *multipart.Writer, field string) error
}

// BlobFetcher resolves an in-memory object URL to its bytes.
type BlobFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// BlobPayload is a file held as an object URL, the way a browser exposes a
// picked file.
type BlobPayload struct {
	URL     string
	Name    string
	Fetcher BlobFetcher
}

func (p BlobPayload) AttachTo(ctx context.Context, w *multipart.Writer, field string) error {
	if p.Fetcher == nil {
		return errors.New("blob fetcher is not configured")
	}
	data, err := p.Fetcher.Fetch(ctx, p.URL)
	if err != nil {
		return fmt.Errorf("fetch blob: %w", err)
	}

	part, err := w.CreatePart(fileHeader(field, p.Name, MimeTypeFor(p.Name)))
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

// PathReferencePayload is a file referenced by a local path or file:// URI,
// with the name and type reported by the picker.
type PathReferencePayload struct {
	URI  string
	Name string
	Type string
}

func (p PathReferencePayload) AttachTo(ctx context.Context, w *multipart.Writer, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(strings.TrimPrefix(p.URI, "file://"))
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	name := p.Name
	if name == "" {
		name = filepath.Base(f.Name())
	}
	contentType := p.Type
	if contentType == "" {
		contentType = MimeTypeFor(name)
	}

	part, err := w.CreatePart(fileHeader(field, name, contentType))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(field, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return h
}

// HTTPBlobFetcher fetches object URLs over HTTP.
type HTTPBlobFetcher struct {
	Client *http.Client
}

func (f HTTPBlobFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	httpClient := f.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
