// Package media validates uploaded images and stores them on local disk or
// in an S3-compatible bucket.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/google/uuid"
)

// MaxUploadBytes is the per-file size limit.
const MaxUploadBytes = 5_000_000

var (
	ErrNotImage = errors.New("media: not an image")
	ErrTooLarge = errors.New("media: file exceeds upload limit")
)

// Upload is a validated image held in memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Storage persists uploads and hands back the URL clients fetch them from.
type Storage interface {
	Put(ctx context.Context, u Upload) (string, error)

	// Delete removes the object behind url. URLs this storage did not
	// produce are ignored.
	Delete(ctx context.Context, url string) error
}

// NewUpload sniffs data and rejects anything that is not an image or is
// larger than MaxUploadBytes.
func NewUpload(filename string, data []byte) (Upload, error) {
	if len(data) > MaxUploadBytes {
		return Upload{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Upload{}, ErrNotImage
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return Upload{}, ErrNotImage
	}

	return Upload{Filename: filename, ContentType: ct, Data: data}, nil
}

// FromFileHeader reads and validates one multipart file part.
func FromFileHeader(fh *multipart.FileHeader) (Upload, error) {
	if fh.Size > MaxUploadBytes {
		return Upload{}, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("media: open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("media: read upload: %w", err)
	}

	return NewUpload(fh.Filename, data)
}

// imageExts maps sniffed image types to the extension stored objects get.
// The client's filename is never trusted for this.
var imageExts = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"image/bmp":                ".bmp",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
	"image/avif":               ".avif",
}

// Key returns a fresh object key whose extension follows ContentType.
// Unknown types get no extension.
func (u Upload) Key() string {
	return uuid.NewString() + imageExts[u.ContentType]
}

// KeyFromURL extracts the object key from a URL built by a Storage.
func KeyFromURL(url string) string {
	return path.Base(url)
}

// PutAll stores every upload. If one fails, the ones already stored are
// deleted again before the error is returned.
func PutAll(ctx context.Context, s Storage, uploads []Upload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.Put(ctx, u)
		if err != nil {
			DeleteAll(ctx, s, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// DeleteAll removes every url, logging failures instead of returning them.
func DeleteAll(ctx context.Context, s Storage, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.Delete(ctx, url); err != nil {
			slogx.FromContext(ctx).Warn("failed to delete media", slog.String("url", url), slog.Any("error", err))
		}
	}
}
