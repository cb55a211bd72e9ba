// Package storage keeps uploaded team logos in an S3 compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedContentType = errors.New("unsupported image content type")

// MaxLogoSize caps logo uploads at 5 MiB.
const MaxLogoSize = 5 << 20

var logoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// LogoKey returns a fresh object key for an entity's logo, for example
// "teams/12/3f0c...e1.png".
func LogoKey(entity string, id int, contentType string) (string, error) {
	ext, ok := logoExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedContentType
	}
	return path.Join(entity, strconv.Itoa(id), uuid.NewString()+ext), nil
}
