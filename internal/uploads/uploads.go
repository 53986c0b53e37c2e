package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/storage"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

const DefaultMaxBytes = 5 * 1024 * 1024

// ErrTooLarge is returned for files above the size limit.
var ErrTooLarge = errors.New("file too large (max 5MB)")

// allowed maps accepted image types to the extension used for stored files.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service validates uploaded images and hands them to a Storage backend.
type Service struct {
	store    storage.Storage
	maxBytes int64
}

func NewService(store storage.Storage, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{store: store, maxBytes: maxBytes}
}

// MaxBytes is the accepted upload size.
func (s *Service) MaxBytes() int64 { return s.maxBytes }

// SaveImage stores an uploaded image under a random name and returns its URL.
// Both the declared content type and the sniffed one must be allowed images.
func (s *Service) SaveImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", models.Invalid("file", "no file uploaded")
	}
	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}
	declared := baseType(fh.Header.Get("Content-Type"))
	if _, ok := allowed[declared]; !ok {
		return "", models.Invalid("file", "unsupported image type")
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", models.Invalid("file", "empty file")
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	sniffed := baseType(mimetype.Detect(data).String())
	ext, ok := allowed[sniffed]
	if !ok {
		return "", models.Invalid("file", "unsupported image type")
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	url, err := s.store.Save(ctx, name, bytes.NewReader(data), int64(len(data)), sniffed)
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	logger.Infof("stored upload %s (%s, %d bytes)", name, sniffed, len(data))
	return url, nil
}

func baseType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}
