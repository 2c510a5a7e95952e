package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/greentrack/greentrack-api/internal/pkg/imaging"
	"github.com/greentrack/greentrack-api/internal/pkg/storage"
)

var (
	ErrFileRequired    = errors.New("file is required")
	ErrInvalidFileType = errors.New("invalid file type, only jpg and png allowed")
	ErrFileTooLarge    = errors.New("file too large")
)

// AllowedExtensions for report and proof photos
var AllowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// MaxFileSize in bytes (5MB)
const MaxFileSize = 5 * 1024 * 1024

// Service handles photo intake: validation, downscaling, storage
type Service struct {
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates upload service
func NewService(store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{
		store:     store,
		processor: processor,
	}
}

// SavePhoto validates and stores an uploaded photo, returning its storage key.
// The photo is decoded and downscaled before it is written; prefix groups the
// key by purpose (e.g. "reports", "proofs").
func (s *Service) SavePhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	if header == nil || header.Filename == "" {
		return "", ErrFileRequired
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !AllowedExtensions[ext] {
		return "", ErrInvalidFileType
	}

	if header.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	processed, err := s.processor.Process(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFileType, err)
	}

	if processed.ContentType == "image/png" {
		ext = ".png"
	} else {
		ext = ".jpg"
	}

	key := fmt.Sprintf("%s/%s/%s%s",
		prefix,
		time.Now().Format("2006/01"),
		uuid.New().String(),
		ext,
	)

	if err := s.store.Save(ctx, key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	log.Debug().
		Str("key", key).
		Int("width", processed.Width).
		Int("height", processed.Height).
		Msg("Photo stored")

	return key, nil
}

// URL returns the public URL for a stored photo key
func (s *Service) URL(key string) string {
	return s.store.GetURL(key)
}
