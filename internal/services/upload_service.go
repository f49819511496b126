package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
)

// UploadService accepts inline-encoded images for form headers and question
// illustrations. The data URL is stored as-is; the core never interprets it.
type UploadService interface {
	StoreInlineImage(ctx context.Context, dataURL string) (string, error)
}

type uploadService struct {
	logger   *slog.Logger
	maxBytes int64
}

func NewUploadService(logger *slog.Logger, maxBytes int64) UploadService {
	return &uploadService{
		logger:   logger,
		maxBytes: maxBytes,
	}
}

func (s *uploadService) StoreInlineImage(ctx context.Context, dataURL string) (string, error) {
	if dataURL == "" {
		return "", fmt.Errorf("%w: no image data provided", ErrUploadInvalidImage)
	}

	if !strings.HasPrefix(dataURL, "data:image/") {
		return "", fmt.Errorf("%w: must be a base64 encoded image starting with data:image/", ErrUploadInvalidImage)
	}

	_, encoded, found := strings.Cut(dataURL, ",")
	if !found || encoded == "" {
		return "", fmt.Errorf("%w: missing base64 payload", ErrUploadInvalidImage)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUploadInvalidImage, err)
	}

	if int64(len(decoded)) > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrUploadTooLarge, len(decoded), s.maxBytes)
	}

	s.logger.Info("Inline image accepted", "bytes", len(decoded))
	return dataURL, nil
}
