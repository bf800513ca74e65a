package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/observability"
)

// Upload validation errors.
var (
	ErrUploadTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
	ErrUploadMissing        = errors.New("file is required")
)

// FileStorage abstracts upload destinations. The returned value is the public
// path clients use to fetch the file.
type FileStorage interface {
	Save(ctx context.Context, name string, reader io.Reader) (string, error)
}

// DiskStorage stores uploads on the local filesystem under a single
// directory served at /api/uploads.
type DiskStorage struct {
	Dir string
}

// Save writes the file and returns its canonical public path.
func (d DiskStorage) Save(_ context.Context, name string, reader io.Reader) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", err
	}
	target := filepath.Join(d.Dir, name)
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, reader); err != nil {
		os.Remove(target)
		return "", err
	}
	return "/api/uploads/" + name, nil
}

// UploadService validates and stores user media uploads.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error)
}

type uploadService struct {
	storage FileStorage
	logger  zerolog.Logger
	maxSize int64
	tracer  trace.Tracer
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		tracer:  otel.Tracer("github.com/eunoia-app/eunoia-api/internal/service/upload"),
	}
}

// Upload accepts image files only. The stored name is a random UUID with the
// extension implied by the sniffed content type, never the client-supplied
// file name.
func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "upload.store")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if file == nil {
		span.RecordError(ErrUploadMissing)
		span.SetStatus(codes.Error, "validation failed")
		return dto.UploadResponse{}, ErrUploadMissing
	}

	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.UploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.UploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	ext, ok := imageExtension(mime.String())
	span.SetAttributes(attribute.String("upload.detected_mime", mime.String()))
	if !ok {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrUploadTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	url, err := s.storage.Save(ctx, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.UploadResponse{}, err
	}

	observability.UploadRequests().WithLabelValues(mime.String()).Inc()
	span.SetStatus(codes.Ok, "stored")

	return dto.UploadResponse{FileURL: url}, nil
}

func imageExtension(mime string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/png":
		return ".png", true
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}
