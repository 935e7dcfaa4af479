package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/siva9346/formating-app/internal/llm"
	"github.com/siva9346/formating-app/pkg/logger"
	"github.com/siva9346/formating-app/pkg/metrics"

	"github.com/google/uuid"
)

// Storage archives raw uploads. It is optional.
type Storage interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

// DefaultArchiveTimeout bounds a single archive upload.
const DefaultArchiveTimeout = 10 * time.Second

type Service struct {
	repo           Repository
	extractor      llm.Extractor
	storage        Storage
	archiveTimeout time.Duration
	now            func() time.Time
}

// NewService wires the upload pipeline. storage may be nil.
func NewService(repo Repository, extractor llm.Extractor, storage Storage) *Service {
	return &Service{
		repo:           repo,
		extractor:      extractor,
		storage:        storage,
		archiveTimeout: DefaultArchiveTimeout,
		now:            time.Now,
	}
}

// --------------------------------------------------
// Process an uploaded chat export
// --------------------------------------------------

// ProcessUpload extracts menu items from text and upserts them. It returns
// the number of items extracted, which is also the number written.
func (s *Service) ProcessUpload(
	ctx context.Context,
	filename string,
	text string,
) (int, error) {

	items, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return 0, err
	}

	s.archive(ctx, filename, text)

	if err := s.repo.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	if err := s.repo.InsertMenuItems(ctx, items); err != nil {
		return 0, err
	}

	logger.Info(ctx, "menu upload processed",
		"filename", filename,
		"bytes", len(text),
		"items", len(items),
	)

	return len(items), nil
}

// ListMenuItems returns every stored item, most recent first.
func (s *Service) ListMenuItems(ctx context.Context) ([]Record, error) {
	return s.repo.ListMenuItems(ctx)
}

// archive copies the raw upload to object storage within archiveTimeout.
// Failures are logged and counted but never fail the upload.
func (s *Service) archive(ctx context.Context, filename, text string) {
	if s.storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.archiveTimeout)
	defer cancel()

	key := ArchiveKey(s.now(), filename)
	location, err := s.storage.Upload(ctx, key, bytes.NewReader([]byte(text)), "text/plain; charset=utf-8")
	if err != nil {
		metrics.ArchiveFailures.Inc()
		logger.Error(ctx, "archive upload failed", err, "key", key)
		return
	}

	logger.Debug(ctx, "upload archived", "location", location)
}

// ArchiveKey is uploads/YYYY/MM/DD/<uuid><ext> with the extension lowercased.
func ArchiveKey(t time.Time, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf(
		"uploads/%s/%s%s",
		t.UTC().Format("2006/01/02"),
		uuid.New().String(),
		ext,
	)
}
