package menu

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/siva9346/formating-app/internal/llm"
)

type stubExtractor struct {
	items []llm.MenuItem
	err   error
	input string
}

func (s *stubExtractor) Extract(ctx context.Context, text string) ([]llm.MenuItem, error) {
	s.input = text
	return s.items, s.err
}

type stubStorage struct {
	keys  []string
	body  string
	err   error
	block bool
}

func (s *stubStorage) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	s.keys = append(s.keys, key)
	raw, _ := io.ReadAll(body)
	s.body = string(raw)
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.err != nil {
		return "", s.err
	}
	return "s3://bucket/" + key, nil
}

func TestProcessUpload_PersistsAndCounts(t *testing.T) {
	repo := NewInMemoryRepository()
	extractor := &stubExtractor{items: []llm.MenuItem{{DishName: "Butter Chicken"}, {DishName: "Naan"}}}
	service := NewService(repo, extractor, nil)

	count, err := service.ProcessUpload(context.Background(), "chat.txt", "some chat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
	if extractor.input != "some chat" {
		t.Fatalf("extractor got %q", extractor.input)
	}

	rows, _ := service.ListMenuItems(context.Background())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestProcessUpload_ExtractorErrorStopsPipeline(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, &stubExtractor{err: llm.ErrMissingAPIKey}, nil)

	_, err := service.ProcessUpload(context.Background(), "chat.txt", "x")
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if repo.SchemaCalls() != 0 {
		t.Fatal("schema should not be touched after an extraction failure")
	}
}

func TestProcessUpload_ArchivesBestEffort(t *testing.T) {
	storage := &stubStorage{err: errors.New("bucket unreachable")}
	service := NewService(NewInMemoryRepository(), &stubExtractor{}, storage)
	service.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

	count, err := service.ProcessUpload(context.Background(), "Chat.TXT", "raw export")
	if err != nil {
		t.Fatalf("archive failure must not fail the upload: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
	if len(storage.keys) != 1 || storage.body != "raw export" {
		t.Fatalf("expected one archive attempt with the raw text, got %v %q", storage.keys, storage.body)
	}

	pattern := regexp.MustCompile(`^uploads/2026/10/17/[0-9a-f-]{36}\.txt$`)
	if !pattern.MatchString(storage.keys[0]) {
		t.Fatalf("unexpected archive key %q", storage.keys[0])
	}
}

func TestProcessUpload_NoArchiveWhenExtractionFails(t *testing.T) {
	storage := &stubStorage{}
	service := NewService(NewInMemoryRepository(), &stubExtractor{err: llm.ErrMissingAPIKey}, storage)

	if _, err := service.ProcessUpload(context.Background(), "chat.txt", "x"); !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if len(storage.keys) != 0 {
		t.Fatalf("nothing should be archived before a successful extraction, got %v", storage.keys)
	}
}

func TestProcessUpload_HangingArchiveIsBounded(t *testing.T) {
	storage := &stubStorage{block: true}
	extractor := &stubExtractor{items: []llm.MenuItem{{DishName: "Naan"}}}
	service := NewService(NewInMemoryRepository(), extractor, storage)
	service.archiveTimeout = 20 * time.Millisecond

	done := make(chan struct{})
	var count int
	var err error
	go func() {
		count, err = service.ProcessUpload(context.Background(), "chat.txt", "Naan 40")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("upload blocked on the archive")
	}
	if err != nil || count != 1 {
		t.Fatalf("expected 1 item and no error, got %d %v", count, err)
	}
}

func TestValidateFileExtension(t *testing.T) {
	tests := map[string]bool{
		"chat.txt":       true,
		"WhatsApp.TXT":   true,
		"export.tar.txt": true,
		"chat.pdf":       false,
		"chat.txt.zip":   false,
		"chat":           false,
		"chat.text":      false,
	}
	for name, ok := range tests {
		err := ValidateFileExtension(name)
		if ok && err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if !ok && !errors.Is(err, ErrFileType) {
			t.Errorf("%s: expected ErrFileType, got %v", name, err)
		}
	}
}
