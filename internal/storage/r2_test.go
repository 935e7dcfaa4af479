package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		raw, _ := io.ReadAll(params.Body)
		f.body = string(raw)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestR2Client_Upload(t *testing.T) {
	fake := &fakePutter{}
	client := &R2Client{client: fake, bucket: "homechef-uploads"}

	location, err := client.Upload(context.Background(), "uploads/2026/10/17/a.txt", strings.NewReader("hello"), "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if location != "s3://homechef-uploads/uploads/2026/10/17/a.txt" {
		t.Errorf("unexpected location %q", location)
	}
	if *fake.input.Bucket != "homechef-uploads" || *fake.input.Key != "uploads/2026/10/17/a.txt" {
		t.Errorf("unexpected target %s/%s", *fake.input.Bucket, *fake.input.Key)
	}
	if *fake.input.ContentType != "text/plain" {
		t.Errorf("unexpected content type %q", *fake.input.ContentType)
	}
	if fake.body != "hello" {
		t.Errorf("unexpected body %q", fake.body)
	}
}

func TestR2Client_UploadError(t *testing.T) {
	client := &R2Client{client: &fakePutter{err: errors.New("access denied")}, bucket: "b"}

	_, err := client.Upload(context.Background(), "k", strings.NewReader(""), "")
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewR2Client_RequiresBucket(t *testing.T) {
	if _, err := NewR2Client(context.Background(), R2Config{Endpoint: "https://example.r2.cloudflarestorage.com"}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
