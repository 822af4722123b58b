package media

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	put    *s3.PutObjectInput
	del    *s3.DeleteObjectInput
	putErr error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.del = in
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Upload(t *testing.T) {
	fake := &fakeS3{}
	s := &S3{client: fake, bucket: "catalog", baseURL: "https://cdn.example.com", folder: Folder}

	ref, err := s.Upload(context.Background(), pngUpload(t, "shoe.png"), "123_abc")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if ref.Key != "products/123_abc.png" {
		t.Fatalf("key = %q", ref.Key)
	}
	if ref.URL != "https://cdn.example.com/products/123_abc.png" {
		t.Fatalf("url = %q", ref.URL)
	}
	if aws.ToString(fake.put.Bucket) != "catalog" || aws.ToString(fake.put.ContentType) != "image/png" {
		t.Fatalf("unexpected put input %+v", fake.put)
	}
}

func TestS3UploadError(t *testing.T) {
	s := &S3{client: &fakeS3{putErr: errors.New("AccessDenied")}, bucket: "catalog", baseURL: "https://cdn.example.com", folder: Folder}

	if _, err := s.Upload(context.Background(), pngUpload(t, "a.png"), "n"); err == nil {
		t.Fatal("expected error")
	}
}

func TestS3DestroyAndKeyFromURL(t *testing.T) {
	fake := &fakeS3{}
	s := &S3{client: fake, bucket: "catalog", baseURL: "https://cdn.example.com", folder: Folder}

	key, err := s.KeyFromURL("https://cdn.example.com/products/a.png")
	if err != nil || key != "products/a.png" {
		t.Fatalf("KeyFromURL = %q, %v", key, err)
	}
	if _, err := s.KeyFromURL("https://elsewhere.com/products/a.png"); err == nil {
		t.Fatal("expected error for a foreign URL")
	}

	if err := s.Destroy(context.Background(), key); err != nil {
		t.Fatal(err)
	}
	if aws.ToString(fake.del.Key) != "products/a.png" {
		t.Fatalf("deleted key = %q", aws.ToString(fake.del.Key))
	}
}
