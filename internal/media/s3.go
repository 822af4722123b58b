package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores images in a bucket and serves them from a public base URL
// (bucket website, CloudFront, or any CDN in front of it).
type S3 struct {
	client  s3API
	bucket  string
	baseURL string
	folder  string
}

func NewS3(ctx context.Context, region, bucket, baseURL, folder string) (*S3, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS default config: %w", err)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		folder:  folder,
	}, nil
}

func (s *S3) Name() string { return "s3" }

func (s *S3) Upload(ctx context.Context, up *Upload, name string) (Ref, error) {
	key := name + extension(up)
	if s.folder != "" {
		key = s.folder + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          up.Body,
		ContentType:   aws.String(up.ContentType),
		ContentLength: aws.Int64(up.Size),
	})
	if err != nil {
		return Ref{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return Ref{URL: s.baseURL + "/" + key, Key: key}, nil
}

func (s *S3) Destroy(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object %s: %w", key, err)
	}
	return nil
}

// KeyFromURL strips the public base URL.
func (s *S3) KeyFromURL(url string) (string, error) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", fmt.Errorf("url %q is not served from %s", url, s.baseURL)
	}
	return strings.TrimPrefix(url, prefix), nil
}
