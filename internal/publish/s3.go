// Package publish copies exported books to S3-compatible object storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/aosman25/islam-ai/internal/export"
)

const contentType = "text/html; charset=utf-8"

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Sink uploads every document of a book to raw/<bookId>/<name>.
type S3Sink struct {
	client objectPutter
	bucket string
}

func NewS3Sink(cfg Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &S3Sink{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Key is the object key of one document.
func Key(bookID int, name string) string {
	return fmt.Sprintf("raw/%d/%s", bookID, name)
}

func (s *S3Sink) Put(ctx context.Context, bookID int, docs []export.Document) error {
	for _, d := range docs {
		_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(Key(bookID, d.Name)),
			Body:        strings.NewReader(d.Content),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return fmt.Errorf("put %s: %w", Key(bookID, d.Name), err)
		}
	}
	return nil
}
