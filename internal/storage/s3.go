package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/americanreliabletech/support-portal/internal/config"
)

// S3Client is the subset of the S3 API the avatar store uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// AvatarStore uploads profile avatars to an S3 bucket and hands back public
// URLs for them.
type AvatarStore struct {
	client        S3Client
	bucket        string
	region        string
	publicBaseURL string
	now           func() time.Time
}

func NewAvatarStore(ctx context.Context, cfg config.StorageConfig) (*AvatarStore, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &AvatarStore{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		now:           time.Now,
	}, nil
}

// Upload stores the avatar under avatars/<userID>-<timestamp>.<ext> and
// returns its public URL. The extension comes from the uploaded filename.
func (s *AvatarStore) Upload(ctx context.Context, userID, fileName, contentType string, body []byte) (string, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".bin"
	}
	key := fmt.Sprintf("avatars/%s-%d%s", userID, s.now().Unix(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put avatar object: %w", err)
	}
	return s.publicURL(key), nil
}

// Remove deletes a previously uploaded avatar given its public URL. Unknown
// URLs are ignored so profile updates never fail on stale references.
func (s *AvatarStore) Remove(ctx context.Context, avatarURL string) error {
	prefix := s.publicURLPrefix()
	if !strings.HasPrefix(avatarURL, prefix) {
		return nil
	}
	key := strings.TrimPrefix(avatarURL, prefix)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete avatar object: %w", err)
	}
	return nil
}

func (s *AvatarStore) publicURL(key string) string {
	return s.publicURLPrefix() + key
}

func (s *AvatarStore) publicURLPrefix() string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
}
