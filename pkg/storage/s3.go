package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const (
	// DefaultPartSize is the multipart chunk size (50MB).
	DefaultPartSize = 50 * 1024 * 1024
	// DefaultEndpoint is the bucket endpoint; %s is the bucket region.
	DefaultEndpoint = "https://cos.%s.myqcloud.com"
)

// AllowedTypes maps accepted MIME types to the extension used in object keys.
var AllowedTypes = map[string]string{
	"image/jpeg":      "jpeg",
	"image/jpg":       "jpeg",
	"image/png":       "png",
	"image/webp":      "webp",
	"image/gif":       "gif",
	"image/avif":      "avif",
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
}

// ErrUnsupportedType is returned for a MIME type outside AllowedTypes.
var ErrUnsupportedType = errors.New("storage: unsupported content type")

// Credentials are the short-lived keys the backend signs for one object.
type Credentials struct {
	SecretID     string
	SecretKey    string
	SessionToken string
	Expires      time.Time
	Bucket       string
	Region       string
	Key          string
}

// Config holds uploader settings.
type Config struct {
	EndpointTemplate string
	PartSize         int64
}

// Uploader streams objects to an S3-compatible bucket using per-upload
// temporary credentials.
type Uploader struct {
	cfg    Config
	logger *zap.Logger
}

// NewUploader creates an uploader. Zero config values take the defaults.
func NewUploader(cfg Config, logger *zap.Logger) *Uploader {
	if cfg.EndpointTemplate == "" {
		cfg.EndpointTemplate = DefaultEndpoint
	}
	if cfg.PartSize < manager.MinUploadPartSize {
		cfg.PartSize = DefaultPartSize
	}
	return &Uploader{cfg: cfg, logger: logger}
}

// ExtensionFor returns the key extension of an allowed content type.
func ExtensionFor(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := AllowedTypes[ct]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return ext, nil
}

// Endpoint returns the bucket endpoint for region.
func (u *Uploader) Endpoint(region string) string {
	if strings.Contains(u.cfg.EndpointTemplate, "%s") {
		return fmt.Sprintf(u.cfg.EndpointTemplate, region)
	}
	return u.cfg.EndpointTemplate
}

// Upload streams body to creds.Key. size may be 0 when unknown.
func (u *Uploader) Upload(ctx context.Context, creds Credentials, contentType string, body io.Reader, size int64) error {
	if creds.Bucket == "" || creds.Key == "" {
		return errors.New("storage: credentials carry no bucket or key")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(creds.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.SecretID, creds.SecretKey, creds.SessionToken,
		)),
	)
	if err != nil {
		return fmt.Errorf("load storage config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.Endpoint(creds.Region))
	})
	uploader := manager.NewUploader(client, func(m *manager.Uploader) {
		m.PartSize = u.cfg.PartSize
	})

	input := &s3.PutObjectInput{
		Bucket:      aws.String(creds.Bucket),
		Key:         aws.String(strings.TrimPrefix(path.Clean("/"+creds.Key), "/")),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("upload %s: %w", creds.Key, err)
	}
	u.logger.Info("object uploaded",
		zap.String("bucket", creds.Bucket),
		zap.String("key", creds.Key),
		zap.String("content_type", contentType),
		zap.Int64("size", size),
	)
	return nil
}
