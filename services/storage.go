package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tidyhome-services/blog-backend/config"
	"github.com/tidyhome-services/blog-backend/errs"
)

// MaxImageSize caps uploaded image files at 5 MB.
const MaxImageSize = 5 * 1024 * 1024

// imageExtensions maps the accepted content types to the extension used for
// the stored object key.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore accepts an uploaded image and returns a persistent public URL.
// The post pipeline stores only that URL string; file-type and size
// constraints are enforced here, not by the post validator.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}

// checkImage applies the shared type/size constraints and returns the object
// key extension for the content type.
func checkImage(contentType string, size int64) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", errs.NewBadRequestError(fmt.Sprintf("unsupported image type %q", contentType))
	}
	if size > MaxImageSize {
		return "", errs.NewBadRequestError("image exceeds the 5MB size limit")
	}
	return ext, nil
}

// SpacesStore uploads images to an S3-compatible bucket (DigitalOcean Spaces
// in production).
type SpacesStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewSpacesStore builds an ImageStore from SPACES_* configuration.
func NewSpacesStore(ctx context.Context, cfg map[string]string) (*SpacesStore, error) {
	endpoint := config.GetString(cfg, "SPACES_ENDPOINT", "")
	region := config.GetString(cfg, "SPACES_REGION", "us-east-1")
	bucket := config.GetString(cfg, "SPACES_BUCKET", "")
	key := config.GetString(cfg, "SPACES_KEY", "")
	secret := config.GetString(cfg, "SPACES_SECRET", "")
	if endpoint == "" || bucket == "" || key == "" || secret == "" {
		return nil, fmt.Errorf("incomplete Spaces configuration (SPACES_ENDPOINT, SPACES_BUCKET, SPACES_KEY, SPACES_SECRET)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicBase := config.GetString(cfg, "SPACES_PUBLIC_URL",
		fmt.Sprintf("https://%s.%s", bucket, strings.TrimPrefix(endpoint, "https://")))

	return &SpacesStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *SpacesStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	ext, err := checkImage(contentType, size)
	if err != nil {
		return "", err
	}

	objectKey := "uploads/" + uuid.NewString() + ext
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", errs.NewInternalError("image upload failed", err)
	}

	url := s.publicBaseURL + "/" + objectKey
	log.Info().Str("key", objectKey).Str("originalName", filename).Msg("Uploaded image")
	return url, nil
}

// LocalStore writes images to a directory on disk and serves them under
// /uploads. Used for development and tests where no bucket is configured.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	ext, err := checkImage(contentType, size)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errs.NewInternalError("image upload failed", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(body, MaxImageSize+1)); err != nil {
		return "", errs.NewInternalError("image upload failed", err)
	}

	return "/uploads/" + name, nil
}
