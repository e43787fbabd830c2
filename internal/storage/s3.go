package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/shopora/storage-service/internal/models"
)

// DefaultPresignExpiry is the validity window for presigned upload URLs.
// Expiry is the only cancellation mechanism for the presign flow.
const DefaultPresignExpiry = time.Hour

// S3Backend stores objects in an S3-compatible bucket. It supports direct
// server-side uploads and presigned-URL issuance for client-side uploads.
type S3Backend struct {
	client *s3.Client
	cfg    *models.StorageConfig
}

// NewS3Backend builds an S3 client from the resolved storage config. Custom
// endpoints (MinIO, R2 and other S3-compatible providers) are supported via
// the endpoint and force-path-style settings.
func NewS3Backend(ctx context.Context, cfg *models.StorageConfig) (*S3Backend, error) {
	if err := validateS3Config(cfg); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)),
	)
	if err != nil {
		return nil, &models.ExternalServiceError{Op: "load S3 configuration", Err: err}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeBase(cfg.S3Endpoint))
		}
		o.UsePathStyle = cfg.S3ForcePathStyle
	})

	return &S3Backend{client: client, cfg: cfg}, nil
}

func validateS3Config(cfg *models.StorageConfig) error {
	var missing []string
	if cfg.S3AccessKey == "" {
		missing = append(missing, "access key")
	}
	if cfg.S3SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if cfg.S3Region == "" {
		missing = append(missing, "region")
	}
	if cfg.S3Bucket == "" {
		missing = append(missing, "bucket")
	}
	if len(missing) > 0 {
		return models.NewConfigurationError("S3 configuration is incomplete: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Provider identifies this backend as the S3 one
func (b *S3Backend) Provider() models.StorageProvider {
	return models.ProviderS3
}

// Upload performs a direct server-side PutObject with key {folder}/{filename}
func (b *S3Backend) Upload(ctx context.Context, reader io.Reader, size int64, mimeType, folder, filename string) (string, error) {
	key := objectKey(folder, filename)

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.cfg.S3Bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(mimeType),
	})
	if err != nil {
		return "", &models.ExternalServiceError{Op: fmt.Sprintf("put object %q", key), Err: err}
	}

	return BuildS3PublicURL(b.cfg, key), nil
}

// Delete removes the object addressed by the URL. URLs that do not map back to
// a key under the current configuration are rejected; an already deleted
// object is a no-op success (S3 DeleteObject is idempotent).
func (b *S3Backend) Delete(ctx context.Context, url string) error {
	key, ok := ExtractS3KeyFromURL(b.cfg, url)
	if !ok {
		return fmt.Errorf("url %q does not belong to the configured S3 bucket", url)
	}

	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.cfg.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &models.ExternalServiceError{Op: fmt.Sprintf("delete object %q", key), Err: err}
	}

	return nil
}

// PresignUpload mints a time-boxed signed PUT URL for a client-side upload,
// plus the durable download URL the object will have once uploaded. The file
// bytes never transit the application server.
func (b *S3Backend) PresignUpload(ctx context.Context, originalName, contentType, folder string, expiresIn time.Duration) (*models.PresignedUpload, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultPresignExpiry
	}

	filename := GenerateFilename(originalName)
	key := objectKey(folder, filename)

	presignClient := s3.NewPresignClient(b.client)
	signed, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.cfg.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiresIn
	})
	if err != nil {
		return nil, &models.ExternalServiceError{Op: fmt.Sprintf("presign upload for %q", key), Err: err}
	}

	return &models.PresignedUpload{
		UploadURL:   signed.URL,
		DownloadURL: BuildS3PublicURL(b.cfg, key),
		Key:         key,
		Filename:    filename,
	}, nil
}

// TestConnection issues a HeadBucket call and classifies failures into
// plain-language diagnostics instead of surfacing raw SDK errors.
func (b *S3Backend) TestConnection(ctx context.Context) models.ConnectionTestResult {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.cfg.S3Bucket),
	})
	if err != nil {
		return models.ConnectionTestResult{Success: false, Message: classifyS3Error(err, b.cfg.S3Bucket)}
	}

	return models.ConnectionTestResult{
		Success: true,
		Message: fmt.Sprintf("successfully connected to bucket %q", b.cfg.S3Bucket),
	}
}

// classifyS3Error maps AWS error shapes to one of a fixed set of user-facing
// diagnostics.
func classifyS3Error(err error, bucket string) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return fmt.Sprintf("bucket %q was not found; check the bucket name", bucket)
		case "Forbidden", "AccessDenied":
			return "access denied; check the credentials and bucket permissions"
		case "InvalidAccessKeyId":
			return "the access key is not valid"
		case "SignatureDoesNotMatch":
			return "the secret key is not valid"
		}
	}

	return "could not reach the storage endpoint; check the endpoint and network"
}

// objectKey computes the bucket key for folder/filename. A folder is a logical
// grouping string, not a real filesystem concept on S3.
func objectKey(folder, filename string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return filename
	}
	return folder + "/" + filename
}
