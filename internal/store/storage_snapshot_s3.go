package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-dash-sync/internal/config"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/models"
)

const snapshotKeyPrefix = "snapshots/"

// s3SnapshotStorage keeps one JSON object per owner under snapshots/.
type s3SnapshotStorage struct {
	client *s3.Client
	bucket string
	logger *logger.Logger
}

// NewS3SnapshotStorage constructs the "s3" blob driver. Static credentials
// are used when configured, the default AWS chain otherwise. httpClient may
// be nil.
func NewS3SnapshotStorage(ctx context.Context, cfg config.S3, httpClient *http.Client, log *logger.Logger) (SnapshotBlobStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket required", ErrObjectStorage)
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3SnapshotStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3 compatible servers often reject streaming checksums
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
		if httpClient != nil {
			o.HTTPClient = httpClient
		}
	})
	log.Info().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("s3 snapshot storage configured")

	return &s3SnapshotStorage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

func snapshotObjectKey(owner string) string {
	return snapshotKeyPrefix + owner + ".json"
}

func (s *s3SnapshotStorage) GetSnapshot(ctx context.Context, owner string) (models.StoredSnapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(snapshotObjectKey(owner)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return models.StoredSnapshot{}, ErrSnapshotNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*s3SnapshotStorage.GetSnapshot").Msg("error getting object")
		return models.StoredSnapshot{}, fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	defer out.Body.Close()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("%w: reading body: %w", ErrObjectStorage, err)
	}

	snapshot := models.StoredSnapshot{Owner: owner, Payload: payload}
	if out.LastModified != nil {
		snapshot.UpdatedAt = *out.LastModified
	}
	return snapshot, nil
}

func (s *s3SnapshotStorage) PutSnapshot(ctx context.Context, snapshot models.StoredSnapshot) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(snapshotObjectKey(snapshot.Owner)),
		Body:        bytes.NewReader(snapshot.Payload),
		ContentType: aws.String("application/json"),
		Metadata:    map[string]string{"updated-at": snapshot.UpdatedAt.UTC().Format(time.RFC3339)},
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3SnapshotStorage.PutSnapshot").Msg("error putting object")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}

	return nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var withStatus interface{ HTTPStatusCode() int }
	return errors.As(err, &withStatus) && withStatus.HTTPStatusCode() == http.StatusNotFound
}
