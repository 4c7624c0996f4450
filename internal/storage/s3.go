package storage

import (
	"alcyxob/win-tracker/internal/config"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const snapshotContentType = "application/json"

// s3Archive implements SnapshotArchive using an S3-compatible backend.
type s3Archive struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucketName    string
	expiry        time.Duration
}

// NewS3Archive creates a new S3 snapshot archive.
func NewS3Archive(cfg config.S3Config) (SnapshotArchive, error) {
	endpoint := endpointURL(cfg.Endpoint, cfg.UseSSL)

	// Custom resolver for S3-compatible endpoints (MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fall back to default AWS endpoint resolution
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	// Path-style addressing is required by most S3-compatible services.
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignedURLExpiry
	}

	log.Info("S3 snapshot archive initialized", "endpoint", endpoint, "bucket", cfg.BucketName)

	return &s3Archive{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    cfg.BucketName,
		expiry:        expiry,
	}, nil
}

// endpointURL adds a scheme to a bare host:port endpoint, https unless
// useSSL is off. Endpoints that already carry a scheme are kept as is.
func endpointURL(endpoint string, useSSL bool) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// SnapshotKey builds the object key for an archived snapshot:
// snapshots/<userId>/<timestamp>-<uuid>.json
func SnapshotKey(userID string, at time.Time) string {
	name := fmt.Sprintf("%s-%s.json", at.UTC().Format("20060102T150405Z"), uuid.NewString())
	return userPrefix(userID) + name
}

func userPrefix(userID string) string {
	return path.Join("snapshots", userID) + "/"
}

// PutSnapshot uploads the snapshot JSON.
func (s *s3Archive) PutSnapshot(ctx context.Context, userID string, payload []byte, at time.Time) (string, error) {
	key := SnapshotKey(userID, at)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String(snapshotContentType),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return "", fmt.Errorf("put snapshot %q: %w", key, err)
	}
	return key, nil
}

// GeneratePresignedDownloadURL creates a temporary URL for downloading (GET).
func (s *s3Archive) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = s.expiry
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign GET %q: %w", objectKey, err)
	}

	return req.URL, nil
}

// DeleteUserSnapshots lists everything under the user's prefix and removes
// it page by page.
func (s *s3Archive) DeleteUserSnapshots(ctx context.Context, userID string) (int, error) {
	prefix := userPrefix(userID)
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})

	deleted := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, fmt.Errorf("list %q in bucket %q: %w", prefix, s.bucketName, err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
		_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucketName),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return deleted, fmt.Errorf("delete %d objects under %q: %w", len(objects), prefix, err)
		}
		deleted += len(objects)
	}

	log.Debug("deleted archived snapshots", "userId", userID, "count", deleted, "bucket", s.bucketName)
	return deleted, nil
}
