package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ProfileImagePrefix is the only part of the bucket readable anonymously.
const ProfileImagePrefix = "profile-images/"

func NewMinIOClient(ctx context.Context, cfg *Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinIOBucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinIOBucket, err)
		}
		slog.Info("created object storage bucket", slog.String("bucket", cfg.MinIOBucket))
	}

	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{"arn:aws:s3:::" + cfg.MinIOBucket + "/" + ProfileImagePrefix + "*"},
			},
		},
	}
	policyJSON, _ := json.Marshal(policy)
	if err := client.SetBucketPolicy(ctx, cfg.MinIOBucket, string(policyJSON)); err != nil {
		slog.Warn("failed to set bucket policy", slog.String("bucket", cfg.MinIOBucket), slog.Any("error", err))
	}

	return client, nil
}

// PublicObjectURL returns the anonymous URL for an object in the bucket.
func (c *Config) PublicObjectURL(objectName string) string {
	scheme := "http"
	if c.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.MinIOPublicEndpoint, c.MinIOBucket, objectName)
}
