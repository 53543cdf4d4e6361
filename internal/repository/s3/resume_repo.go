package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/Niku17/JobSift/pkg/client/s3"
)

type ResumeRepo struct {
	StorageS3 *s3.StorageS3
}

func NewResumeRepo(storageS3 *s3.StorageS3) *ResumeRepo {
	return &ResumeRepo{StorageS3: storageS3}
}

func (r *ResumeRepo) Upload(ctx context.Context, key string, file []byte) error {
	if r.StorageS3 == nil || r.StorageS3.Client == nil {
		return fmt.Errorf("s3 client not initialized")
	}

	reader := bytes.NewReader(file)
	fileSize := int64(len(file))

	_, err := r.StorageS3.Client.PutObject(
		ctx,
		r.StorageS3.Bucket,
		key,
		reader,
		fileSize,
		minio.PutObjectOptions{
			ContentType: "application/pdf",
		},
	)
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}

	return nil
}

func (r *ResumeRepo) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if r.StorageS3 == nil || r.StorageS3.Client == nil {
		return "", fmt.Errorf("s3 client not initialized")
	}

	reqParams := url.Values{}

	presignedURL, err := r.StorageS3.Client.PresignedGetObject(ctx, r.StorageS3.Bucket, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("presigned get object: %w", err)
	}
	return presignedURL.String(), nil
}
