package s3client

import (
	"context"

	"campus-jobs-backend/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const defaultRegion = "us-east-1"

func NewClient() (*minio.Client, error) {
	useSSL := config.Conf.S3.UseSSL != nil && *config.Conf.S3.UseSSL
	client, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "s3 client creation failed")
	}
	return client, nil
}

// MakeBucket creates the bucket when it does not exist yet
func MakeBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Wrap(err, "bucket check failed")
	}
	if exists {
		return nil
	}
	err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: defaultRegion})
	if err != nil {
		return errors.Wrap(err, "bucket creation failed")
	}
	return nil
}
