package initializers

import (
	"context"

	"campus-jobs-backend/config"
	filestorage "campus-jobs-backend/lib/file-storage"
	s3client "campus-jobs-backend/s3"
	log "github.com/sirupsen/logrus"
)

// InitS3 leaves file storage disabled when S3 is not configured or not reachable,
// uploads then fail with a user-visible message
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 endpoint is not configured, file storage disabled")
		return
	}
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}
	if err = s3client.MakeBucket(ctx, client, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("S3 bucket check failed")
		return
	}
	filestorage.NewInstance(client, config.Conf.S3.BucketName)
	log.Info("S3 client initialized")
}
