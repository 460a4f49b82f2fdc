package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Folder string

const (
	FolderResume     Folder = "resume"
	FolderLogo       Folder = "logo"
	FolderAttachment Folder = "attachment"
)

type Provider interface {
	// Upload stores the object and returns its key
	Upload(ctx context.Context, folder Folder, ownerID, fileName string, reader io.Reader, size int64, contentType string) (key string, err error)
	GetFile(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewInstance(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

func ObjectKey(folder Folder, ownerID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%s/%s/%s%s", folder, ownerID, uuid.NewString(), ext)
}

func (i impl) Upload(ctx context.Context, folder Folder, ownerID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(folder, ownerID, fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"file-name": fileName},
	})
	if err != nil {
		return "", errors.Wrap(err, "file upload failed")
	}
	log.WithField("key", key).Debug("file uploaded")
	return key, nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "file download failed")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "file read failed")
	}
	return body, nil
}

func (i impl) Delete(ctx context.Context, key string) error {
	err := i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "file delete failed")
	}
	return nil
}
