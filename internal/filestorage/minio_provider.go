package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinIOStorage(bucket, publicPath, endpoint, accessKeyID, secretAccessKey string) *MinIOStorage {
	m, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: true,
	})
	if err != nil {
		panic(err)
	}
	return &MinIOStorage{
		client:     m,
		bucket:     bucket,
		publicPath: publicPath,
	}
}

type MinIOStorage struct {
	client     *minio.Client
	bucket     string
	publicPath string
}

// UploadImage writes the binary under the public prefix and returns the
// stable public URL for it.
func (f *MinIOStorage) UploadImage(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := f.publicPath + "/" + name

	_, err := f.client.PutObject(ctx, f.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", f.client.EndpointURL(), f.bucket, key), nil
}

// DeleteImage accepts the public URL previously returned by UploadImage.
func (f *MinIOStorage) DeleteImage(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", f.client.EndpointURL(), f.bucket)
	key := strings.TrimPrefix(url, prefix)
	if key == url {
		return fmt.Errorf("filestorage: url %q is not in bucket %q", url, f.bucket)
	}
	return f.client.RemoveObject(ctx, f.bucket, key, minio.RemoveObjectOptions{})
}
