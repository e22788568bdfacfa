package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage is the aws-sdk backed alternative to MinIOStorage for
// deployments on S3-compatible object stores.
type S3Storage struct {
	client     *s3.Client
	bucket     string
	publicPath string
	publicURL  string
}

func NewS3Storage(ctx context.Context, bucket, publicPath, endpoint, region, accessKeyID, secretAccessKey string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		}
	})

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	if endpoint != "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(endpoint, "/"), bucket)
	}

	return &S3Storage{
		client:     client,
		bucket:     bucket,
		publicPath: publicPath,
		publicURL:  publicURL,
	}, nil
}

func (f *S3Storage) UploadImage(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := f.publicPath + "/" + name

	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", f.publicURL, key), nil
}

func (f *S3Storage) DeleteImage(ctx context.Context, url string) error {
	prefix := f.publicURL + "/"
	key := strings.TrimPrefix(url, prefix)
	if key == url {
		return fmt.Errorf("filestorage: url %q is not in bucket %q", url, f.bucket)
	}

	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	return err
}
