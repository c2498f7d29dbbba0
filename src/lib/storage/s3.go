package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Backend stores assets in the bucket named by S3_ASSETS_BUCKET.
type S3Backend struct {
	bucket string
	client *s3.Client
}

func NewS3Backend() *S3Backend {
	return &S3Backend{bucket: os.Getenv("S3_ASSETS_BUCKET")}
}

func (b *S3Backend) getClient() *s3.Client {
	if b.client != nil {
		return b.client
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	b.client = s3.NewFromConfig(cfg)
	return b.client
}

func (b *S3Backend) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	client := b.getClient()
	if client == nil {
		return "", errors.New("s3 client is not available")
	}
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return "", err
	}
	err = s3.NewObjectExistsWaiter(client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}, time.Minute)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", key, err.Error())
		return "", err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, b.bucket)
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", b.bucket, key), nil
}

func (b *S3Backend) Remove(ctx context.Context, assetURL string) error {
	client := b.getClient()
	if client == nil {
		return errors.New("s3 client is not available")
	}
	u, err := url.Parse(assetURL)
	if err != nil {
		return err
	}
	key := strings.TrimPrefix(u.Path, "/")
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		log.Printf("Could not delete object [%s] from S3 bucket: %s\n", key, err.Error())
		return err
	}
	return nil
}
