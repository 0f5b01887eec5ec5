package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"ridepool_backend/pkg/config"
)

const MaxFileSize = 5 * 1024 * 1024 // 5MB

var storeCfg config.StorageConfig

// Init wires the bucket credentials used by every upload.
func Init(cfg config.StorageConfig) {
	storeCfg = cfg
}

func getClient() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storeCfg.AccessKey,
			storeCfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", storeCfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

// UploadUserFile stores a processed file under the user's folder and returns
// its public URL. kind groups objects ("avatars", "vehicles").
func UploadUserFile(username, kind, filename, contentType string, data *bytes.Buffer) (string, error) {
	if int64(data.Len()) > MaxFileSize {
		return "", fmt.Errorf("file size too large. Maximum size is %d bytes", MaxFileSize)
	}

	ext := filepath.Ext(filename)
	objectKey := filepath.Join("users", slug.Make(username), kind, uuid.New().String()+ext)

	client, err := getClient()
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storeCfg.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to storage: %v", err)
	}

	return fmt.Sprintf("%s/%s", storeCfg.PublicURL, objectKey), nil
}

// DeleteFile removes an uploaded object by its public URL.
func DeleteFile(fileURL string) error {
	key := strings.TrimPrefix(fileURL, storeCfg.PublicURL+"/")

	client, err := getClient()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(storeCfg.Bucket),
		Key:    aws.String(key),
	})

	return err
}
