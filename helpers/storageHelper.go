package helpers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

func initS3Client() (*s3.Client, error) {
	if s3Client != nil {
		return s3Client, nil
	}

	region := os.Getenv("AWS_REGION")
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client = s3.NewFromConfig(awsConfig)
	return s3Client, nil
}

// UploadOrderAsset stores an uploaded order image or voice note and returns
// its public URL. The order flow treats the returned URL as an opaque
// reference and never reads it back through this package.
func UploadOrderAsset(fileHeader *multipart.FileHeader, contentType string) (string, error) {
	client, err := initS3Client()
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	bucket := os.Getenv("AWS_S3_BUCKET")
	timestamp := time.Now().Unix()
	filename := filepath.Base(fileHeader.Filename)
	key := fmt.Sprintf("orders/%d_%s", timestamp, filename)

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, os.Getenv("AWS_REGION"), key), nil
}
