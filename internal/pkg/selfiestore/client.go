package selfiestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gofiber/fiber/v2/log"
)

// Client wraps the S3 client with selfie-storage functionality
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new selfie storage client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("selfie storage is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			// S3-compatible services need path-style URLs
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	if err := client.testConnection(); err != nil {
		return nil, fmt.Errorf("failed to connect to S3: %w", err)
	}

	log.Infof("[SelfieStore] Successfully initialized S3 client for bucket: %s", cfg.BucketName)
	return client, nil
}

// testConnection tests the S3 connection by checking if the bucket exists
func (c *Client) testConnection() error {
	ctx := context.Background()

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.BucketName),
	})

	if err != nil {
		// If bucket doesn't exist, try to create it (for development)
		if GetAppEnv() != "prod" {
			log.Warnf("[SelfieStore] Bucket %s not found, attempting to create it", c.config.BucketName)
			return c.createBucket(c.config.BucketName)
		}
		return fmt.Errorf("bucket %s not accessible: %w", c.config.BucketName, err)
	}

	return nil
}

// createBucket creates a new S3 bucket (dev/staging only)
func (c *Client) createBucket(bucketName string) error {
	ctx := context.Background()

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}

	// For AWS regions other than us-east-1 the location constraint must be
	// set; S3-compatible services ignore it.
	if c.config.EndpointURL == "" && c.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.config.Region),
		}
	}

	_, err := c.s3Client.CreateBucket(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}

	log.Infof("[SelfieStore] Successfully created bucket: %s", bucketName)
	return nil
}

// Upload stores a selfie's bytes under the given object key.
func (c *Client) Upload(ctx context.Context, objectKey string, data []byte, contentType string) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	log.Infof("[SelfieStore] Uploaded s3://%s/%s (%d bytes)", c.config.BucketName, objectKey, len(data))
	return nil
}

// Delete removes an object from the bucket.
func (c *Client) Delete(ctx context.Context, objectKey string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", objectKey, err)
	}
	return nil
}

// Shared client instance; swapped by tests.
var activeClient *Client

// GetClient returns the shared storage client, initializing it on first use.
func GetClient() (*Client, error) {
	if activeClient != nil {
		return activeClient, nil
	}
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	activeClient = client
	return activeClient, nil
}

// SetClient overrides the shared client; used by tests.
func SetClient(c *Client) {
	activeClient = c
}

// ObjectKey builds the storage key for a user's selfie.
func (c *Client) ObjectKey(userID uint, selfieUUID, fileExtension string) string {
	return c.config.GetObjectKey(userID, selfieUUID, fileExtension)
}

// PublicURL returns the externally reachable URL for an object key.
func (c *Client) PublicURL(objectKey string) string {
	if c.config.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.config.EndpointURL, "/"), c.config.BucketName, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.config.BucketName, c.config.Region, objectKey)
}
