package selfiestore

import (
	"errors"
	"fmt"

	"github.com/brandforgehq/brandforge/internal/pkg/env"
)

// Config holds the selfie object storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("SELFIE_STORAGE_ENABLED", "false") == "true",
	}

	// Validate required fields if storage is enabled
	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when selfie storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when selfie storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when selfie storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if selfie storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetObjectKey generates a standardized object key for a selfie upload.
// Format: selfies/<userID>/<uuid><ext>
func (c *Config) GetObjectKey(userID uint, selfieUUID, fileExtension string) string {
	return fmt.Sprintf("selfies/%d/%s%s", userID, selfieUUID, fileExtension)
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}
