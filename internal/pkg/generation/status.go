package generation

import (
	"fmt"
	"time"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/cache"
)

// Cache key format for generation status
const (
	StatusKeyFormat          = "generation:status:%s"           // Format: generation:status:<uuid>
	StatusTimestampKeyFormat = "generation:status:timestamp:%s" // Format: generation:status:timestamp:<uuid>
)

// SetStatus sets the generation status of an image request in the cache
func SetStatus(imageUUID string, status string) error {
	key := fmt.Sprintf(StatusKeyFormat, imageUUID)
	SetStatusTimestamp(imageUUID, time.Now())
	return cache.Set(key, status, 24*time.Hour)
}

// SetStatusTimestamp sets the timestamp when the status was set
func SetStatusTimestamp(imageUUID string, timestamp time.Time) error {
	cacheKey := fmt.Sprintf(StatusTimestampKeyFormat, imageUUID)
	return cache.Set(cacheKey, timestamp.Format(time.RFC3339), 24*time.Hour)
}

// GetStatus retrieves the generation status from the cache, falling back to
// the image row when the cache entry expired.
func GetStatus(imageUUID string) (string, error) {
	key := fmt.Sprintf(StatusKeyFormat, imageUUID)
	status, err := cache.Get(key)
	if err == nil && status != "" {
		return status, nil
	}

	image, err := repository.GetGlobalFactory().GetAiImageRepository().GetByUUID(imageUUID)
	if err != nil {
		return "", err
	}
	return image.GenerationStatus, nil
}

// IsComplete checks whether generation for the request reached its terminal
// completed state.
func IsComplete(imageUUID string) bool {
	status, err := GetStatus(imageUUID)
	return err == nil && status == models.GENERATION_COMPLETED
}

// ClearStatus removes the cached status entries for an image request.
func ClearStatus(imageUUID string) {
	cache.Delete(fmt.Sprintf(StatusKeyFormat, imageUUID))
	cache.Delete(fmt.Sprintf(StatusTimestampKeyFormat, imageUUID))
}
