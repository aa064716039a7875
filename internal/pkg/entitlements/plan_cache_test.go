package entitlements

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memoryPlanStore struct {
	values map[string]string
}

func newMemoryPlanStore() *memoryPlanStore {
	return &memoryPlanStore{values: map[string]string{}}
}

func (s *memoryPlanStore) Get(key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", errors.New("cache miss")
}

func (s *memoryPlanStore) Set(key string, value interface{}, _ time.Duration) error {
	s.values[key] = fmt.Sprint(value)
	return nil
}

func (s *memoryPlanStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func TestPlanCacheRoundTrip(t *testing.T) {
	SetPlanStore(newMemoryPlanStore())
	defer SetPlanStore(sharedCacheStore{})

	_, ok := CachedPlan(42)
	assert.False(t, ok)

	CachePlan(42, PlanPro)
	plan, ok := CachedPlan(42)
	assert.True(t, ok)
	assert.Equal(t, PlanPro, plan)

	InvalidatePlan(42)
	_, ok = CachedPlan(42)
	assert.False(t, ok)
}

func TestCachedPlanNormalizesStoredValue(t *testing.T) {
	store := newMemoryPlanStore()
	SetPlanStore(store)
	defer SetPlanStore(sharedCacheStore{})

	store.values[fmt.Sprintf(planKeyFormat, 7)] = "  Studio "
	plan, ok := CachedPlan(7)
	assert.True(t, ok)
	assert.Equal(t, PlanStudio, plan)
}
