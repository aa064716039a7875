package entitlements

import (
	"fmt"
	"time"

	"github.com/brandforgehq/brandforge/internal/pkg/cache"
)

// planKeyFormat keys the resolved plan per user. The billing webhook deletes
// the key on subscription changes, so a plan change takes effect on the next
// request instead of waiting for the session to expire.
const planKeyFormat = "entitlements:plan:%d"

// planCacheTTL bounds staleness in case an invalidation is lost.
const planCacheTTL = 15 * time.Minute

// planStore is the minimal cache surface the plan cache needs. Tests swap in
// an in-memory implementation.
type planStore interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}

type sharedCacheStore struct{}

func (sharedCacheStore) Get(key string) (string, error) { return cache.Get(key) }
func (sharedCacheStore) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}
func (sharedCacheStore) Delete(key string) error { return cache.Delete(key) }

var activePlanStore planStore = sharedCacheStore{}

// SetPlanStore swaps the backing store; used by tests.
func SetPlanStore(s planStore) {
	activePlanStore = s
}

// CachedPlan returns the cached plan for a user, if one is present.
func CachedPlan(userID uint) (Plan, bool) {
	val, err := activePlanStore.Get(fmt.Sprintf(planKeyFormat, userID))
	if err != nil || val == "" {
		return PlanFree, false
	}
	return NormalizePlan(val), true
}

// CachePlan stores the resolved plan for a user.
func CachePlan(userID uint, plan Plan) {
	_ = activePlanStore.Set(fmt.Sprintf(planKeyFormat, userID), string(plan), planCacheTTL)
}

// InvalidatePlan drops the cached plan so the next request re-derives it from
// the subscription table.
func InvalidatePlan(userID uint) {
	_ = activePlanStore.Delete(fmt.Sprintf(planKeyFormat, userID))
}
