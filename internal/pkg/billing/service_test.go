package billing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/usage"
)

type fakeUserLookup struct {
	user *models.User
}

func (f *fakeUserLookup) GetByStripeCustomerID(string) (*models.User, error) {
	if f.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

type fakeSubscriptionRepo struct {
	upserted *models.Subscription
}

func (f *fakeSubscriptionRepo) Upsert(sub *models.Subscription) error {
	f.upserted = sub
	return nil
}

func (f *fakeSubscriptionRepo) GetActiveByUserID(uint) (*models.Subscription, error) {
	if f.upserted == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.upserted, nil
}

func (f *fakeSubscriptionRepo) ListByUserID(uint) ([]models.Subscription, error) {
	return nil, nil
}

type fakeUsageRepo struct {
	usage *models.UserUsage
}

func (f *fakeUsageRepo) GetOrCreate(userID uint, plan string) (*models.UserUsage, error) {
	if f.usage == nil {
		f.usage = &models.UserUsage{UserID: userID, Plan: plan}
	}
	return f.usage, nil
}

func (f *fakeUsageRepo) Save(u *models.UserUsage) error {
	f.usage = u
	return nil
}

func (f *fakeUsageRepo) AppendHistory(*models.UsageHistory) error { return nil }

func (f *fakeUsageRepo) ListHistory(uint, int, int) ([]models.UsageHistory, error) {
	return nil, nil
}

func (f *fakeUsageRepo) WithTx(*gorm.DB) repository.UsageRepository { return f }

type memoryPlanStore struct {
	values map[string]string
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

// An upgrade handled by the webhook must re-derive the allowance and drop the
// cached plan so the user's next request runs with the new entitlement.
func TestHandleEventUpgradeRefreshesEntitlements(t *testing.T) {
	entitlements.SetPlanStore(&memoryPlanStore{values: map[string]string{}})
	entitlements.CachePlan(7, entitlements.PlanFree)

	subs := &fakeSubscriptionRepo{}
	usageRepo := &fakeUsageRepo{}
	svc := NewService(
		&fakeUserLookup{user: &models.User{ID: 7, StripeCustomerID: "cus_123"}},
		subs,
		usage.NewService(nil, usageRepo),
	)

	periodEnd := time.Now().Add(30 * 24 * time.Hour)
	err := svc.HandleEvent(WebhookEvent{
		EventID:      "evt_1",
		EventType:    "customer.subscription.updated",
		CustomerID:   "cus_123",
		Subscription: "sub_123",
		Plan:         "pro",
		Status:       "active",
		PeriodEnd:    &periodEnd,
	})
	require.NoError(t, err)

	require.NotNil(t, subs.upserted)
	assert.Equal(t, uint(7), subs.upserted.UserID)
	assert.Equal(t, "pro", subs.upserted.Plan)
	assert.Equal(t, models.SUBSCRIPTION_ACTIVE, subs.upserted.Status)

	require.NotNil(t, usageRepo.usage)
	assert.Equal(t, entitlements.MonthlyGenerations(entitlements.PlanPro), usageRepo.usage.MonthlyGenerationsAllowed)

	_, ok := entitlements.CachedPlan(7)
	assert.False(t, ok, "cached plan must be dropped after a subscription change")
}

// A non-entitling status falls back to the free allowance even when the event
// names a paid plan.
func TestHandleEventCancelledFallsBackToFree(t *testing.T) {
	entitlements.SetPlanStore(&memoryPlanStore{values: map[string]string{}})

	usageRepo := &fakeUsageRepo{}
	svc := NewService(
		&fakeUserLookup{user: &models.User{ID: 9}},
		&fakeSubscriptionRepo{},
		usage.NewService(nil, usageRepo),
	)

	err := svc.HandleEvent(WebhookEvent{
		EventID:      "evt_2",
		CustomerID:   "cus_456",
		Subscription: "sub_456",
		Plan:         "pro",
		Status:       "canceled",
	})
	require.NoError(t, err)

	require.NotNil(t, usageRepo.usage)
	assert.Equal(t, entitlements.MonthlyGenerations(entitlements.PlanFree), usageRepo.usage.MonthlyGenerationsAllowed)
}

func TestHandleEventRejectsMissingSubscriptionID(t *testing.T) {
	svc := NewService(&fakeUserLookup{}, &fakeSubscriptionRepo{}, usage.NewService(nil, &fakeUsageRepo{}))

	err := svc.HandleEvent(WebhookEvent{CustomerID: "cus_789"})
	assert.Error(t, err)
}
