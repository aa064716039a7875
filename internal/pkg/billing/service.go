package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/cache"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/usage"
)

// webhookEventKeyFormat dedupes provider webhook deliveries in the cache.
const webhookEventKeyFormat = "billing:webhook:%s"

// Service syncs provider subscription state into local tables and re-derives
// the usage allowance for the mapped plan.
type Service struct {
	users UserLookup
	subs  repository.SubscriptionRepository
	usage *usage.Service
}

// UserLookup resolves a provider customer reference to a local user.
type UserLookup interface {
	GetByStripeCustomerID(customerID string) (*models.User, error)
}

type gormUserLookup struct {
	db *gorm.DB
}

func (l *gormUserLookup) GetByStripeCustomerID(customerID string) (*models.User, error) {
	var user models.User
	err := l.db.Where("stripe_customer_id = ?", strings.TrimSpace(customerID)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// NewService creates a billing service.
func NewService(users UserLookup, subs repository.SubscriptionRepository, usageSvc *usage.Service) *Service {
	return &Service{users: users, subs: subs, usage: usageSvc}
}

// NewServiceFromDB wires a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(
		&gormUserLookup{db: db},
		repository.NewSubscriptionRepository(db),
		usage.NewService(db, repository.NewUsageRepository(db)),
	)
}

// AlreadyProcessed reports whether a provider event id was seen before.
// Dedupe state lives in the cache with a generous TTL; replays after expiry
// are harmless because subscription sync is idempotent.
func (s *Service) AlreadyProcessed(eventID string) bool {
	if eventID == "" {
		return false
	}
	_, err := cache.Get(fmt.Sprintf(webhookEventKeyFormat, eventID))
	return err == nil
}

// MarkProcessed records a provider event id as handled.
func (s *Service) MarkProcessed(eventID string) {
	if eventID == "" {
		return
	}
	_ = cache.Set(fmt.Sprintf(webhookEventKeyFormat, eventID), time.Now().Format(time.RFC3339), 7*24*time.Hour)
}

// HandleEvent applies one normalized webhook event: upserts the mirrored
// subscription and re-derives the user's allowance from the mapped plan.
func (s *Service) HandleEvent(event WebhookEvent) error {
	if strings.TrimSpace(event.Subscription) == "" {
		return errors.New("webhook event has no subscription id")
	}

	user, err := s.users.GetByStripeCustomerID(event.CustomerID)
	if err != nil {
		return fmt.Errorf("resolve customer %q: %w", event.CustomerID, err)
	}

	plan := entitlements.NormalizePlan(event.Plan)
	sub := &models.Subscription{
		UserID:                 user.ID,
		Plan:                   string(plan),
		Status:                 normalizeStatus(event.Status),
		Provider:               "stripe",
		ProviderSubscriptionID: event.Subscription,
		CurrentPeriodStart:     event.PeriodStart,
		CurrentPeriodEnd:       event.PeriodEnd,
	}
	if err := s.subs.Upsert(sub); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	effective := plan
	if !isEntitlingStatus(event.Status) {
		effective = entitlements.PlanFree
	}
	if err := s.usage.SyncPlan(user.ID, effective); err != nil {
		return err
	}

	// Drop the cached plan so in-flight sessions pick up the change on their
	// next request instead of riding out the old entitlement.
	entitlements.InvalidatePlan(user.ID)
	return nil
}
