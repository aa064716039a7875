package usage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
)

// ErrLimitReached is returned when the monthly generation allowance is used up.
var ErrLimitReached = errors.New("monthly generation limit reached")

// Service owns the usage counter invariants: used never exceeds allowed,
// total cost only increases, and every billable action lands in the
// append-only history log.
type Service struct {
	db   *gorm.DB
	repo repository.UsageRepository
}

// NewService creates a usage service from a DB handle and repository.
func NewService(db *gorm.DB, repo repository.UsageRepository) *Service {
	return &Service{db: db, repo: repo}
}

// Current returns the caller's counter record for the plan, rolling the
// monthly window over when a new calendar month has started.
func (s *Service) Current(userID uint, plan entitlements.Plan) (*models.UserUsage, error) {
	u, err := s.repo.GetOrCreate(userID, string(plan))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if u.LastResetAt == nil {
		u.LastResetAt = &now
		u.MonthlyGenerationsAllowed = entitlements.MonthlyGenerations(plan)
		if err := s.repo.Save(u); err != nil {
			return nil, err
		}
		return u, nil
	}

	if u.NeedsMonthlyReset(now) {
		u.MonthlyGenerationsUsed = 0
		u.MonthlyGenerationsAllowed = entitlements.MonthlyGenerations(plan)
		u.LimitReached = false
		u.LastResetAt = &now
		if err := s.repo.Save(u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// CheckAllowance returns ErrLimitReached when the caller may not run another
// generation this month.
func (s *Service) CheckAllowance(userID uint, plan entitlements.Plan) error {
	u, err := s.Current(userID, plan)
	if err != nil {
		return err
	}
	if u.RemainingThisMonth() == 0 {
		return ErrLimitReached
	}
	return nil
}

// RecordGeneration books one billable generation: counters move and the
// history row is appended in a single transaction. Negative costs are
// rejected so TotalCostIncurred stays monotonic.
func (s *Service) RecordGeneration(userID uint, plan entitlements.Plan, action string, generatedImageID *uint, cost float64, details models.JSON) error {
	if cost < 0 {
		return errors.New("usage cost must not be negative")
	}

	u, err := s.Current(userID, plan)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		u.TotalGenerationsUsed++
		u.MonthlyGenerationsUsed++
		u.TotalCostIncurred += cost
		if u.MonthlyGenerationsAllowed > 0 && u.MonthlyGenerationsUsed >= u.MonthlyGenerationsAllowed {
			u.LimitReached = true
		}
		if err := txRepo.Save(u); err != nil {
			return err
		}

		return txRepo.AppendHistory(&models.UsageHistory{
			UserID:           userID,
			GeneratedImageID: generatedImageID,
			Action:           action,
			Cost:             cost,
			Details:          details,
		})
	})
}

// SyncPlan re-derives the allowance after a plan change, keeping the used
// counter intact.
func (s *Service) SyncPlan(userID uint, plan entitlements.Plan) error {
	u, err := s.repo.GetOrCreate(userID, string(plan))
	if err != nil {
		return err
	}
	u.MonthlyGenerationsAllowed = entitlements.MonthlyGenerations(plan)
	u.LimitReached = u.MonthlyGenerationsAllowed > 0 && u.MonthlyGenerationsUsed >= u.MonthlyGenerationsAllowed
	if u.LastResetAt == nil {
		now := time.Now()
		u.LastResetAt = &now
	}
	return s.repo.Save(u)
}
