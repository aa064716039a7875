package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlan(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PlanPro, NormalizePlan("pro"))
	assert.Equal(t, PlanPro, NormalizePlan("  PRO "))
	assert.Equal(t, PlanStudio, NormalizePlan("Studio"))
	assert.Equal(t, PlanFree, NormalizePlan(""))
	assert.Equal(t, PlanFree, NormalizePlan("enterprise"))
}

func TestPlanRankOrdering(t *testing.T) {
	t.Parallel()

	assert.Greater(t, PlanRank(PlanStudio), PlanRank(PlanPro))
	assert.Greater(t, PlanRank(PlanPro), PlanRank(PlanFree))
}

func TestMonthlyGenerations(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, MonthlyGenerations(PlanFree))
	assert.Equal(t, 100, MonthlyGenerations(PlanPro))
	assert.Equal(t, 500, MonthlyGenerations(PlanStudio))
}

func TestCanTrainModel(t *testing.T) {
	t.Parallel()

	assert.False(t, CanTrainModel(PlanFree))
	assert.True(t, CanTrainModel(PlanPro))
	assert.True(t, CanTrainModel(PlanStudio))
}
