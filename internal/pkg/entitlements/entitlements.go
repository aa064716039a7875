package entitlements

import "strings"

type Plan string

const (
	PlanFree   Plan = "free"
	PlanPro    Plan = "pro"
	PlanStudio Plan = "studio"
)

// NormalizePlan maps arbitrary plan strings onto a known plan, defaulting to free.
func NormalizePlan(plan string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanPro:
		return PlanPro
	case PlanStudio:
		return PlanStudio
	default:
		return PlanFree
	}
}

// PlanRank orders plans so the best entitling subscription wins.
func PlanRank(plan Plan) int {
	switch plan {
	case PlanStudio:
		return 2
	case PlanPro:
		return 1
	default:
		return 0
	}
}

// MonthlyGenerations returns the image generation allowance per calendar month.
func MonthlyGenerations(plan Plan) int {
	switch plan {
	case PlanStudio:
		return 500
	case PlanPro:
		return 100
	default:
		return 10
	}
}

// GenerationCost returns the cost booked per generated image batch.
func GenerationCost(plan Plan) float64 {
	switch plan {
	case PlanStudio:
		return 0.04
	case PlanPro:
		return 0.05
	default:
		return 0.08
	}
}

// MaxSelfieUploadBytes returns the per-file upload cap for selfie uploads.
func MaxSelfieUploadBytes(plan Plan) int64 {
	switch plan {
	case PlanStudio, PlanPro:
		return 20 * 1024 * 1024
	default:
		return 10 * 1024 * 1024
	}
}

// MinSelfiesForTraining is the number of selfies required before a personal
// model may be trained.
const MinSelfiesForTraining = 5

// CanTrainModel reports whether the plan includes personal model training.
func CanTrainModel(plan Plan) bool {
	return plan == PlanPro || plan == PlanStudio
}
