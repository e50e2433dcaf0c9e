package intelligence

import (
	"context"

	"teambond/models"
	"teambond/services/location"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultRating substitutes for a missing model-reported rating.
const defaultRating = 3

// ValidationReport carries advisory rejection diagnostics so operators can
// distinguish "model is consistently over budget" from "model is fine".
// Individual rejections are never surfaced to the plan caller.
type ValidationReport struct {
	Accepted         int      `json:"accepted"`
	RejectedBudget   int      `json:"rejected_budget"`
	RejectedDistance int      `json:"rejected_distance"`
	Reasons          []string `json:"reasons,omitempty"`
}

// Rejected returns the total number of dropped candidates.
func (r *ValidationReport) Rejected() int {
	return r.RejectedBudget + r.RejectedDistance
}

// ConstraintValidator filters plan candidates against the budget ladder and
// the inter-phase travel constraints. It is a pure filter: conforming
// candidates are passed through with derived fields computed, non-conforming
// ones are dropped silently.
type ConstraintValidator struct {
	// Enricher computes travel metrics for phase pairs the model reported
	// no distance for. Optional: when nil, absent data is tolerated.
	Enricher location.Enricher
	Logger   *zap.Logger
}

// Validate applies the constraints to each candidate and returns the
// surviving plans plus a rejection report.
func (v *ConstraintValidator) Validate(ctx context.Context, candidates []PlanCandidate) ([]models.EventPlan, ValidationReport) {
	logger := v.Logger
	if logger == nil {
		logger = zap.L()
	}

	var report ValidationReport
	plans := make([]models.EventPlan, 0, len(candidates))

	for _, candidate := range candidates {
		phaseCount := len(candidate.Phases)
		if phaseCount < 1 || phaseCount > MaxPhases {
			report.RejectedBudget++
			report.Reasons = append(report.Reasons, "invalid phase count")
			continue
		}

		// Never trust the model-reported total.
		totalCost := 0
		for _, phase := range candidate.Phases {
			if phase.Cost < 0 {
				totalCost = -1
				break
			}
			totalCost += phase.Cost
		}
		ceiling := BudgetCeiling(phaseCount)
		if totalCost < 0 || totalCost > ceiling {
			report.RejectedBudget++
			report.Reasons = append(report.Reasons, "total cost exceeds budget ladder ceiling")
			logger.Debug("Plan rejected on budget",
				zap.String("title", candidate.Title),
				zap.Int("totalCost", totalCost),
				zap.Int("ceiling", ceiling))
			continue
		}

		if !v.checkTravel(ctx, candidate) {
			report.RejectedDistance++
			report.Reasons = append(report.Reasons, "consecutive phases too far apart")
			logger.Debug("Plan rejected on travel constraints",
				zap.String("title", candidate.Title))
			continue
		}

		plans = append(plans, v.buildPlan(candidate, totalCost))
		report.Accepted++
	}
	return plans, report
}

// checkTravel verifies the distance/travel-time rule for each consecutive
// phase pair. Reported values are checked as-is; when absent and an
// enricher is configured, metrics are computed from the two addresses.
// Absence of data is not by itself disqualifying.
func (v *ConstraintValidator) checkTravel(ctx context.Context, candidate PlanCandidate) bool {
	for i := 1; i < len(candidate.Phases); i++ {
		prev := candidate.Phases[i-1]
		phase := candidate.Phases[i]

		distance := phase.Distance
		travelTime := phase.TravelTime
		if distance == nil && v.Enricher != nil && prev.Address != "" && phase.Address != "" {
			metrics := v.Enricher.TravelMetrics(ctx, prev.Address, phase.Address)
			distance = &metrics.DistanceKm
			minutes := metrics.Minutes
			travelTime = &minutes
		}

		if distance != nil && *distance > MaxPhaseDistanceKm {
			return false
		}
		if travelTime != nil && *travelTime > MaxPhaseTravelMinutes {
			return false
		}
	}
	return true
}

// buildPlan converts an accepted candidate into an EventPlan, computing
// derived fields and substituting neutral defaults for absent ones.
func (v *ConstraintValidator) buildPlan(candidate PlanCandidate, totalCost int) models.EventPlan {
	phases := make([]models.EventPhase, 0, len(candidate.Phases))
	for i, pc := range candidate.Phases {
		phase := models.EventPhase{
			Name:                 pc.Name,
			Description:          pc.Description,
			Address:              pc.Address,
			GoogleMapsLink:       pc.GoogleMapsLink,
			Cost:                 pc.Cost,
			IsIndoor:             pc.IsIndoor,
			IsOutdoor:            pc.IsOutdoor,
			IsVegetarianFriendly: pc.IsVegetarianFriendly,
			IsAlcoholFriendly:    pc.IsAlcoholFriendly,
		}
		if phase.GoogleMapsLink == "" {
			phase.GoogleMapsLink = location.MapLink(pc.Address)
		}
		// The first phase has no predecessor leg.
		if i > 0 {
			phase.TravelTime = pc.TravelTime
			phase.Distance = pc.Distance
		}
		phases = append(phases, phase)
	}

	rating := defaultRating
	if candidate.Rating != nil && *candidate.Rating >= 1 && *candidate.Rating <= 5 {
		rating = *candidate.Rating
	}

	id := candidate.ID
	if id == "" {
		id = uuid.New().String()
	}

	return models.EventPlan{
		ID:                 id,
		Title:              candidate.Title,
		Theme:              candidate.Theme,
		Phases:             phases,
		TotalCost:          totalCost,
		BestFor:            candidate.BestFor,
		Rating:             rating,
		FitAnalysis:        candidate.FitAnalysis,
		ContributionNeeded: ContributionNeeded(totalCost),
		RotationSuggestion: candidate.RotationSuggestion,
	}
}
