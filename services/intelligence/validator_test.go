package intelligence

import (
	"context"
	"strings"
	"testing"

	"teambond/services/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubEnricher returns fixed travel metrics for every phase pair.
type stubEnricher struct {
	metrics location.TravelMetrics
}

func (s *stubEnricher) Geocode(_ context.Context, address string) location.GeocodeResult {
	return location.GeocodeResult{FormattedAddress: address, Estimated: true}
}

func (s *stubEnricher) TravelMetrics(_ context.Context, _, _ string) location.TravelMetrics {
	return s.metrics
}

func candidateWithCosts(costs ...int) PlanCandidate {
	phases := make([]PhaseCandidate, 0, len(costs))
	for i, cost := range costs {
		phases = append(phases, PhaseCandidate{
			Name:    "Phase",
			Address: "123 Nguyen Hue, District 1",
			Cost:    cost,
		})
		if i > 0 {
			phases[i].Distance = floatPtr(0.5)
			phases[i].TravelTime = intPtr(5)
		}
	}
	return PlanCandidate{Title: "Candidate", Theme: "fun", Phases: phases}
}

func TestValidateBudgetLadder(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	cases := []struct {
		name     string
		costs    []int
		accepted bool
	}{
		{"one phase at ceiling", []int{300000}, true},
		{"one phase over ceiling", []int{300001}, false},
		{"two phases at ceiling", []int{300000, 150000}, true},
		{"two phases over ceiling", []int{300000, 150001}, false},
		{"three phases at ceiling", []int{300000, 150000, 50000}, true},
		{"three mid-priced phases over ceiling", []int{200000, 200000, 200000}, false},
		{"free event", []int{0}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plans, report := v.Validate(context.Background(), []PlanCandidate{candidateWithCosts(tc.costs...)})
			if tc.accepted {
				require.Len(t, plans, 1)
				assert.Equal(t, 1, report.Accepted)
				assert.Zero(t, report.Rejected())
			} else {
				assert.Empty(t, plans)
				assert.Equal(t, 1, report.RejectedBudget)
			}
		})
	}
}

func TestValidateRecomputesTotalCost(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	// The model-reported total is a lie; the recomputed one is within budget.
	candidate := candidateWithCosts(100000, 100000)
	candidate.TotalCost = 9999999

	plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
	require.Len(t, plans, 1)
	assert.Equal(t, 200000, plans[0].TotalCost)
	assert.Equal(t, 0, plans[0].ContributionNeeded)
}

func TestValidateContributionNeeded(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	candidate := candidateWithCosts(280000, 150000, 50000)
	plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
	require.Len(t, plans, 1)
	assert.Equal(t, 480000, plans[0].TotalCost)
	assert.Equal(t, 180000, plans[0].ContributionNeeded)
}

func TestValidateRejectsNegativeCost(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	plans, report := v.Validate(context.Background(), []PlanCandidate{candidateWithCosts(-50000)})
	assert.Empty(t, plans)
	assert.Equal(t, 1, report.RejectedBudget)
}

func TestValidateRejectsInvalidPhaseCount(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	empty := PlanCandidate{Title: "No phases"}
	four := candidateWithCosts(50000, 50000, 50000, 50000)

	plans, report := v.Validate(context.Background(), []PlanCandidate{empty, four})
	assert.Empty(t, plans)
	assert.Equal(t, 2, report.RejectedBudget)
}

func TestValidateTravelConstraints(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	t.Run("distance over limit rejects", func(t *testing.T) {
		candidate := candidateWithCosts(100000, 100000)
		candidate.Phases[1].Distance = floatPtr(2.5)
		plans, report := v.Validate(context.Background(), []PlanCandidate{candidate})
		assert.Empty(t, plans)
		assert.Equal(t, 1, report.RejectedDistance)
	})

	t.Run("travel time over limit rejects", func(t *testing.T) {
		candidate := candidateWithCosts(100000, 100000)
		candidate.Phases[1].TravelTime = intPtr(25)
		plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
		assert.Empty(t, plans)
	})

	t.Run("exactly at the limits accepts", func(t *testing.T) {
		candidate := candidateWithCosts(100000, 100000)
		candidate.Phases[1].Distance = floatPtr(2.0)
		candidate.Phases[1].TravelTime = intPtr(15)
		plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
		assert.Len(t, plans, 1)
	})

	t.Run("absent data tolerated without enricher", func(t *testing.T) {
		candidate := candidateWithCosts(100000, 100000)
		candidate.Phases[1].Distance = nil
		candidate.Phases[1].TravelTime = nil
		plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
		assert.Len(t, plans, 1)
	})
}

func TestValidateEnrichesMissingTravelData(t *testing.T) {
	far := &ConstraintValidator{
		Enricher: &stubEnricher{metrics: location.TravelMetrics{DistanceKm: 3.4, Minutes: 20}},
		Logger:   zap.NewNop(),
	}
	near := &ConstraintValidator{
		Enricher: &stubEnricher{metrics: location.TravelMetrics{DistanceKm: 0.8, Minutes: 6}},
		Logger:   zap.NewNop(),
	}

	candidate := candidateWithCosts(100000, 100000)
	candidate.Phases[1].Distance = nil
	candidate.Phases[1].TravelTime = nil

	plans, report := far.Validate(context.Background(), []PlanCandidate{candidate})
	assert.Empty(t, plans)
	assert.Equal(t, 1, report.RejectedDistance)

	plans, _ = near.Validate(context.Background(), []PlanCandidate{candidate})
	assert.Len(t, plans, 1)
}

func TestValidateDefaults(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	candidate := candidateWithCosts(100000)
	candidate.ID = ""
	candidate.Rating = nil
	candidate.Phases[0].GoogleMapsLink = ""

	plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
	require.Len(t, plans, 1)
	assert.NotEmpty(t, plans[0].ID)
	assert.Equal(t, 3, plans[0].Rating)
	assert.True(t, strings.HasPrefix(plans[0].Phases[0].GoogleMapsLink,
		"https://www.google.com/maps/search/?api=1&query="))
}

func TestValidateOutOfRangeRatingDefaults(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	candidate := candidateWithCosts(100000)
	candidate.Rating = intPtr(7)

	plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
	require.Len(t, plans, 1)
	assert.Equal(t, 3, plans[0].Rating)
}

func TestValidateFirstPhaseHasNoTravelLeg(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	candidate := candidateWithCosts(100000, 100000)
	// Even when the model reports a leg for the first phase, it is dropped.
	candidate.Phases[0].Distance = floatPtr(1.0)
	candidate.Phases[0].TravelTime = intPtr(10)

	plans, _ := v.Validate(context.Background(), []PlanCandidate{candidate})
	require.Len(t, plans, 1)
	assert.Nil(t, plans[0].Phases[0].Distance)
	assert.Nil(t, plans[0].Phases[0].TravelTime)
	assert.NotNil(t, plans[0].Phases[1].Distance)
	assert.NotNil(t, plans[0].Phases[1].TravelTime)
}

func TestValidateIsPureFilter(t *testing.T) {
	v := &ConstraintValidator{Logger: zap.NewNop()}

	good := candidateWithCosts(100000, 100000)
	bad := candidateWithCosts(400000)

	plans, report := v.Validate(context.Background(), []PlanCandidate{good, bad, good})
	assert.Len(t, plans, 2)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.RejectedBudget)
	for _, plan := range plans {
		assert.Equal(t, "Candidate", plan.Title)
		assert.Equal(t, 200000, plan.TotalCost)
	}
}

func TestBudgetCeiling(t *testing.T) {
	assert.Equal(t, 300000, BudgetCeiling(1))
	assert.Equal(t, 450000, BudgetCeiling(2))
	assert.Equal(t, 500000, BudgetCeiling(3))
	assert.Equal(t, 0, BudgetCeiling(0))
	assert.Equal(t, 0, BudgetCeiling(4))
}

func TestContributionNeeded(t *testing.T) {
	assert.Equal(t, 0, ContributionNeeded(250000))
	assert.Equal(t, 0, ContributionNeeded(300000))
	assert.Equal(t, 150000, ContributionNeeded(450000))
	assert.Equal(t, 200000, ContributionNeeded(500000))
}
