package intelligence

// Budget ladder and travel constraints, in VND. These are fixed business
// rules applied regardless of provider: the caller's optional top-up never
// raises the ceilings, it only affects the contribution flag.
const (
	// BaseBudget is the free-tier budget every plan gets.
	BaseBudget = 300000
	// SecondPhaseAllowance extends the ceiling for 2-phase plans.
	SecondPhaseAllowance = 150000
	// ThirdPhaseAllowance extends the ceiling for 3-phase plans.
	ThirdPhaseAllowance = 50000

	// MaxPhases caps the number of phases in a plan.
	MaxPhases = 3

	// MaxPhaseDistanceKm is the ceiling on the distance between two
	// consecutive phases.
	MaxPhaseDistanceKm = 2.0
	// MaxPhaseTravelMinutes is the ceiling on travel time between two
	// consecutive phases.
	MaxPhaseTravelMinutes = 15
)

// BudgetCeiling returns the ladder ceiling for a plan with the given phase
// count. Counts outside 1..MaxPhases get a zero ceiling and thus never
// validate.
func BudgetCeiling(phaseCount int) int {
	switch phaseCount {
	case 1:
		return BaseBudget
	case 2:
		return BaseBudget + SecondPhaseAllowance
	case 3:
		return BaseBudget + SecondPhaseAllowance + ThirdPhaseAllowance
	default:
		return 0
	}
}

// ContributionNeeded computes the mandatory top-up over the base budget.
func ContributionNeeded(totalCost int) int {
	if totalCost > BaseBudget {
		return totalCost - BaseBudget
	}
	return 0
}
