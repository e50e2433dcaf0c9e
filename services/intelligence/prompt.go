package intelligence

import (
	"fmt"
	"strings"

	"teambond/models"
)

// systemPrompt fixes the exact output contract the model must honor.
const systemPrompt = `You are a team bonding event planner for a team based in Ho Chi Minh City.
You always respond with a single JSON object and nothing else.

The JSON object must have exactly one key "plans", an array of event plans.
Each plan has these keys:
  id, title, theme, phases, totalCost, bestFor, rating, fitAnalysis, rotationSuggestion
Each phase has these keys:
  name, description, address, googleMapsLink, cost, isIndoor, isOutdoor,
  isVegetarianFriendly, isAlcoholFriendly, travelTime, distance

Rules:
- costs are integers in VND per person
- totalCost is the sum of phase costs
- rating is an integer from 1 to 5
- bestFor is an array of member names the plan suits best
- travelTime (minutes) and distance (km) describe the leg from the previous
  phase and must be null for the first phase
- rotationSuggestion is a short note on how to rotate event styles long term`

// BuildSystemPrompt returns the system instruction string.
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt serializes the request, constraints and roster into the
// user message. The history digest is injected only for the similar and
// reuse modes; mode new deliberately omits all historical context.
func BuildUserPrompt(req models.GenerationRequest, members []models.TeamMember, digest *models.HistoryDigest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Suggest 3 team bonding event plans with theme %q.\n\n", req.Theme)

	sb.WriteString("Budget rules (VND per person, hard ceilings):\n")
	fmt.Fprintf(&sb, "- base budget: %d\n", BaseBudget)
	if req.Contribution > 0 {
		fmt.Fprintf(&sb, "- optional top-up contribution: %d (flag plans that need it)\n", req.Contribution)
	}
	fmt.Fprintf(&sb, "- 1-phase plan: total <= %d\n", BudgetCeiling(1))
	fmt.Fprintf(&sb, "- 2-phase plan: total <= %d\n", BudgetCeiling(2))
	fmt.Fprintf(&sb, "- 3-phase plan: total <= %d\n", BudgetCeiling(3))
	fmt.Fprintf(&sb, "- consecutive phases must be at most %.0f km and %d minutes apart\n\n",
		MaxPhaseDistanceKm, MaxPhaseTravelMinutes)

	if req.PreferredZone != "" {
		fmt.Fprintf(&sb, "Preferred area: %s\n", req.PreferredZone)
	}
	if req.PreferredDate != "" {
		fmt.Fprintf(&sb, "Preferred date/time: %s\n", req.PreferredDate)
	}
	if req.PreferredZone != "" || req.PreferredDate != "" {
		sb.WriteString("\n")
	}

	sb.WriteString("Team members attending:\n")
	for _, member := range members {
		fmt.Fprintf(&sb, "• %s (%s): %s - Prefers: %s\n",
			member.Name, member.Vibe, member.Location, strings.Join(member.Preferences, ", "))
	}

	if digest != nil && (req.Mode == models.ModeSimilar || req.Mode == models.ModeReuse) {
		sb.WriteString("\n")
		writeHistoryBlock(&sb, req.Mode, digest)
	}

	return sb.String()
}

// writeHistoryBlock renders the historical context. Similar mode gets the
// recent-event digest plus aggregate stats; reuse mode additionally pins
// the structural phase-count pattern observed per theme.
func writeHistoryBlock(sb *strings.Builder, mode models.GenerationMode, digest *models.HistoryDigest) {
	sb.WriteString("Recent team events:\n")
	for _, event := range digest.Events {
		fmt.Fprintf(sb, "- %s | %s | %s | %d VND | rated %d/5\n",
			event.Date, event.Theme, strings.Join(event.Activities, ", "),
			event.TotalCost, event.Rating)
	}
	fmt.Fprintf(sb, "Aggregate: most frequent theme %q, mean cost %.0f VND, mean rating %.1f/5.\n",
		digest.MostFrequentTheme, digest.MeanCost, digest.MeanRating)

	switch mode {
	case models.ModeSimilar:
		sb.WriteString("Draft plans similar in spirit to the highest rated events above.\n")
	case models.ModeReuse:
		sb.WriteString("Reuse the structural pattern of past events:\n")
		for theme, phases := range digest.PhaseCountByTheme {
			fmt.Fprintf(sb, "- %q events ran %d phases\n", theme, phases)
		}
		sb.WriteString("Keep the same phase structure, swap in fresh venues and activities.\n")
	}
}
