package intelligence

import "teambond/models"

// BuildHistoryDigest aggregates saved events into the compact digest the
// prompt builder injects for the similar and reuse generation modes.
// Returns nil when there is no history to digest.
func BuildHistoryDigest(events []models.SavedEvent) *models.HistoryDigest {
	if len(events) == 0 {
		return nil
	}

	digest := &models.HistoryDigest{
		Events:            events,
		PhaseCountByTheme: make(map[string]int),
	}

	themeCounts := make(map[string]int)
	totalCost := 0
	totalRating := 0
	for _, event := range events {
		themeCounts[event.Theme]++
		totalCost += event.TotalCost
		totalRating += event.Rating
		if len(event.Phases) > digest.PhaseCountByTheme[event.Theme] {
			digest.PhaseCountByTheme[event.Theme] = len(event.Phases)
		}
	}

	best := 0
	for theme, count := range themeCounts {
		if count > best {
			best = count
			digest.MostFrequentTheme = theme
		}
	}
	digest.MeanCost = float64(totalCost) / float64(len(events))
	digest.MeanRating = float64(totalRating) / float64(len(events))
	return digest
}
