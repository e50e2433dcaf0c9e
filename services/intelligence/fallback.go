package intelligence

import "teambond/models"

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// FallbackPlans returns the hand-authored sample plans served when
// generation, parsing or validation produced no usable candidates. Every
// plan here is pre-validated against the budget ladder and the travel
// constraints so the caller always receives a well-formed, non-empty list.
func FallbackPlans(theme string) []models.EventPlan {
	if theme == "" {
		theme = "fun"
	}
	return []models.EventPlan{
		{
			ID:    "fallback-dinner",
			Title: "Team Dinner Night",
			Theme: theme,
			Phases: []models.EventPhase{
				{
					Name:                 "Hotpot Dinner",
					Description:          "Shared hotpot dinner, easy for any group size.",
					Address:              "123 Nguyen Hue, District 1, Ho Chi Minh City",
					GoogleMapsLink:       "https://www.google.com/maps/search/?api=1&query=123+Nguyen+Hue+District+1",
					Cost:                 250000,
					IsIndoor:             true,
					IsVegetarianFriendly: true,
				},
			},
			TotalCost:          250000,
			BestFor:            []string{},
			Rating:             4,
			FitAnalysis:        "A safe all-rounder that fits the base budget with room to spare.",
			ContributionNeeded: 0,
			RotationSuggestion: "Alternate dinner venues monthly to keep it fresh.",
		},
		{
			ID:    "fallback-chill",
			Title: "Cafe and Board Games",
			Theme: theme,
			Phases: []models.EventPhase{
				{
					Name:                 "Cafe Meetup",
					Description:          "Coffee and catch-up at a quiet cafe.",
					Address:              "321 Thao Dien, District 2, Ho Chi Minh City",
					GoogleMapsLink:       "https://www.google.com/maps/search/?api=1&query=321+Thao+Dien+District+2",
					Cost:                 120000,
					IsIndoor:             true,
					IsVegetarianFriendly: true,
				},
				{
					Name:           "Board Game Session",
					Description:    "Casual team games at a board game cafe nearby.",
					Address:        "350 Thao Dien, District 2, Ho Chi Minh City",
					GoogleMapsLink: "https://www.google.com/maps/search/?api=1&query=350+Thao+Dien+District+2",
					Cost:           130000,
					IsIndoor:       true,
					TravelTime:     intPtr(5),
					Distance:       floatPtr(0.4),
				},
			},
			TotalCost:          250000,
			BestFor:            []string{},
			Rating:             4,
			FitAnalysis:        "Low-key option that works for mixed energy levels.",
			ContributionNeeded: 0,
			RotationSuggestion: "Swap board games for a movie night every other round.",
		},
		{
			ID:    "fallback-full-evening",
			Title: "Dinner, Karaoke and Dessert",
			Theme: theme,
			Phases: []models.EventPhase{
				{
					Name:              "Korean BBQ Dinner",
					Description:       "Grilled dinner to kick the evening off.",
					Address:           "123 Pasteur, District 1, Ho Chi Minh City",
					GoogleMapsLink:    "https://www.google.com/maps/search/?api=1&query=123+Pasteur+District+1",
					Cost:              280000,
					IsIndoor:          true,
					IsAlcoholFriendly: true,
				},
				{
					Name:              "Karaoke",
					Description:       "Private room karaoke within walking distance.",
					Address:           "456 Le Loi, District 1, Ho Chi Minh City",
					GoogleMapsLink:    "https://www.google.com/maps/search/?api=1&query=456+Le+Loi+District+1",
					Cost:              150000,
					IsIndoor:          true,
					IsAlcoholFriendly: true,
					TravelTime:        intPtr(8),
					Distance:          floatPtr(1.1),
				},
				{
					Name:                 "Dessert Stop",
					Description:          "Che and ice cream to wind down.",
					Address:              "789 Dong Khoi, District 1, Ho Chi Minh City",
					GoogleMapsLink:       "https://www.google.com/maps/search/?api=1&query=789+Dong+Khoi+District+1",
					Cost:                 70000,
					IsIndoor:             true,
					IsVegetarianFriendly: true,
					TravelTime:           intPtr(6),
					Distance:             floatPtr(0.9),
				},
			},
			TotalCost:          500000,
			BestFor:            []string{},
			Rating:             5,
			FitAnalysis:        "The full evening out; needs a top-up over the base budget.",
			ContributionNeeded: 200000,
			RotationSuggestion: "Save this one for quarterly celebrations.",
		},
	}
}
