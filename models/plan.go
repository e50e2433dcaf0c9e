package models

import "time"

// EventPhase is one activity/venue within a multi-stop event plan.
// TravelTime and Distance describe the leg from the previous phase and are
// nil for the first phase of a plan.
type EventPhase struct {
	Name                 string   `json:"name" bson:"name"`
	Description          string   `json:"description" bson:"description"`
	Address              string   `json:"address" bson:"address"`
	GoogleMapsLink       string   `json:"googleMapsLink" bson:"googleMapsLink"`
	Cost                 int      `json:"cost" bson:"cost"`
	IsIndoor             bool     `json:"isIndoor" bson:"isIndoor"`
	IsOutdoor            bool     `json:"isOutdoor" bson:"isOutdoor"`
	IsVegetarianFriendly bool     `json:"isVegetarianFriendly" bson:"isVegetarianFriendly"`
	IsAlcoholFriendly    bool     `json:"isAlcoholFriendly" bson:"isAlcoholFriendly"`
	TravelTime           *int     `json:"travelTime" bson:"travelTime,omitempty"`
	Distance             *float64 `json:"distance" bson:"distance,omitempty"`
}

// EventPlan is a validated multi-phase event proposal. TotalCost always
// equals the sum of phase costs and respects the budget ladder for the
// plan's phase count.
type EventPlan struct {
	ID                 string       `json:"id" bson:"id"`
	Title              string       `json:"title" bson:"title"`
	Theme              string       `json:"theme" bson:"theme"`
	Phases             []EventPhase `json:"phases" bson:"phases"`
	TotalCost          int          `json:"totalCost" bson:"totalCost"`
	BestFor            []string     `json:"bestFor" bson:"bestFor"`
	Rating             int          `json:"rating" bson:"rating"`
	FitAnalysis        string       `json:"fitAnalysis" bson:"fitAnalysis"`
	ContributionNeeded int          `json:"contributionNeeded" bson:"contributionNeeded"`
	RotationSuggestion string       `json:"rotationSuggestion,omitempty" bson:"rotationSuggestion,omitempty"`
}

// PhaseCount returns the number of phases in the plan.
func (p *EventPlan) PhaseCount() int {
	return len(p.Phases)
}

// SavedEvent is an EventPlan promoted to the persistent history store.
type SavedEvent struct {
	ID            string         `json:"id" bson:"id"`
	Date          string         `json:"date" bson:"date"`
	Theme         string         `json:"theme" bson:"theme"`
	Location      string         `json:"location" bson:"location"`
	Participants  []string       `json:"participants" bson:"participants"`
	Activities    []string       `json:"activities" bson:"activities"`
	Phases        []EventPhase   `json:"phases" bson:"phases"`
	TotalCost     int            `json:"total_cost" bson:"totalCost"`
	Rating        int            `json:"rating" bson:"rating"`
	MemberRatings map[string]int `json:"member_ratings,omitempty" bson:"memberRatings,omitempty"`
	SavedAt       time.Time      `json:"saved_at" bson:"savedAt"`
}

// HistoryDigest aggregates saved events for prompt construction.
type HistoryDigest struct {
	Events            []SavedEvent
	MostFrequentTheme string
	MeanCost          float64
	MeanRating        float64
	// PhaseCountByTheme records the observed structural pattern, e.g.
	// "fun" events tend to run three phases.
	PhaseCountByTheme map[string]int
}
