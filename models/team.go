package models

import "time"

// Vibe describes a team member's preferred event energy level.
type Vibe string

const (
	VibeChill     Vibe = "Chill"
	VibeEnergetic Vibe = "Energetic"
	VibeMixed     Vibe = "Mixed"
)

// TeamMember represents a member of the team roster. Members are created and
// edited through the roster endpoints and are treated as immutable once
// passed into a plan generation request.
type TeamMember struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location" bson:"location"`
	Preferences []string  `json:"preferences" bson:"preferences"`
	Vibe        Vibe      `json:"vibe" bson:"vibe"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}
