package models

// GenerationMode controls how much historical context is injected into the
// prompt when drafting new plans.
type GenerationMode string

const (
	// ModeNew drafts plans with no historical context at all.
	ModeNew GenerationMode = "new"
	// ModeSimilar injects a digest of recent events plus aggregate stats.
	ModeSimilar GenerationMode = "similar"
	// ModeReuse additionally injects the observed phase-count-by-theme
	// structural pattern so the model mirrors past event shapes.
	ModeReuse GenerationMode = "reuse"
)

// GenerationRequest is the payload coming from the frontend into
// /api/plans/generate. Constructed once per user action; never persisted.
type GenerationRequest struct {
	Theme            string         `json:"theme"`
	Contribution     int            `json:"contribution"`
	AvailableMembers []string       `json:"available_members"`
	PreferredDate    string         `json:"preferred_date,omitempty"`
	PreferredZone    string         `json:"preferred_zone,omitempty"`
	Mode             GenerationMode `json:"mode"`
	Provider         string         `json:"provider,omitempty"`
	Model            string         `json:"model,omitempty"`
}

// GenerationResult is what the plan generation pipeline returns to the
// caller. Plans is never empty: when every provider or candidate fails the
// pipeline degrades to the canned fallback set and flags FallbackUsed.
type GenerationResult struct {
	Plans          []EventPlan `json:"plans"`
	Provider       string      `json:"provider"`
	Model          string      `json:"model,omitempty"`
	FallbackUsed   bool        `json:"fallback_used"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	// RejectedPlans counts candidates dropped during validation; advisory
	// diagnostics for operators, not part of the plan contract.
	RejectedPlans int `json:"rejected_plans,omitempty"`
}
