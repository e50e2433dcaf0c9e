package intelligence

import (
	"context"

	"teambond/models"
)

// PlanService drafts, parses and validates multi-phase event plans.
// GeneratePlans never fails: when every provider or candidate is unusable
// the result carries the canned fallback set with FallbackUsed set.
type PlanService interface {
	GeneratePlans(ctx context.Context, req models.GenerationRequest) *models.GenerationResult
}

// ModelOverrider is implemented by adapters that can retarget to a
// different model per request.
type ModelOverrider interface {
	WithModel(model string) ProviderAdapter
}
