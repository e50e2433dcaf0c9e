package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"teambond/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeHistoryRepo serves canned events without a database.
type fakeHistoryRepo struct {
	events []models.SavedEvent
	err    error
}

func (f *fakeHistoryRepo) Create(_ context.Context, _ models.SavedEvent) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeHistoryRepo) GetByID(_ context.Context, _ string) (*models.SavedEvent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeHistoryRepo) GetRecent(_ context.Context, limit int64) ([]models.SavedEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if int64(len(f.events)) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeHistoryRepo) RateByMember(_ context.Context, _, _ string, _ int) error {
	return errors.New("not implemented")
}

func (f *fakeHistoryRepo) DeleteByID(_ context.Context, _ string) error {
	return errors.New("not implemented")
}

func newTestService(r *Registry) *DefaultPlanService {
	return &DefaultPlanService{
		Registry:    r,
		Validator:   &ConstraintValidator{Logger: zap.NewNop()},
		Temperature: 0.7,
		MaxTokens:   2000,
		Timeout:     5 * time.Second,
		Logger:      zap.NewNop(),
	}
}

func TestGeneratePlansAllProvidersDown(t *testing.T) {
	svc := newTestService(NewRegistry("anthropic", "gemini"))

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{Theme: "fun"})
	require.NotNil(t, result)
	assert.True(t, result.FallbackUsed)
	require.NotEmpty(t, result.Plans)
	for _, plan := range result.Plans {
		phases := plan.PhaseCount()
		assert.GreaterOrEqual(t, phases, 1)
		assert.LessOrEqual(t, phases, MaxPhases)
		total := 0
		for _, phase := range plan.Phases {
			total += phase.Cost
		}
		assert.Equal(t, total, plan.TotalCost)
		assert.LessOrEqual(t, plan.TotalCost, BudgetCeiling(phases))
		assert.Equal(t, ContributionNeeded(plan.TotalCost), plan.ContributionNeeded)
	}
}

func TestGeneratePlansFencedResponse(t *testing.T) {
	adapter := &fakeAdapter{
		name:     "anthropic",
		model:    "claude-3-5-sonnet-20241022",
		response: "Here you go!\n```json\n" + plansJSON + "\n```",
	}
	svc := newTestService(newTestRegistry(adapter))

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{
		Theme:            "fun",
		AvailableMembers: []string{"Alice", "Bob"},
	})

	assert.False(t, result.FallbackUsed)
	assert.Equal(t, "anthropic", result.Provider)
	assert.Equal(t, "claude-3-5-sonnet-20241022", result.Model)
	require.Len(t, result.Plans, 1)
	assert.Equal(t, 250000, result.Plans[0].TotalCost)
	assert.Equal(t, 0, result.Plans[0].ContributionNeeded)
	assert.Zero(t, result.RejectedPlans)
	assert.Equal(t, 1, adapter.calls)
}

func TestGeneratePlansAllCandidatesRejected(t *testing.T) {
	overBudget := `{"plans":[{"title":"Splurge","phases":[` +
		`{"name":"A","cost":200000},{"name":"B","cost":200000},{"name":"C","cost":200000}]}]}`
	adapter := &fakeAdapter{name: "anthropic", response: overBudget}
	svc := newTestService(newTestRegistry(adapter))

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{Theme: "fun"})
	assert.True(t, result.FallbackUsed)
	assert.Equal(t, 1, result.RejectedPlans)
	assert.NotEmpty(t, result.Plans)
}

func TestGeneratePlansUnparseableResponse(t *testing.T) {
	adapter := &fakeAdapter{name: "anthropic", response: "Sorry, I cannot help with that."}
	svc := newTestService(newTestRegistry(adapter))

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{Theme: "fun"})
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.Plans)
	assert.Equal(t, "anthropic", result.Provider)
}

func TestGeneratePlansRetriesOnFallbackProvider(t *testing.T) {
	primary := &fakeAdapter{name: "anthropic", err: errors.New("rate limited")}
	fallback := &fakeAdapter{name: "gemini", model: "gemini-1.5-pro", response: plansJSON}
	svc := newTestService(newTestRegistry(primary, fallback))

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{Theme: "fun"})
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, "gemini", result.Provider)
	require.Len(t, result.Plans, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestGeneratePlansRecordsOutcomes(t *testing.T) {
	primary := &fakeAdapter{name: "anthropic", err: errors.New("overloaded")}
	fallback := &fakeAdapter{name: "gemini", response: plansJSON}
	registry := newTestRegistry(primary, fallback)
	svc := newTestService(registry)

	svc.GeneratePlans(context.Background(), models.GenerationRequest{Theme: "fun"})

	stats := registry.Stats()
	assert.Equal(t, 1, stats["anthropic"].TotalRequests)
	assert.Equal(t, 0, stats["anthropic"].SuccessfulRequests)
	assert.Equal(t, []string{"overloaded"}, stats["anthropic"].RecentErrors)
	assert.Equal(t, 1, stats["gemini"].TotalRequests)
	assert.Equal(t, 1, stats["gemini"].SuccessfulRequests)
}

func TestGeneratePlansModeReuseInjectsHistory(t *testing.T) {
	adapter := &fakeAdapter{name: "anthropic", response: plansJSON}
	svc := newTestService(newTestRegistry(adapter))
	svc.History = &fakeHistoryRepo{events: sampleHistory()}

	svc.GeneratePlans(context.Background(), models.GenerationRequest{
		Theme: "fun",
		Mode:  models.ModeReuse,
	})
	assert.Contains(t, adapter.lastPrompt, "Recent team events:")
	assert.Contains(t, adapter.lastPrompt, "Reuse the structural pattern")
}

func TestGeneratePlansModeNewIgnoresHistory(t *testing.T) {
	adapter := &fakeAdapter{name: "anthropic", response: plansJSON}
	svc := newTestService(newTestRegistry(adapter))
	svc.History = &fakeHistoryRepo{events: sampleHistory()}

	svc.GeneratePlans(context.Background(), models.GenerationRequest{
		Theme: "fun",
		Mode:  models.ModeNew,
	})
	assert.NotContains(t, adapter.lastPrompt, "Recent team events")
}

func TestGeneratePlansHistoryErrorDegradesQuietly(t *testing.T) {
	adapter := &fakeAdapter{name: "anthropic", response: plansJSON}
	svc := newTestService(newTestRegistry(adapter))
	svc.History = &fakeHistoryRepo{err: errors.New("mongo down")}

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{
		Theme: "fun",
		Mode:  models.ModeSimilar,
	})
	assert.False(t, result.FallbackUsed)
	assert.NotContains(t, adapter.lastPrompt, "Recent team events")
}

func TestGeneratePlansUnknownMembersGetDefaults(t *testing.T) {
	adapter := &fakeAdapter{name: "anthropic", response: plansJSON}
	svc := newTestService(newTestRegistry(adapter))

	svc.GeneratePlans(context.Background(), models.GenerationRequest{
		Theme:            "fun",
		AvailableMembers: []string{"Charlie"},
	})
	assert.Contains(t, adapter.lastPrompt, "• Charlie (Mixed): Ho Chi Minh City")
}

func TestGeneratePlansExplicitProviderUnavailable(t *testing.T) {
	adapter := &fakeAdapter{name: "anthropic", response: plansJSON}
	svc := newTestService(newTestRegistry(adapter))

	result := svc.GeneratePlans(context.Background(), models.GenerationRequest{
		Theme:    "fun",
		Provider: "openai",
	})
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.Plans)
	assert.Zero(t, adapter.calls)
}

func TestGenerationCacheKey(t *testing.T) {
	base := models.GenerationRequest{
		Theme:            "fun",
		AvailableMembers: []string{"Alice", "Bob"},
		Mode:             models.ModeNew,
	}

	same := base
	assert.Equal(t, generationCacheKey(base), generationCacheKey(same))

	themed := base
	themed.Theme = "chill"
	assert.NotEqual(t, generationCacheKey(base), generationCacheKey(themed))

	moded := base
	moded.Mode = models.ModeReuse
	assert.NotEqual(t, generationCacheKey(base), generationCacheKey(moded))

	routed := base
	routed.Provider = "openai"
	assert.NotEqual(t, generationCacheKey(base), generationCacheKey(routed))
}

func TestGeneratePlansWithoutCacheClient(t *testing.T) {
	// A nil cache disables result caching; every call reaches the provider.
	adapter := &fakeAdapter{name: "anthropic", response: plansJSON}
	svc := newTestService(newTestRegistry(adapter))

	req := models.GenerationRequest{Theme: "fun"}
	svc.GeneratePlans(context.Background(), req)
	svc.GeneratePlans(context.Background(), req)
	assert.Equal(t, 2, adapter.calls)
}

func TestFallbackPlansAreAlwaysValid(t *testing.T) {
	for _, plan := range FallbackPlans("fun") {
		phases := plan.PhaseCount()
		assert.LessOrEqual(t, plan.TotalCost, BudgetCeiling(phases), plan.Title)
		for i, phase := range plan.Phases {
			if i == 0 {
				assert.Nil(t, phase.Distance, plan.Title)
				continue
			}
			require.NotNil(t, phase.Distance, plan.Title)
			assert.LessOrEqual(t, *phase.Distance, MaxPhaseDistanceKm)
			require.NotNil(t, phase.TravelTime, plan.Title)
			assert.LessOrEqual(t, *phase.TravelTime, MaxPhaseTravelMinutes)
		}
	}

	// Empty theme gets a default.
	plans := FallbackPlans("")
	require.NotEmpty(t, plans)
	assert.Equal(t, "fun", plans[0].Theme)
}
