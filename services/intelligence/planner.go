package intelligence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	historyRepo "teambond/database/repository/history"
	rosterRepo "teambond/database/repository/roster"
	"teambond/models"
	"teambond/services/location"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// historyWindow is how many recent events feed the prompt digest.
	historyWindow = 10
	// resultCacheTTL bounds how long a generated result answers repeat
	// requests before the model is consulted again.
	resultCacheTTL = 10 * time.Minute
)

// DefaultPlanService orchestrates the generation pipeline:
// prompt building, provider selection, generation, parsing and validation,
// with an explicit fallback branch at every stage that can come up empty.
type DefaultPlanService struct {
	Registry  *Registry
	Roster    rosterRepo.TeamMemberRepository
	History   historyRepo.SavedEventRepository
	Validator *ConstraintValidator
	Enricher  location.Enricher
	// Cache holds recent generation results keyed by request. Nil disables
	// result caching.
	Cache *redis.Client

	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Logger      *zap.Logger
}

// GeneratePlans runs the full pipeline for one request. The returned result
// always carries a non-empty, schema-valid plan list.
func (s *DefaultPlanService) GeneratePlans(ctx context.Context, req models.GenerationRequest) *models.GenerationResult {
	logger := s.Logger
	if logger == nil {
		logger = zap.L()
	}
	start := time.Now()
	result := &models.GenerationResult{}

	cacheKey := generationCacheKey(req)
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		logger.Debug("Serving cached generation result",
			zap.String("theme", req.Theme), zap.String("mode", string(req.Mode)))
		return cached
	}

	// BuildingPrompt.
	members := s.resolveMembers(ctx, req.AvailableMembers)
	if req.PreferredZone == "" {
		req.PreferredZone = s.centralZone(ctx, members)
	}
	digest := s.loadDigest(ctx, req.Mode)
	userPrompt := BuildUserPrompt(req, members, digest)

	// Generating.
	raw, adapter, ok := s.generate(ctx, req, userPrompt, logger)
	if adapter != nil {
		result.Provider = adapter.Name()
		result.Model = adapter.Model()
	}
	if !ok {
		return s.fallback(result, req.Theme, start, logger, "generation failed")
	}

	// Parsing.
	candidates := ParsePlans(raw)
	if len(candidates) == 0 {
		logger.Warn("Model response yielded no plan candidates",
			zap.String("provider", result.Provider),
			zap.Int("responseLength", len(raw)))
		return s.fallback(result, req.Theme, start, logger, "unparseable response")
	}

	// Validating.
	plans, report := s.Validator.Validate(ctx, candidates)
	result.RejectedPlans = report.Rejected()
	if len(plans) == 0 {
		logger.Warn("All plan candidates rejected by validation",
			zap.String("provider", result.Provider),
			zap.Int("rejectedBudget", report.RejectedBudget),
			zap.Int("rejectedDistance", report.RejectedDistance))
		return s.fallback(result, req.Theme, start, logger, "validation rejected all candidates")
	}

	// Done. Fallback results never reach this point, so a degraded answer
	// is not pinned for the TTL.
	result.Plans = plans
	result.ElapsedSeconds = time.Since(start).Seconds()
	s.cacheResult(ctx, cacheKey, result, logger)
	return result
}

// generationCacheKey derives a stable cache key from the full request, so
// any change to theme, mode, roster, zone, date or provider routing misses.
func generationCacheKey(req models.GenerationRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return "plangen:" + req.Theme + ":" + string(req.Mode)
	}
	sum := sha256.Sum256(payload)
	return "plangen:" + hex.EncodeToString(sum[:])
}

func (s *DefaultPlanService) cachedResult(ctx context.Context, key string) *models.GenerationResult {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var result models.GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultPlanService) cacheResult(ctx context.Context, key string, result *models.GenerationResult, logger *zap.Logger) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, resultCacheTTL).Err(); err != nil {
		logger.Debug("Failed to cache generation result", zap.Error(err))
	}
}

// generate selects a provider and performs the model call, retrying once on
// the configured fallback provider. Outcomes are recorded either way.
func (s *DefaultPlanService) generate(ctx context.Context, req models.GenerationRequest, userPrompt string, logger *zap.Logger) (string, ProviderAdapter, bool) {
	adapter, err := s.Registry.SelectProvider(req.Provider)
	if err != nil {
		if errors.Is(err, ErrNoProviderAvailable) {
			logger.Warn("No AI provider available", zap.Error(err))
		}
		return "", nil, false
	}
	adapter = s.applyModelOverride(adapter, req.Model)

	raw, err := s.callProvider(ctx, adapter, userPrompt)
	if err == nil {
		return raw, adapter, true
	}
	logger.Warn("Provider call failed",
		zap.String("provider", adapter.Name()), zap.Error(err))

	// One retry on the configured fallback provider.
	fallback, ok := s.Registry.FallbackProvider()
	if !ok || fallback.Name() == adapter.Name() {
		return "", adapter, false
	}
	raw, err = s.callProvider(ctx, fallback, userPrompt)
	if err != nil {
		logger.Warn("Fallback provider call failed",
			zap.String("provider", fallback.Name()), zap.Error(err))
		return "", fallback, false
	}
	return raw, fallback, true
}

// callProvider runs one timed generation attempt and records its outcome.
func (s *DefaultPlanService) callProvider(ctx context.Context, adapter ProviderAdapter, userPrompt string) (string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	raw, err := adapter.Generate(callCtx, userPrompt, BuildSystemPrompt(), s.Temperature, s.MaxTokens)
	latency := time.Since(start).Seconds()
	if err != nil {
		s.Registry.RecordOutcome(adapter.Name(), latency, false, err.Error())
		return "", err
	}
	s.Registry.RecordOutcome(adapter.Name(), latency, true, "")
	return raw, nil
}

func (s *DefaultPlanService) applyModelOverride(adapter ProviderAdapter, model string) ProviderAdapter {
	if model == "" || model == adapter.Model() {
		return adapter
	}
	if overrider, ok := adapter.(ModelOverrider); ok {
		return overrider.WithModel(model)
	}
	return adapter
}

// resolveMembers looks the named members up in the roster; names with no
// roster record still join the prompt with neutral defaults.
func (s *DefaultPlanService) resolveMembers(ctx context.Context, names []string) []models.TeamMember {
	known := make(map[string]models.TeamMember)
	if s.Roster != nil && len(names) > 0 {
		members, err := s.Roster.GetByNames(ctx, names)
		if err == nil {
			for _, m := range members {
				known[m.Name] = m
			}
		}
	}

	resolved := make([]models.TeamMember, 0, len(names))
	for _, name := range names {
		if member, ok := known[name]; ok {
			resolved = append(resolved, member)
			continue
		}
		resolved = append(resolved, models.TeamMember{
			Name:     name,
			Location: "Ho Chi Minh City",
			Vibe:     models.VibeMixed,
		})
	}
	return resolved
}

// centralZone picks the most common home zone among the attending members,
// used as the area hint when the caller gave none.
func (s *DefaultPlanService) centralZone(ctx context.Context, members []models.TeamMember) string {
	if s.Enricher == nil {
		return ""
	}
	counts := make(map[string]int)
	for _, member := range members {
		geo := s.Enricher.Geocode(ctx, member.Location)
		zone := location.Zone(geo.FormattedAddress)
		if zone != "Unknown Zone" {
			counts[zone]++
		}
	}
	best, bestCount := "", 0
	for zone, count := range counts {
		if count > bestCount {
			best, bestCount = zone, count
		}
	}
	return best
}

func (s *DefaultPlanService) loadDigest(ctx context.Context, mode models.GenerationMode) *models.HistoryDigest {
	if mode != models.ModeSimilar && mode != models.ModeReuse {
		return nil
	}
	if s.History == nil {
		return nil
	}
	events, err := s.History.GetRecent(ctx, historyWindow)
	if err != nil {
		return nil
	}
	return BuildHistoryDigest(events)
}

func (s *DefaultPlanService) fallback(result *models.GenerationResult, theme string, start time.Time, logger *zap.Logger, reason string) *models.GenerationResult {
	logger.Info("Serving fallback plans", zap.String("reason", reason))
	result.Plans = FallbackPlans(theme)
	result.FallbackUsed = true
	result.ElapsedSeconds = time.Since(start).Seconds()
	return result
}
