package intelligence

import (
	"fmt"
	"sync"
	"time"
)

const (
	// maxRecentErrors bounds the per-provider error ring.
	maxRecentErrors = 20
	// acceptableAvgLatency is the ceiling on mean response time for a
	// provider to win performance-based selection.
	acceptableAvgLatency = 15.0
)

// performanceRecord holds the rolling counters for one provider. Counters
// are append-only within process lifetime.
type performanceRecord struct {
	totalRequests int
	successes     int
	totalLatency  float64
	recentErrors  []string
}

// ProviderStats is the read-side snapshot of a provider's counters.
type ProviderStats struct {
	TotalRequests      int      `json:"total_requests"`
	SuccessfulRequests int      `json:"successful_requests"`
	SuccessRate        float64  `json:"success_rate"`
	AvgResponseTime    float64  `json:"avg_response_time"`
	Available          bool     `json:"available"`
	RecentErrors       []string `json:"recent_errors,omitempty"`
}

type providerEntry struct {
	adapter   ProviderAdapter
	available bool
}

// Registry holds the configured provider adapters, their rolling
// performance records and A/B test state. All state is instance-owned so
// tests can run against a fresh registry.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*providerEntry
	records  map[string]*performanceRecord
	abTests  map[string]*abTest
	defaults struct {
		primary  string
		fallback string
	}
}

// NewRegistry creates an empty registry with the given default and fallback
// provider names for auto selection.
func NewRegistry(defaultProvider, fallbackProvider string) *Registry {
	r := &Registry{
		entries: make(map[string]*providerEntry),
		records: make(map[string]*performanceRecord),
		abTests: make(map[string]*abTest),
	}
	r.defaults.primary = defaultProvider
	r.defaults.fallback = fallbackProvider
	return r
}

// Register adds an adapter and marks it available.
func (r *Registry) Register(adapter ProviderAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[adapter.Name()] = &providerEntry{adapter: adapter, available: true}
	if _, ok := r.records[adapter.Name()]; !ok {
		r.records[adapter.Name()] = &performanceRecord{}
	}
}

// SetAvailability flips a provider's availability flag without touching its
// counters.
func (r *Registry) SetAvailability(name string, available bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[name]; ok {
		entry.available = available
	}
}

// Get returns the adapter registered under name, available or not.
func (r *Registry) Get(name string) (ProviderAdapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return entry.adapter, true
}

// FallbackProvider returns the configured fallback adapter, if available.
func (r *Registry) FallbackProvider() (ProviderAdapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[r.defaults.fallback]
	if !ok || !entry.available {
		return nil, false
	}
	return entry.adapter, true
}

// SelectProvider picks an adapter. With an explicit name the named provider
// must exist and be available. With an empty name the auto policy applies:
// the configured default if available, else the available provider with the
// best success rate and acceptable latency, else any available provider.
// Returns ErrNoProviderAvailable when nothing qualifies.
func (r *Registry) SelectProvider(explicit string) (ProviderAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if explicit != "" {
		entry, ok := r.entries[explicit]
		if !ok || !entry.available {
			return nil, fmt.Errorf("provider %q: %w", explicit, ErrNoProviderAvailable)
		}
		return entry.adapter, nil
	}

	if entry, ok := r.entries[r.defaults.primary]; ok && entry.available {
		return entry.adapter, nil
	}

	var best *providerEntry
	bestRate := -1.0
	for name, entry := range r.entries {
		if !entry.available {
			continue
		}
		rec := r.records[name]
		if rec == nil || rec.totalRequests == 0 {
			continue
		}
		rate := float64(rec.successes) / float64(rec.totalRequests)
		avg := rec.totalLatency / float64(rec.totalRequests)
		if avg > acceptableAvgLatency {
			continue
		}
		if rate > bestRate {
			bestRate = rate
			best = entry
		}
	}
	if best != nil {
		return best.adapter, nil
	}

	for _, entry := range r.entries {
		if entry.available {
			return entry.adapter, nil
		}
	}
	return nil, ErrNoProviderAvailable
}

// RecordOutcome appends one generation attempt to a provider's counters.
func (r *Registry) RecordOutcome(name string, latencySeconds float64, success bool, errorMessage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[name]
	if !ok {
		rec = &performanceRecord{}
		r.records[name] = rec
	}
	rec.totalRequests++
	rec.totalLatency += latencySeconds
	if success {
		rec.successes++
	} else if errorMessage != "" {
		rec.recentErrors = append(rec.recentErrors, errorMessage)
		if len(rec.recentErrors) > maxRecentErrors {
			rec.recentErrors = rec.recentErrors[len(rec.recentErrors)-maxRecentErrors:]
		}
	}
}

// Stats returns a snapshot of every provider's rolling counters.
func (r *Registry) Stats() map[string]ProviderStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]ProviderStats, len(r.entries))
	for name, entry := range r.entries {
		rec := r.records[name]
		stats := ProviderStats{Available: entry.available}
		if rec != nil && rec.totalRequests > 0 {
			stats.TotalRequests = rec.totalRequests
			stats.SuccessfulRequests = rec.successes
			stats.SuccessRate = float64(rec.successes) / float64(rec.totalRequests)
			stats.AvgResponseTime = rec.totalLatency / float64(rec.totalRequests)
			stats.RecentErrors = append([]string(nil), rec.recentErrors...)
		}
		out[name] = stats
	}
	return out
}

// --- A/B testing ---

type abOutcome struct {
	Requests  int `json:"requests"`
	Successes int `json:"successes"`
}

type abTest struct {
	providers    []string
	trafficSplit map[string]float64
	startTime    time.Time
	counter      uint64
	results      map[string]*abOutcome
}

// ABTestResults aggregates the recorded outcomes for one test.
type ABTestResults struct {
	TestName     string               `json:"test_name"`
	StartTime    time.Time            `json:"start_time"`
	TrafficSplit map[string]float64   `json:"traffic_split"`
	Results      map[string]abOutcome `json:"results"`
	SuccessRates map[string]float64   `json:"success_rates"`
}

// SetupABTest configures a named test over the given providers. A nil
// trafficSplit means an equal split.
func (r *Registry) SetupABTest(testName string, providers []string, trafficSplit map[string]float64) error {
	if len(providers) == 0 {
		return fmt.Errorf("ab test %q: no providers given", testName)
	}
	if trafficSplit == nil {
		trafficSplit = make(map[string]float64, len(providers))
		for _, p := range providers {
			trafficSplit[p] = 1.0 / float64(len(providers))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	results := make(map[string]*abOutcome, len(providers))
	for _, p := range providers {
		results[p] = &abOutcome{}
	}
	r.abTests[testName] = &abTest{
		providers:    providers,
		trafficSplit: trafficSplit,
		startTime:    time.Now(),
		results:      results,
	}
	return nil
}

// ABTestAssign returns the provider name for the next invocation of the
// named test. Assignment is deterministic: a per-test counter walks the
// cumulative traffic split, so a 0.7/0.3 split hands out 70 of every 100
// assignments to the first provider.
func (r *Registry) ABTestAssign(testName string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	test, ok := r.abTests[testName]
	if !ok {
		return "", fmt.Errorf("ab test %q not configured", testName)
	}

	n := test.counter
	test.counter++
	point := float64(n%100) / 100.0

	cumulative := 0.0
	for _, provider := range test.providers {
		cumulative += test.trafficSplit[provider]
		if point < cumulative {
			return provider, nil
		}
	}
	return test.providers[0], nil
}

// RecordABTestResult tags one outcome with the named test.
func (r *Registry) RecordABTestResult(testName, provider string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	test, ok := r.abTests[testName]
	if !ok {
		return
	}
	outcome, ok := test.results[provider]
	if !ok {
		return
	}
	outcome.Requests++
	if success {
		outcome.Successes++
	}
}

// ABTestResults returns the aggregated outcomes for the named test.
func (r *Registry) ABTestResults(testName string) (*ABTestResults, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	test, ok := r.abTests[testName]
	if !ok {
		return nil, fmt.Errorf("ab test %q not configured", testName)
	}

	results := make(map[string]abOutcome, len(test.results))
	rates := make(map[string]float64, len(test.results))
	for provider, outcome := range test.results {
		results[provider] = *outcome
		if outcome.Requests > 0 {
			rates[provider] = float64(outcome.Successes) / float64(outcome.Requests)
		}
	}
	return &ABTestResults{
		TestName:     testName,
		StartTime:    test.startTime,
		TrafficSplit: test.trafficSplit,
		Results:      results,
		SuccessRates: rates,
	}, nil
}
