package location

import "context"

// GeocodeResult is a resolved address. Estimated marks a synthetic result
// produced when the maps provider could not be reached.
type GeocodeResult struct {
	FormattedAddress string  `json:"formatted_address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Estimated        bool    `json:"estimated,omitempty"`
}

// TravelMetrics describes the leg between two addresses. Estimated marks a
// synthetic nominal value produced when the lookup failed; callers treat it
// like real data so validation degrades instead of blocking.
type TravelMetrics struct {
	DistanceKm float64 `json:"distance_km"`
	Minutes    int     `json:"minutes"`
	Estimated  bool    `json:"estimated,omitempty"`
}

// Enricher resolves free-text addresses and computes pairwise travel
// metrics. Implementations never fail: any lookup error degrades to a
// clearly-marked synthetic estimate.
type Enricher interface {
	Geocode(ctx context.Context, address string) GeocodeResult
	TravelMetrics(ctx context.Context, origin, destination string) TravelMetrics
}
