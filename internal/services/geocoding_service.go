// internal/services/geocoding_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/config"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

// Geocoder resolves free-text manufacturing locations.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (scoring.ResolvedOrigin, error)
}

// commonLocations are country centroids answered without a network call.
var commonLocations = map[string]scoring.Coordinates{
	"usa":            {Latitude: 37.0902, Longitude: -95.7129},
	"united states":  {Latitude: 37.0902, Longitude: -95.7129},
	"canada":         {Latitude: 56.1304, Longitude: -106.3468},
	"mexico":         {Latitude: 23.6345, Longitude: -102.5528},
	"italy":          {Latitude: 41.8719, Longitude: 12.5674},
	"france":         {Latitude: 46.2276, Longitude: 2.2137},
	"spain":          {Latitude: 40.4637, Longitude: -3.7492},
	"germany":        {Latitude: 51.1657, Longitude: 10.4515},
	"uk":             {Latitude: 55.3781, Longitude: -3.4360},
	"united kingdom": {Latitude: 55.3781, Longitude: -3.4360},
	"china":          {Latitude: 35.8617, Longitude: 104.1954},
	"japan":          {Latitude: 36.2048, Longitude: 138.2529},
	"india":          {Latitude: 20.5937, Longitude: 78.9629},
	"brazil":         {Latitude: -14.2350, Longitude: -51.9253},
	"australia":      {Latitude: -25.2744, Longitude: 133.7751},
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	AddressType string `json:"addresstype"`
	DisplayName string `json:"display_name"`
}

// GeocodingService resolves locations against a Nominatim compatible API.
// Results are kept in a bounded in-process cache keyed by normalised text.
type GeocodingService struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	timeout     time.Duration
	rateLimiter *rate.Limiter

	mutex     sync.Mutex
	cache     map[string]scoring.ResolvedOrigin
	order     []string
	cacheSize int
}

var _ Geocoder = (*GeocodingService)(nil)

func NewGeocodingService(cfg config.GeocodingConfig) *GeocodingService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &GeocodingService{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		timeout:     timeout,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		cache:       make(map[string]scoring.ResolvedOrigin),
		cacheSize:   cfg.CacheSize,
	}
}

// Geocode resolves location to coordinates. Country names from the built-in
// table never reach the network. Every failure wraps ErrGeocodingFailed.
func (s *GeocodingService) Geocode(ctx context.Context, location string) (scoring.ResolvedOrigin, error) {
	place := utils.ParseManufacturingPlace(location)
	query := place.Query()
	if query == "" {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: empty location", ErrGeocodingFailed)
	}

	key := utils.NormalizeLocation(query)
	if coords, ok := commonLocations[key]; ok {
		return scoring.ResolvedOrigin{Coordinates: coords, Precision: scoring.PrecisionCountry}, nil
	}
	if origin, ok := s.cached(key); ok {
		return origin, nil
	}

	origin, err := s.search(ctx, query, place)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"location": query,
			"error":    err.Error(),
		}).Warn("Geocoding failed")
		return scoring.ResolvedOrigin{}, err
	}

	s.store(key, origin)
	logrus.WithFields(logrus.Fields{
		"location":  query,
		"latitude":  origin.Latitude,
		"longitude": origin.Longitude,
		"precision": origin.Precision,
	}).Debug("Location geocoded")
	return origin, nil
}

func (s *GeocodingService) search(ctx context.Context, query string, place utils.ManufacturingPlace) (scoring.ResolvedOrigin, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Nominatim allows one request per second per client.
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: rate limiter: %v", ErrGeocodingFailed, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	reqURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: %v", ErrGeocodingFailed, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: %v", ErrGeocodingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: status %d", ErrGeocodingFailed, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: decode response: %v", ErrGeocodingFailed, err)
	}
	if len(places) == 0 {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: no results for %q", ErrGeocodingFailed, query)
	}

	lat, errLat := strconv.ParseFloat(places[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(places[0].Lon, 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return scoring.ResolvedOrigin{}, fmt.Errorf("%w: invalid coordinates", ErrGeocodingFailed)
	}

	return scoring.ResolvedOrigin{
		Coordinates: scoring.Coordinates{Latitude: lat, Longitude: lon},
		Precision:   precisionOf(places[0].AddressType, place),
	}, nil
}

// precisionOf maps a Nominatim address type to a precision, falling back to
// how many parts the location text had.
func precisionOf(addressType string, place utils.ManufacturingPlace) scoring.LocationPrecision {
	switch strings.ToLower(addressType) {
	case "city", "town", "village", "hamlet", "municipality", "suburb", "city_district", "neighbourhood", "postcode":
		return scoring.PrecisionCity
	case "state", "province", "region", "county", "state_district":
		return scoring.PrecisionRegion
	case "country":
		return scoring.PrecisionCountry
	}

	switch {
	case place.Parts >= 3:
		return scoring.PrecisionCity
	case place.Parts == 2:
		return scoring.PrecisionRegion
	default:
		return scoring.PrecisionCountry
	}
}

func (s *GeocodingService) cached(key string) (scoring.ResolvedOrigin, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	origin, ok := s.cache[key]
	return origin, ok
}

// store adds an entry, evicting the oldest one when the cache is full.
func (s *GeocodingService) store(key string, origin scoring.ResolvedOrigin) {
	if s.cacheSize <= 0 {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.cache[key]; !exists {
		if len(s.order) >= s.cacheSize {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.cache, oldest)
		}
		s.order = append(s.order, key)
	}
	s.cache[key] = origin
}
