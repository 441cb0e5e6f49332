package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request; public Nominatim instances
// reject anonymous clients.
const DefaultUserAgent = "rainwater-advisor/1.0"

// Error represents a failed request to a geocoding service.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("geocode error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("geocode error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures RemoteGeocoder requests.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	CountryCode string // ISO 3166-1 alpha-2 filter, empty for worldwide
	Headers     map[string]string
}

// DefaultOptions returns defaults restricted to India, where the rainfall
// tables apply.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		CountryCode: "in",
	}
}

// RemoteGeocoder queries a Nominatim-compatible /search endpoint.
type RemoteGeocoder struct {
	baseURL string
	client  *http.Client
	options *Options
}

// NewRemoteGeocoder returns a geocoder for baseURL, e.g.
// https://nominatim.openstreetmap.org. A nil opts uses DefaultOptions.
func NewRemoteGeocoder(baseURL string, opts *Options) (*RemoteGeocoder, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: baseURL, Message: "invalid URL", Cause: err}
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &RemoteGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		options: opts,
	}, nil
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
}

// Geocode implements Geocoder.
func (g *RemoteGeocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty query: %w", ErrNoMatch)
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.options.CountryCode != "" {
		params.Set("countrycodes", g.options.CountryCode)
	}
	reqURL := g.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", g.options.UserAgent)
	req.Header.Set("Accept", "application/json")
	for key, value := range g.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: reqURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to read response body", Cause: err}
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to decode response", Cause: err}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%q: %w", q, ErrNoMatch)
	}

	top := results[0]
	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "invalid latitude", Cause: err}
	}
	lng, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "invalid longitude", Cause: err}
	}

	accuracy := AccuracyPartial
	if strings.EqualFold(firstComponent(top), q) {
		accuracy = AccuracyExact
	}
	return &Location{
		Address:     top.DisplayName,
		Coordinates: types.Coordinates{Lat: lat, Lng: lng},
		Accuracy:    accuracy,
	}, nil
}

func firstComponent(r searchResult) string {
	if r.Name != "" {
		return r.Name
	}
	name, _, _ := strings.Cut(r.DisplayName, ",")
	return strings.TrimSpace(name)
}
