package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ridepool_backend/pkg/utils/geo"
)

// Client talks to a Nominatim-compatible geocoding service. The service
// requires an identifying User-Agent on every request.
type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

type forwardResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Forward resolves a free-text address to coordinates and a normalized
// display name. Returns an error when the service has no result.
func (c *Client) Forward(ctx context.Context, address string) (geo.Point, string, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []forwardResult
	if err := c.get(ctx, "/search", query, &results); err != nil {
		return geo.Point{}, "", err
	}
	if len(results) == 0 {
		return geo.Point{}, "", fmt.Errorf("no results for %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Point{}, "", fmt.Errorf("invalid latitude in response: %v", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Point{}, "", fmt.Errorf("invalid longitude in response: %v", err)
	}

	return geo.Point{Lat: lat, Lng: lng}, results[0].DisplayName, nil
}

// Reverse resolves coordinates to a display address.
func (c *Client) Reverse(ctx context.Context, p geo.Point) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	query.Set("format", "json")

	var result reverseResult
	if err := c.get(ctx, "/reverse", query, &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("no address for %.4f,%.4f", p.Lat, p.Lng)
	}

	return result.DisplayName, nil
}
