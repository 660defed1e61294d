package latitude

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the latitude.sh API base url
	DefaultBaseURL = "https://api.latitude.sh"

	// DefaultBillingCycleStartDay is the day of the month the bandwidth
	// billing cycle restarts on
	DefaultBillingCycleStartDay = 5
)

// ErrDisabled is returned by every query when no API key is configured
var ErrDisabled = errors.New("latitude client is disabled - no api key configured")

// Config is the configuration for the latitude client
type Config struct {
	APIKey               string `mapstructure:"api_key"`
	BaseURL              string `mapstructure:"base_url"`
	BillingCycleStartDay int    `mapstructure:"billing_cycle_start_day"`
}

// BandwidthUsage is the bandwidth consumed in the current billing cycle
// against the project quota
type BandwidthUsage struct {
	InboundGB       uint64
	OutboundGB      uint64
	QuotaGB         uint64
	InboundPercent  uint64
	OutboundPercent uint64
}

// Client reads traffic quota and usage from the latitude.sh API. A client
// without an API key is explicitly disabled rather than silently broken.
type Client struct {
	apiKey        string
	baseURL       string
	cycleStartDay int
	httpClient    *http.Client
	logger        zerolog.Logger
	now           func() time.Time
}

// NewFromConfig creates a new latitude client from a config
func NewFromConfig(cfg *Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cycleStartDay := cfg.BillingCycleStartDay
	if cycleStartDay < 1 || cycleStartDay > 31 {
		return nil, fmt.Errorf("invalid billing cycle start day %d, must be 1-31", cycleStartDay)
	}

	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		cycleStartDay: cycleStartDay,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		logger:        log.With().Str("component", "latitude").Logger(),
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// Enabled returns true when an API key is configured
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// TrafficQuota returns the total traffic quota in GB and the project id it
// applies to
func (c *Client) TrafficQuota() (quotaGB uint64, projectID string, err error) {
	body, err := c.get(c.baseURL + "/traffic/quota")
	if err != nil {
		return 0, "", err
	}

	projectID = gjson.GetBytes(body, "data.attributes.quota_per_project.0.project_id").String()
	quotaTB := gjson.GetBytes(body, "data.attributes.quota_per_project.0.quota_per_region.0.quota_in_tb.total")

	if projectID == "" || !quotaTB.Exists() {
		return 0, "", fmt.Errorf("traffic quota response is missing project id or quota")
	}

	return quotaTB.Uint() * 1024, projectID, nil
}

// BandwidthUsage returns the bandwidth consumed in the billing cycle
// enclosing the current time
func (c *Client) BandwidthUsage() (*BandwidthUsage, error) {
	quotaGB, projectID, err := c.TrafficQuota()
	if err != nil {
		return nil, err
	}

	window, err := CycleWindowFor(c.cycleStartDay, c.now())
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("project_id", projectID).
		Str("cycle_start", window.StartString()).
		Str("cycle_end", window.EndString()).
		Msg("querying traffic for billing cycle")

	trafficURL := fmt.Sprintf(
		"%s/traffic?filter[project]=%s&filter[date][gte]=%s&filter[date][lte]=%s",
		c.baseURL,
		url.QueryEscape(projectID),
		url.QueryEscape(window.StartString()+"Z"),
		url.QueryEscape(window.EndString()+"Z"),
	)

	body, err := c.get(trafficURL)
	if err != nil {
		return nil, err
	}

	inbound := gjson.GetBytes(body, "data.attributes.total_inbound_gb")
	outbound := gjson.GetBytes(body, "data.attributes.total_outbound_gb")
	if !inbound.Exists() || !outbound.Exists() {
		return nil, fmt.Errorf("traffic response is missing inbound or outbound totals")
	}
	if quotaGB == 0 {
		return nil, fmt.Errorf("project %s has a zero traffic quota", projectID)
	}

	return &BandwidthUsage{
		InboundGB:       inbound.Uint(),
		OutboundGB:      outbound.Uint(),
		QuotaGB:         quotaGB,
		InboundPercent:  inbound.Uint() * 100 / quotaGB,
		OutboundPercent: outbound.Uint() * 100 / quotaGB,
	}, nil
}

// get performs an authenticated GET and returns the response body
func (c *Client) get(requestURL string) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", requestURL, err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", requestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s returned status %d", requestURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", requestURL, err)
	}

	return body, nil
}
