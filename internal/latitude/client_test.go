package latitude

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuotaResponse = `{
	"data": {
		"attributes": {
			"quota_per_project": [
				{
					"project_id": "proj_123",
					"quota_per_region": [
						{
							"region_id": 4,
							"quota_in_tb": {
								"granted": 1,
								"additional": 0,
								"total": 5
							}
						}
					]
				}
			]
		}
	}
}`

// createTestServer serves canned quota and traffic responses and records the
// traffic query it receives
func createTestServer(t *testing.T, trafficResponse string, capturedQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		switch r.URL.Path {
		case "/traffic/quota":
			fmt.Fprint(w, testQuotaResponse)
		case "/traffic":
			if capturedQuery != nil {
				*capturedQuery = r.URL.RawQuery
			}
			fmt.Fprint(w, trafficResponse)
		default:
			t.Errorf("unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

// createTestClient creates an enabled client pointed at the test server with
// a pinned clock
func createTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewFromConfig(&Config{
		APIKey:               "test-api-key",
		BaseURL:              serverURL,
		BillingCycleStartDay: 5,
	})
	require.NoError(t, err)

	client.now = func() time.Time {
		return time.Date(2024, time.August, 12, 9, 30, 0, 0, time.UTC)
	}
	return client
}

func TestNewFromConfig_Defaults(t *testing.T) {
	client, err := NewFromConfig(&Config{BillingCycleStartDay: DefaultBillingCycleStartDay})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultBillingCycleStartDay, client.cycleStartDay)
	assert.False(t, client.Enabled())
}

func TestNewFromConfig_InvalidCycleStartDay(t *testing.T) {
	_, err := NewFromConfig(&Config{BillingCycleStartDay: 0})
	assert.Error(t, err)

	_, err = NewFromConfig(&Config{BillingCycleStartDay: 32})
	assert.Error(t, err)
}

func TestEnabled(t *testing.T) {
	client, err := NewFromConfig(&Config{
		APIKey:               "test-api-key",
		BillingCycleStartDay: 5,
	})
	require.NoError(t, err)
	assert.True(t, client.Enabled())
}

func TestTrafficQuota(t *testing.T) {
	server := createTestServer(t, "{}", nil)
	defer server.Close()

	client := createTestClient(t, server.URL)

	quotaGB, projectID, err := client.TrafficQuota()
	require.NoError(t, err)
	assert.Equal(t, uint64(5*1024), quotaGB)
	assert.Equal(t, "proj_123", projectID)
}

func TestTrafficQuota_MissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"attributes": {}}}`)
	}))
	defer server.Close()

	client := createTestClient(t, server.URL)

	_, _, err := client.TrafficQuota()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing project id or quota")
}

func TestBandwidthUsage(t *testing.T) {
	trafficResponse := `{
		"data": {
			"attributes": {
				"total_inbound_gb": 512,
				"total_outbound_gb": 1024
			}
		}
	}`

	var capturedQuery string
	server := createTestServer(t, trafficResponse, &capturedQuery)
	defer server.Close()

	client := createTestClient(t, server.URL)

	usage, err := client.BandwidthUsage()
	require.NoError(t, err)
	require.NotNil(t, usage)

	assert.Equal(t, uint64(512), usage.InboundGB)
	assert.Equal(t, uint64(1024), usage.OutboundGB)
	assert.Equal(t, uint64(5*1024), usage.QuotaGB)
	assert.Equal(t, uint64(10), usage.InboundPercent)
	assert.Equal(t, uint64(20), usage.OutboundPercent)

	// the traffic query is scoped to the project and the billing cycle
	assert.Contains(t, capturedQuery, "filter[project]=proj_123")
	assert.Contains(t, capturedQuery, "2024-08-05T00%3A00%3A00Z")
	assert.Contains(t, capturedQuery, "2024-09-05T00%3A00%3A00Z")
}

func TestBandwidthUsage_MissingTotals(t *testing.T) {
	server := createTestServer(t, `{"data": {"attributes": {}}}`, nil)
	defer server.Close()

	client := createTestClient(t, server.URL)

	usage, err := client.BandwidthUsage()
	require.Error(t, err)
	assert.Nil(t, usage)
	assert.Contains(t, err.Error(), "missing inbound or outbound totals")
}

func TestBandwidthUsage_Disabled(t *testing.T) {
	client, err := NewFromConfig(&Config{BillingCycleStartDay: 5})
	require.NoError(t, err)

	usage, err := client.BandwidthUsage()
	require.Error(t, err)
	assert.Nil(t, usage)
	assert.True(t, errors.Is(err, ErrDisabled))
}

func TestGet_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := createTestClient(t, server.URL)

	_, err := client.get(server.URL + "/traffic/quota")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 401")
}
