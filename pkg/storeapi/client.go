package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/maisonlux/storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the upstream store API: product records, session checks
// and the analytics collector.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type productResponse struct {
	Success bool           `json:"success"`
	Product models.Product `json:"product"`
}

type productsResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
}

// Product fetches a single record by id.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	endpoint := c.baseURL + "/api/products/" + url.PathEscape(id)

	var resp productResponse

	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return models.Product{}, err
	}

	if !resp.Success {
		return models.Product{}, fmt.Errorf("product %s not found", id)
	}

	return resp.Product, nil
}

// Products fetches the full record set.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var resp productsResponse

	if err := c.getJSON(ctx, c.baseURL+"/api/products", &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("products request rejected")
	}

	return resp.Products, nil
}

// CheckSession asks the account service whether the session is live.
func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	var resp models.SessionStatus

	if err := c.getJSON(ctx, c.baseURL+"/api/auth/check", &resp); err != nil {
		return false, err
	}

	return resp.IsAuthenticated, nil
}

// TrackEvent posts one analytics event to the collector.
func (c *Client) TrackEvent(ctx context.Context, event models.AnalyticsEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analytics/track", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create analytics request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver analytics event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("analytics collector returned status %d", resp.StatusCode)
	}

	return nil
}

// Ping checks that the upstream answers at all; used by the health probe.
func (c *Client) Ping(ctx context.Context) error {
	var resp productsResponse

	return c.getJSON(ctx, c.baseURL+"/api/products", &resp)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	return nil
}
