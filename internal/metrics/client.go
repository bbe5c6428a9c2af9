// Package metrics fetches externally computed company mortgage metrics.
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// Provider fetches the metrics summary for a company. A (nil, nil) return
// means the provider has no metrics for the company; reads proceed with
// zeroed counts.
type Provider interface {
	GetCompanyMetrics(ctx context.Context, companyNumber string) (*model.CompanyMetricsSummary, error)
}

// Config holds the metrics provider connection settings.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client is a remote client for the company metrics provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a metrics provider client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// metricsResponse is the provider's wire format; the mortgage section carries
// the counts merged into charge collection views.
type metricsResponse struct {
	Etag     string `json:"etag"`
	Mortgage *struct {
		SatisfiedCount     *int `json:"satisfied_count"`
		PartSatisfiedCount *int `json:"part_satisfied_count"`
		TotalCount         *int `json:"total_count"`
	} `json:"mortgage"`
}

// GetCompanyMetrics fetches the mortgage metrics summary for a company.
// A 404 is not an error: the company simply has no metrics yet.
func (c *Client) GetCompanyMetrics(ctx context.Context, companyNumber string) (*model.CompanyMetricsSummary, error) {
	url := fmt.Sprintf("%s/company/%s/metrics", c.baseURL, companyNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch company metrics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics provider returned status %d", resp.StatusCode)
	}

	var body metricsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode metrics response: %w", err)
	}

	summary := &model.CompanyMetricsSummary{Etag: body.Etag}
	if body.Mortgage != nil {
		summary.SatisfiedCount = body.Mortgage.SatisfiedCount
		summary.PartSatisfiedCount = body.Mortgage.PartSatisfiedCount
		summary.TotalCount = body.Mortgage.TotalCount
	}
	return summary, nil
}
