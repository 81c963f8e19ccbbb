// Package netlify is a client for the hosting platform's custom-domain API:
// registering a verified domain against a site, reading back its SSL
// issuance state, and deregistering it.
package netlify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the domain API. The message is parsed
// from the JSON body when possible, falling back to the raw response text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("netlify api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	siteID     string
}

func NewClient(baseURL, token, siteID string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		token:      token,
		siteID:     siteID,
	}
}

// CreateDomain registers a custom domain with the site and returns the
// platform's domain record, including the initial SSL state.
func (c *Client) CreateDomain(ctx context.Context, domain string) (*Domain, error) {
	payload := map[string]any{"domain": domain}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal create domain: %w", err)
	}

	url := fmt.Sprintf("%s/sites/%s/domains", c.baseURL, c.siteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create domain request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create domain %s: %w", domain, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var d Domain
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode create domain response: %w", err)
	}
	return &d, nil
}

// GetDomain reads the platform record for a previously registered domain.
func (c *Client) GetDomain(ctx context.Context, domainID string) (*Domain, error) {
	url := fmt.Sprintf("%s/sites/%s/domains/%s", c.baseURL, c.siteID, domainID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get domain request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get domain %s: %w", domainID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var d Domain
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode get domain response: %w", err)
	}
	return &d, nil
}

// DeleteDomain removes a registered domain from the site. A 404 surfaces as
// an APIError so callers can treat "already gone" as success.
func (c *Client) DeleteDomain(ctx context.Context, domainID string) error {
	url := fmt.Sprintf("%s/sites/%s/domains/%s", c.baseURL, c.siteID, domainID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("delete domain request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete domain %s: %w", domainID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

// apiError builds an APIError from a non-2xx response, preferring the
// message/error fields of a JSON body over the raw text.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	message := string(body)
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
