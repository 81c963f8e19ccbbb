// Package doh queries a public DNS-over-HTTPS resolver (Google JSON wire
// format) for the records of a candidate custom domain.
package doh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Record type codes in DoH JSON answers.
const (
	TypeA     = 1
	TypeCNAME = 5
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a resolver client for the given DNS-over-HTTPS endpoint,
// e.g. https://dns.google/resolve.
func NewClient(baseURL string) *Client {
	return &Client{httpClient: &http.Client{}, baseURL: baseURL}
}

type answer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

type response struct {
	Status int      `json:"Status"`
	Answer []answer `json:"Answer"`
}

// Lookup resolves the given hostname and returns the record values for the
// requested type ("CNAME" or "A"). A non-zero resolver status or an empty
// answer set means the domain is simply not configured and yields an empty
// result, not an error; only transport failures and malformed responses
// error out.
func (c *Client) Lookup(ctx context.Context, name, recordType string) ([]string, error) {
	u := fmt.Sprintf("%s?name=%s&type=%s", c.baseURL, url.QueryEscape(name), url.QueryEscape(recordType))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/dns-json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %s %s: %w", recordType, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lookup %s %s: status %d: %s", recordType, name, resp.StatusCode, string(body))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	// NXDOMAIN, SERVFAIL and friends mean "not configured", not a hard error.
	if parsed.Status != 0 {
		return nil, nil
	}

	wantType := TypeA
	if recordType == "CNAME" {
		wantType = TypeCNAME
	}

	var values []string
	for _, a := range parsed.Answer {
		if a.Type == wantType && a.Data != "" {
			values = append(values, a.Data)
		}
	}
	return values, nil
}
