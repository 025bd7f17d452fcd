// Package provider wraps outbound calls to the Eko verification API. Every
// method returns a normalized envelope; transport and provider failures are
// folded into it and never escape as errors.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CreditsPerCall is the metered price of one verification call.
const CreditsPerCall = 1

// DebitFunc is the pre-flight credit check. Returning false vetoes the call
// before any network I/O happens.
type DebitFunc func(amount int, description string) bool

// Envelope is the uniform result of every provider call.
type Envelope struct {
	Success bool
	// Skipped marks a call vetoed by the credit check; no network I/O was
	// attempted and no provider payload exists.
	Skipped bool
	Data    map[string]any
	Error   string
}

// Client issues one POST per verification call against the provider API.
// No retry and no timeout beyond the transport defaults.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	debit   DebitFunc
}

type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDebitFunc installs the credit-metering callback.
func WithDebitFunc(fn DebitFunc) Option {
	return func(c *Client) { c.debit = fn }
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Verify performs one metered provider call. The returned error is reserved
// for unexpected conditions (request construction); everything the provider
// or the network does wrong comes back inside the envelope.
func (c *Client) Verify(ctx context.Context, endpoint string, payload map[string]string) (Envelope, error) {
	if c.debit != nil && !c.debit(CreditsPerCall, "API Call: "+endpoint) {
		return Envelope{Skipped: true, Error: "insufficient credits in wallet"}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{Error: err.Error()}, nil
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Envelope{Error: fmt.Sprintf("invalid JSON in provider response: %v", err)}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText := fmt.Sprintf("API error: %d", resp.StatusCode)
		if msg, ok := raw["message"].(string); ok && msg != "" {
			errText = msg
		}
		return Envelope{Data: raw, Error: errText}, nil
	}

	return Envelope{Success: true, Data: raw}, nil
}
