package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoAssignment reports that the remote call succeeded but no aircraft has
// been assigned to the flight yet.
var ErrNoAssignment = errors.New("no aircraft assigned to flight yet")

// ErrUnavailable reports that the remote call did not succeed (transport
// failure, timeout, or a server-side error). It is deliberately distinct from
// ErrNoAssignment so the two surface as different user-facing conditions.
var ErrUnavailable = errors.New("flight data unavailable")

// RegistrationClient resolves a flight number and date to a tail registration.
type RegistrationClient interface {
	Registration(ctx context.Context, flight, date string) (string, error)
}

// Client is the HTTP implementation of RegistrationClient.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// flightLeg is one candidate aircraft in the remote response.
type flightLeg struct {
	Registration string `json:"registration"`
	Airline      string `json:"airline,omitempty"`
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
}

// NewClient creates a flight-data API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: timeout,
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Transport: transport},
	}
}

// Registration looks up the tail registration for a flight on a date.
//
// Codeshare flights return multiple candidate aircraft; by policy the first
// entry wins (the upstream publishes the operating carrier first). An empty
// array, an empty registration, or HTTP 404 all mean ErrNoAssignment; any
// other failure wraps ErrUnavailable.
func (c *Client) Registration(ctx context.Context, flight, date string) (string, error) {
	u := fmt.Sprintf("%s/flights/%s?date=%s",
		c.baseURL, url.PathEscape(flight), url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNoAssignment
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var legs []flightLeg
	if err := json.NewDecoder(resp.Body).Decode(&legs); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(legs) == 0 || strings.TrimSpace(legs[0].Registration) == "" {
		return "", ErrNoAssignment
	}
	return strings.TrimSpace(legs[0].Registration), nil
}
