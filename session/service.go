// Package session talks to the fleet backend so shifts tracked on this
// device show up in the office dashboard
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Service registers shifts with the fleet backend. Implementations must
// tolerate an unreachable backend: the tracker keeps working offline.
type Service interface {
	// Start registers a new shift for the driver and returns the backend's
	// session id.
	Start(ctx context.Context, driverID, timezone string) (string, error)
	// End reports the final totals for a previously started session.
	End(ctx context.Context, sessionID string, workMins, poaMins, breakMins, drivingMins int) error
}

// Client is an HTTP Service backed by the fleet API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient returns a Service that talks to the fleet API at baseURL,
// authenticating with the given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type startRequest struct {
	DriverID  string `json:"driver_id"`
	Timezone  string `json:"timezone"`
	StartedAt string `json:"started_at"`
}

type startResponse struct {
	SessionID string `json:"session_id"`
}

type endRequest struct {
	EndedAt            string `json:"ended_at"`
	TotalWorkMinutes   int    `json:"total_work_minutes"`
	TotalPOAMinutes    int    `json:"total_poa_minutes"`
	TotalBreakMinutes  int    `json:"total_break_minutes"`
	TotalDrivingMinute int    `json:"total_driving_minutes"`
}

func (c *Client) Start(
	ctx context.Context,
	driverID, timezone string,
) (string, error) {
	body := startRequest{
		DriverID:  driverID,
		Timezone:  timezone,
		StartedAt: time.Now().Format(time.RFC3339),
	}

	var resp startResponse

	err := c.post(ctx, "/sessions", body, &resp)
	if err != nil {
		return "", err
	}

	return resp.SessionID, nil
}

func (c *Client) End(
	ctx context.Context,
	sessionID string,
	workMins, poaMins, breakMins, drivingMins int,
) error {
	body := endRequest{
		EndedAt:            time.Now().Format(time.RFC3339),
		TotalWorkMinutes:   workMins,
		TotalPOAMinutes:    poaMins,
		TotalBreakMinutes:  breakMins,
		TotalDrivingMinute: drivingMins,
	}

	return c.post(ctx, "/sessions/"+sessionID+"/end", body, nil)
}

func (c *Client) post(
	ctx context.Context,
	path string,
	body, out any,
) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fleet backend returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Noop is the Service used when no sync backend is configured.
type Noop struct{}

func (Noop) Start(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

func (Noop) End(_ context.Context, _ string, _, _, _, _ int) error {
	return nil
}
