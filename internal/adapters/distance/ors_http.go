package distance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	defaultORSProfile = "driving-car"
)

type httpStatusError struct {
	Code int
	Body string
}

// ORSConfig holds the settings shared by the OpenRouteService adapters.
// Zero values fall back to the public endpoint and the driving-car profile.
type ORSConfig struct {
	APIKey  string
	BaseURL string
	Profile string
	Timeout time.Duration
}

// orsClient is the HTTP plumbing shared by the ORS route provider and geocoder.
type orsClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func newORSClient(cfg ORSConfig) (*orsClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	c := &orsClient{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: cfg.Profile,
	}
	if cfg.Timeout > 0 {
		c.session.Timeout = cfg.Timeout
	}
	if c.baseURL == "" {
		c.baseURL = defaultORSBaseURL
	}
	if c.profile == "" {
		c.profile = defaultORSProfile
	}

	return c, nil
}

func (o *orsClient) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (o *orsClient) do(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx responses)
// using exponential backoff while respecting context cancellation.
func (o *orsClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := o.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func isTransient(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
