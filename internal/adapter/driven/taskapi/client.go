// Package taskapi implements the TaskAPI port against the remote task API.
// It is the single choke point for outbound calls: every request picks up the
// stored bearer credential, and authorization failures are observed centrally.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
	"github.com/ericfisherdev/taskdeck/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TaskAPI = (*Client)(nil)

// ErrUnauthorized is returned when the server rejects the request's
// credential (HTTP 401). The configured invalidation callback has already
// fired by the time a caller sees this error.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Client is the HTTP gateway to the remote task API.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	onUnauthorized func() // Fired on every observed 401; may be nil.
}

// NewClient creates a task API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. authTransport (per-request bearer injection from the credential store)
//
// onUnauthorized fires whenever any call observes HTTP 401; the composition
// root wires it to session invalidation. It may be nil.
func NewClient(baseURL string, creds driven.CredentialStore, onUnauthorized func()) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	transport := &authTransport{
		next:  httpcache.NewMemoryCacheTransport(),
		creds: creds,
	}

	return &Client{
		baseURL:        u,
		http:           &http.Client{Transport: transport, Timeout: 30 * time.Second},
		onUnauthorized: onUnauthorized,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an
// httptest server. No credential injection happens on this path unless the
// provided client carries its own transport.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, onUnauthorized func()) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &Client{
		baseURL:        u,
		http:           httpClient,
		onUnauthorized: onUnauthorized,
	}, nil
}

// authTransport injects the stored bearer credential into every outgoing
// request. The store is read at send time, not at client construction, so a
// credential written or deleted between calls takes effect immediately.
type authTransport struct {
	next  http.RoundTripper
	creds driven.CredentialStore
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.creds.Get(req.Context(), model.AccessTokenName)
	if err != nil {
		slog.Warn("credential read failed, sending unauthenticated", "error", err)
		token = ""
	}

	if token != "" {
		// Clone before mutating: RoundTrippers must not modify the original request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return t.next.RoundTrip(req)
}

// apiError carries a non-401 failure status and the server's detail message.
// Callers that surface errors to users are expected to show a generic message
// instead of Detail.
type apiError struct {
	Status int
	Detail string
}

func (e *apiError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doForm issues a form-encoded POST and decodes the JSON response into out.
// Used by the login endpoint, which follows the OAuth2 password flow.
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// send executes the request, funnels every response through the central
// authorization check, and decodes a successful JSON body into out.
func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("api call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Central policy: no individual caller has to reason about session
		// expiry. The hosting application decides what to do with the signal.
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrUnauthorized)

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrNotFound)

	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, readAPIError(resp))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// readAPIError extracts the server's error detail ({"detail": "..."}) from a
// failure response body.
func readAPIError(resp *http.Response) *apiError {
	apiErr := &apiError{Status: resp.StatusCode}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}

	return apiErr
}

// parseAPITime parses a timestamp as emitted by the remote API. The server
// sometimes omits the timezone suffix on naive datetimes.
func parseAPITime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// parseAPITimePtr is parseAPITime for nullable timestamp fields.
func parseAPITimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseAPITime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
