package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"travel-portal/config"
	"travel-portal/logger"
	"travel-portal/types"
)

const maxLoggedBody = 4096

// Service names used in logs and errors
const (
	ServiceUsers      = "users"
	ServicePackages   = "packages"
	ServiceBookings   = "bookings"
	ServiceInsurance  = "insurance"
	ServicePayments   = "payments"
	ServiceAssistance = "assistance"
	ServiceReviews    = "reviews"
)

// Recorder receives one entry per gateway call.
type Recorder interface {
	Log(entry types.LogEntry)
}

// Client talks to the backend services behind the gateway.
type Client struct {
	httpClient  *http.Client
	baseURLs    map[string]string
	recorder    Recorder
	resolveText bool
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRecorder logs every call.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithTextResolveBody sends ticket resolutions as a raw text body.
func WithTextResolveBody() Option {
	return func(c *Client) { c.resolveText = true }
}

func NewClient(urls config.ServiceURLs, opts ...Option) *Client {
	timeout := urls.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURLs: map[string]string{
			ServiceUsers:      urls.Users,
			ServicePackages:   urls.Packages,
			ServiceBookings:   urls.Bookings,
			ServiceInsurance:  urls.Insurance,
			ServicePayments:   urls.Payments,
			ServiceAssistance: urls.Assistance,
			ServiceReviews:    urls.Reviews,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestIDKey struct{}

// WithRequestID attaches the inbound request id to outgoing calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// call describes one request to a backend service.
type call struct {
	service     string
	method      string
	path        string
	query       url.Values
	token       string
	body        []byte
	contentType string
}

func (c *Client) jsonCall(service, method, path, token string, payload interface{}) (call, error) {
	cl := call{service: service, method: method, path: path, token: token}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return cl, fmt.Errorf("encode %s request: %w", service, err)
		}
		cl.body = body
		cl.contentType = "application/json"
	}
	return cl, nil
}

// do performs the call and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	endpoint := c.baseURLs[cl.service] + cl.path
	if len(cl.query) > 0 {
		endpoint += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if cl.body != nil {
		reader = bytes.NewReader(cl.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, cl.method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.service, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		httpReq.Header.Set("Content-Type", cl.contentType)
	}
	if cl.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if id := requestID(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.record(ctx, cl, endpoint, 0, nil, started, err)
		return fmt.Errorf("%w: %s service unreachable: %w", ErrUnavailable, cl.service, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(ctx, cl, endpoint, resp.StatusCode, nil, started, err)
		return fmt.Errorf("%w: read %s response: %w", ErrUnavailable, cl.service, err)
	}
	c.record(ctx, cl, endpoint, resp.StatusCode, respBody, started, nil)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(cl.service, resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", ErrUnavailable, cl.service, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, cl call, endpoint string, status int, respBody []byte, started time.Time, callErr error) {
	if c.recorder == nil {
		return
	}
	entry := types.LogEntry{
		RequestID:    requestID(ctx),
		Service:      cl.service,
		Method:       cl.method,
		URL:          endpoint,
		RequestBody:  truncate(cl.body, cl.contentType),
		ResponseBody: truncate(respBody, "application/json"),
		StatusCode:   status,
		DurationMs:   time.Since(started).Milliseconds(),
		CreatedAt:    started,
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	c.recorder.Log(entry)
}

func truncate(body []byte, contentType string) string {
	if strings.HasPrefix(contentType, "multipart/") {
		return "[multipart body]"
	}
	// Redact before cutting so a secret is never left half masked
	text := logger.Redact(string(body))
	if len(text) <= maxLoggedBody {
		return text
	}
	cut := maxLoggedBody
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "...(truncated)"
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
