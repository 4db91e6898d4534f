package zillow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/zillow-connector/pkg/httpclient"
)

// DefaultTimeout bounds a single call when no transport is injected.
const DefaultTimeout = 15 * time.Second

// Client calls the Zillow web-service API. It is immutable after
// construction and safe for concurrent use when its transport is.
type Client struct {
	apiKey   string
	baseURL  string
	http     httpclient.Client
	validate bool
	log      Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if u := strings.TrimSpace(baseURL); u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient injects the transport used for every call.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithValidation enables client-side checks of ranges and enums before a
// request is sent. Disabled by default: values are passed through as given.
func WithValidation(enabled bool) Option {
	return func(c *Client) { c.validate = enabled }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient builds a client for the given ZWS-ID.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(DefaultTimeout, "")
	}
	return c, nil
}

// URL returns the request URL the client would call for op and params.
func (c *Client) URL(op Operation, params map[string]string) (string, error) {
	return BuildURL(c.baseURL, c.apiKey, op, params)
}

// Do runs op with params and returns the raw response body.
func (c *Client) Do(ctx context.Context, op Operation, params map[string]string) (string, error) {
	if c == nil || c.http == nil {
		return "", fmt.Errorf("zillow client is not initialized")
	}
	if c.validate {
		if err := Validate(op, params); err != nil {
			return "", err
		}
	}

	reqURL, err := c.URL(op, params)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, reqURL, nil)
	if err != nil {
		return "", c.commError(op, 0, err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return "", c.commError(op, code, fmt.Errorf("body: %s", responseSnippet(resp.Body())))
	}

	body := resp.Body()
	c.log.DebugObj("zillow call completed", "zillow_call", map[string]any{
		"operation":  op.Name,
		"status":     resp.StatusCode(),
		"bytes":      len(body),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return string(body), nil
}

func (c *Client) commError(op Operation, status int, err error) error {
	cerr := &CommunicationError{Operation: op.Name, StatusCode: status, Err: err, secret: c.apiKey}
	c.log.WarnObj("zillow call failed", "zillow_error", map[string]any{
		"operation": op.Name,
		"status":    status,
		"error":     cerr.Error(),
	})
	return cerr
}

// ZestimateRequest holds the parameters of getZestimate.
type ZestimateRequest struct {
	ZPID          string
	RentZestimate string
}

// GetZestimate returns the most recent Zestimate XML for a property.
func (c *Client) GetZestimate(ctx context.Context, req ZestimateRequest) (string, error) {
	return c.Do(ctx, GetZestimate, map[string]string{
		ParamZPID:          req.ZPID,
		ParamRentZestimate: req.RentZestimate,
	})
}

// ChartRequest holds the parameters of getChart.
type ChartRequest struct {
	ZPID          string
	UnitType      string
	Width         string
	Height        string
	ChartDuration string
}

// GetChart returns the XML describing a historical value chart image.
func (c *Client) GetChart(ctx context.Context, req ChartRequest) (string, error) {
	return c.Do(ctx, GetChart, map[string]string{
		ParamZPID:          req.ZPID,
		ParamUnitType:      req.UnitType,
		ParamWidth:         req.Width,
		ParamHeight:        req.Height,
		ParamChartDuration: req.ChartDuration,
	})
}

// SearchRequest holds the parameters of getSearchResults.
type SearchRequest struct {
	// ZPID is passed through when set.
	ZPID          string
	Address       string
	CityStateZip  string
	RentZestimate string
}

// GetSearchResults searches properties by address and city/state or ZIP.
func (c *Client) GetSearchResults(ctx context.Context, req SearchRequest) (string, error) {
	return c.Do(ctx, GetSearchResults, map[string]string{
		ParamZPID:          req.ZPID,
		ParamAddress:       req.Address,
		ParamCityStateZip:  req.CityStateZip,
		ParamRentZestimate: req.RentZestimate,
	})
}

// CompsRequest holds the parameters of getComps.
type CompsRequest struct {
	ZPID          string
	Count         string
	RentZestimate string
}

// GetComps returns comparable recent sales for a property.
func (c *Client) GetComps(ctx context.Context, req CompsRequest) (string, error) {
	return c.Do(ctx, GetComps, map[string]string{
		ParamZPID:          req.ZPID,
		ParamCount:         req.Count,
		ParamRentZestimate: req.RentZestimate,
	})
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
