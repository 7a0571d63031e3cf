// Package fetch issues single outbound requests on behalf of the extractors.
// Every failure is reported as an error wrapping ErrRequestFailed so callers
// can turn it into an empty result without inspecting transport details.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gourmet/internal/domain"
	"gourmet/internal/infra"
)

// ErrRequestFailed marks every transport, status, content-type or decode failure.
var ErrRequestFailed = errors.New("fetch: request failed")

const (
	defaultMaxBodyBytes      = 10 << 20
	defaultMaxImageDimension = 800
	defaultUserAgent         = "Mozilla/5.0 (compatible; gourmet/1.0)"
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	HTTPClient        *http.Client
	Logger            *infra.Logger
	MaxBodyBytes      int64
	MaxImageDimension int
	UserAgent         string
}

// Client is safe for concurrent use; it holds no per-request state.
type Client struct {
	httpClient   *http.Client
	logger       *infra.Logger
	maxBodyBytes int64
	maxDimension int
	userAgent    string
}

func New(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	maxDim := opts.MaxImageDimension
	if maxDim <= 0 {
		maxDim = defaultMaxImageDimension
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		httpClient:   client,
		logger:       logger,
		maxBodyBytes: maxBody,
		maxDimension: maxDim,
		userAgent:    ua,
	}
}

// GetJSON issues a GET to rawURL with params merged into its query string and
// decodes a JSON body into out. A zero timeout leaves the deadline to ctx.
// On a non-2xx status a JSON body is still decoded into out, best effort, so
// callers can read provider error fields; the status error is returned.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, timeout time.Duration, out any) error {
	return c.get(ctx, rawURL, params, timeout, "application/json", true, func(contentType string) error {
		if !strings.Contains(strings.ToLower(contentType), "json") {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedContent, contentType)
		}
		return nil
	}, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	})
}

func (c *Client) get(
	ctx context.Context,
	rawURL string,
	params url.Values,
	timeout time.Duration,
	accept string,
	decodeErrorBody bool,
	checkContentType func(string) error,
	read func(io.Reader) error,
) error {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return c.fail(rawURL, err)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return c.fail(rawURL, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(rawURL, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErrorBody && checkContentType(resp.Header.Get("Content-Type")) == nil {
			_ = read(io.LimitReader(resp.Body, c.maxBodyBytes))
		}
		return c.fail(rawURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return c.fail(rawURL, fmt.Errorf("%w: missing content type", domain.ErrUnsupportedContent))
	}
	if err := checkContentType(contentType); err != nil {
		return c.fail(rawURL, err)
	}
	if err := read(io.LimitReader(resp.Body, c.maxBodyBytes)); err != nil {
		return c.fail(rawURL, err)
	}
	return nil
}

func (c *Client) fail(rawURL string, err error) error {
	endpoint := redact(rawURL)
	c.logger.Debug().Err(err).Str("url", endpoint).Msg("fetch failed")
	return fmt.Errorf("%w: %s: %w", ErrRequestFailed, endpoint, err)
}

func buildURL(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			q[k] = append([]string(nil), vs...)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// redact drops the query string, which carries API keys.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
