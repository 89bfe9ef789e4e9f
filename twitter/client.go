package twitter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Twitter API host.
	DefaultBaseURL = "https://api.twitter.com"
	// DefaultAPIVersion is the versioned prefix for resource paths.
	DefaultAPIVersion = "1.1"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "chirp"
)

// Config holds the application credentials for both authentication flows.
// ConsumerKey/ConsumerSecret drive the user-context OAuth1 flow,
// ClientID/ClientSecret the app-context OAuth2 flow. Either pair may be
// left empty when only the other flow is used.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	ClientID       string
	ClientSecret   string
}

// Client dispatches authenticated requests against the Twitter API.
//
// The client is stateless beyond its configuration: credentials are passed
// per request via WithAuth, so a single client serves unauthenticated,
// user-context and app-context calls concurrently.
type Client struct {
	baseURL    string
	apiVersion string
	userAgent  string
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Twitter client.
func NewClient(config Config, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
		userAgent:  defaultUserAgent,
		config:     config,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// resolveURL maps target onto an absolute URL. A target without a scheme is
// treated as a path under the versioned API prefix; an absolute URL is used
// verbatim, which is how the token endpoints escape the versioned path.
func (c *Client) resolveURL(target string) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid request URL %q: %w", target, err)
	}
	if parsed.Scheme != "" {
		return target, nil
	}
	return c.baseURL + "/" + c.apiVersion + target, nil
}

// Request issues an API request and normalizes the response.
//
// A non-2xx status yields an *APIError; transport failures are returned
// wrapped and unclassified. On success the response body is decoded
// according to its content type. No retries are attempted at this layer.
func (c *Client) Request(ctx context.Context, method, target string, body io.Reader, opts ...RequestOption) (*Response, error) {
	resp, err := c.Do(ctx, method, target, body, opts...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return normalizeResponse(resp)
}

// Do issues an API request and returns the live *http.Response without
// consuming or decoding the body. This is the escape hatch for streaming
// endpoints, where the body is not available in full; the caller owns
// closing the body.
func (c *Client) Do(ctx context.Context, method, target string, body io.Reader, opts ...RequestOption) (*http.Response, error) {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	requestURL, err := c.resolveURL(target)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Charset", "utf-8")
	req.Header.Set("User-Agent", c.userAgent)
	for k, vs := range options.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if len(options.query) > 0 {
		query := req.URL.Query()
		for k, vs := range options.query {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		req.URL.RawQuery = query.Encode()
	}

	if options.auth != nil {
		if err := options.auth.authorize(req); err != nil {
			return nil, fmt.Errorf("failed to authorize request: %w", err)
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL.String()).
		Bool("authenticated", options.auth != nil).
		Msg("Dispatching Twitter API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// VerifyCredentials checks that the given credential is accepted by the API.
func (c *Client) VerifyCredentials(ctx context.Context, auth AuthMethod) error {
	_, err := c.Request(ctx, http.MethodGet, "/account/verify_credentials.json", nil, WithAuth(auth))
	return err
}

func trimTrailingSlash(s string) string {
	return strings.TrimRight(s, "/")
}
