package twitter

import (
	"net/http"
	"net/url"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. The supplied client
// must be safe for concurrent use.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the API host. The token endpoints follow the
// override, which is how tests point the client at a mock server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = trimTrailingSlash(baseURL)
	}
}

// WithAPIVersion overrides the versioned path prefix used for relative URLs.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	auth   AuthMethod
	header http.Header
	query  url.Values
}

// WithAuth authenticates the request with the given credential. Without it
// the request is dispatched unauthenticated.
func WithAuth(auth AuthMethod) RequestOption {
	return func(o *requestOptions) {
		o.auth = auth
	}
}

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = http.Header{}
		}
		o.header.Add(key, value)
	}
}

// WithQuery adds query parameters to the request URL.
func WithQuery(query url.Values) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		for k, vs := range query {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}
