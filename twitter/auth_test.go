package twitter

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dghubble/oauth1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOAuthHeader splits an OAuth authorization header into its
// percent-decoded parameters.
func parseOAuthHeader(t *testing.T, header string) map[string]string {
	t.Helper()
	require.True(t, strings.HasPrefix(header, "OAuth "), "header %q should start with OAuth", header)

	params := map[string]string{}
	for _, pair := range strings.Split(strings.TrimPrefix(header, "OAuth "), ", ") {
		key, value, ok := strings.Cut(pair, "=")
		require.True(t, ok, "malformed header pair %q", pair)
		decoded, err := url.QueryUnescape(strings.Trim(value, `"`))
		require.NoError(t, err)
		params[key] = decoded
	}
	return params
}

func TestBearerTokenHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://api.twitter.com/1.1/test.json", nil)

	token := &BearerToken{AccessToken: "AAAA", TokenType: "Bearer"}
	require.NoError(t, token.authorize(req))
	assert.Equal(t, "Bearer AAAA", req.Header.Get("Authorization"))

	// The token type label is used verbatim, whatever its casing.
	req = httptest.NewRequest(http.MethodGet, "https://api.twitter.com/1.1/test.json", nil)
	token = &BearerToken{AccessToken: "xyz", TokenType: "bearer"}
	require.NoError(t, token.authorize(req))
	assert.Equal(t, "bearer xyz", req.Header.Get("Authorization"))
}

func TestBearerTokenEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://api.twitter.com/1.1/test.json", nil)

	token := &BearerToken{TokenType: "Bearer"}
	err := token.authorize(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClientCredentialsHeader(t *testing.T) {
	creds := &ClientCredentials{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Token:          "tk",
		TokenSecret:    "ts",
	}

	req := httptest.NewRequest(http.MethodGet, "https://api.twitter.com/1.1/test.json?foo=bar", nil)
	require.NoError(t, creds.authorize(req))

	params := parseOAuthHeader(t, req.Header.Get("Authorization"))
	assert.Equal(t, "ck", params["oauth_consumer_key"])
	assert.Equal(t, "tk", params["oauth_token"])
	assert.Equal(t, "HMAC-SHA1", params["oauth_signature_method"])
	assert.Equal(t, "1.0", params["oauth_version"])
	assert.NotEmpty(t, params["oauth_nonce"])
	assert.NotEmpty(t, params["oauth_timestamp"])

	// The signature must verify over method and URL alone: rebuild the base
	// string with the header's own nonce and timestamp and re-sign. The query
	// string is excluded from the base URI.
	base := signatureBase(http.MethodGet, req.URL, map[string]string{
		"oauth_consumer_key":     params["oauth_consumer_key"],
		"oauth_nonce":            params["oauth_nonce"],
		"oauth_signature_method": params["oauth_signature_method"],
		"oauth_timestamp":        params["oauth_timestamp"],
		"oauth_token":            params["oauth_token"],
		"oauth_version":          params["oauth_version"],
	}, nil)

	signer := oauth1.HMACSigner{ConsumerSecret: "cs"}
	expected, err := signer.Sign("ts", base)
	require.NoError(t, err)
	assert.Equal(t, expected, params["oauth_signature"])
}

func TestClientCredentialsFreshSignature(t *testing.T) {
	creds := &ClientCredentials{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Token:          "tk",
		TokenSecret:    "ts",
	}
	u, err := url.Parse("https://api.twitter.com/1.1/test.json")
	require.NoError(t, err)

	first, err := creds.authorizationHeader(http.MethodGet, u, nil)
	require.NoError(t, err)
	second, err := creds.authorizationHeader(http.MethodGet, u, nil)
	require.NoError(t, err)

	firstParams := parseOAuthHeader(t, first)
	secondParams := parseOAuthHeader(t, second)

	// Same credential identifiers, fresh nonce every time.
	assert.Equal(t, firstParams["oauth_consumer_key"], secondParams["oauth_consumer_key"])
	assert.Equal(t, firstParams["oauth_token"], secondParams["oauth_token"])
	assert.NotEqual(t, firstParams["oauth_nonce"], secondParams["oauth_nonce"])
}

func TestClientCredentialsMissingConsumer(t *testing.T) {
	creds := &ClientCredentials{Token: "tk", TokenSecret: "ts"}
	u, err := url.Parse("https://api.twitter.com/1.1/test.json")
	require.NoError(t, err)

	_, err = creds.authorizationHeader(http.MethodGet, u, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignatureBaseIncludesExtraParams(t *testing.T) {
	u, err := url.Parse("https://api.twitter.com/oauth/access_token")
	require.NoError(t, err)

	oauthParams := map[string]string{"oauth_consumer_key": "ck"}
	extra := url.Values{"x_auth_mode": {"client_auth"}}

	withExtra := signatureBase(http.MethodPost, u, oauthParams, extra)
	without := signatureBase(http.MethodPost, u, oauthParams, nil)

	assert.NotEqual(t, without, withExtra)
	assert.Contains(t, withExtra, "x_auth_mode")
}
