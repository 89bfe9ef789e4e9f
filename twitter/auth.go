package twitter

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

// AuthMethod selects the authentication scheme for a single request.
//
// It is a closed set: only BearerToken and ClientCredentials implement it.
// Which one the caller passes via WithAuth fully determines the request's
// authentication state; the client itself holds no credentials.
type AuthMethod interface {
	authorize(req *http.Request) error
}

// BearerToken is an application-context OAuth2 credential. It is sent
// verbatim in the authorization header and requires no per-request
// computation. The zero value is not usable; obtain one from
// AcquireAppToken or construct it from a token issued out of band.
type BearerToken struct {
	AccessToken string
	TokenType   string
}

func (t *BearerToken) authorize(req *http.Request) error {
	if t.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrInvalidCredentials)
	}
	req.Header.Set("Authorization", t.TokenType+" "+t.AccessToken)
	return nil
}

// ClientCredentials is a user-context OAuth1 credential: the application's
// consumer pair plus the long-lived token pair issued for a user. Values are
// immutable; AcquireUserCredentials returns a new populated value rather
// than mutating its receiver.
type ClientCredentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

func (c *ClientCredentials) authorize(req *http.Request) error {
	header, err := c.authorizationHeader(req.Method, req.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", header)
	return nil
}

// authorizationHeader computes a fresh OAuth1 HMAC-SHA1 authorization header
// for method and u. Request body parameters are never part of the signature
// base for resource requests; extra carries the additional signed parameters
// of the token-exchange request only.
func (c *ClientCredentials) authorizationHeader(method string, u *url.URL, extra url.Values) (string, error) {
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidCredentials, ErrNoConsumerCredentials)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     c.ConsumerKey,
		"oauth_nonce":            nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_version":          "1.0",
	}
	if c.Token != "" {
		oauthParams["oauth_token"] = c.Token
	}

	signer := oauth1.HMACSigner{ConsumerSecret: c.ConsumerSecret}
	signature, err := signer.Sign(c.TokenSecret, signatureBase(method, u, oauthParams, extra))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	oauthParams["oauth_signature"] = signature

	keys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, oauth1.PercentEncode(oauthParams[k])))
	}
	return "OAuth " + strings.Join(pairs, ", "), nil
}

// signatureBase builds the RFC 5849 signature base string over method, the
// query- and fragment-less request URI, and the signed parameters.
func signatureBase(method string, u *url.URL, oauthParams map[string]string, extra url.Values) string {
	baseURI := strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + u.EscapedPath()

	encoded := make([]string, 0, len(oauthParams)+len(extra))
	for k, v := range oauthParams {
		encoded = append(encoded, oauth1.PercentEncode(k)+"="+oauth1.PercentEncode(v))
	}
	for k, vs := range extra {
		for _, v := range vs {
			encoded = append(encoded, oauth1.PercentEncode(k)+"="+oauth1.PercentEncode(v))
		}
	}
	sort.Strings(encoded)

	return strings.Join([]string{
		strings.ToUpper(method),
		oauth1.PercentEncode(baseURI),
		oauth1.PercentEncode(strings.Join(encoded, "&")),
	}, "&")
}

// nonce returns a random per-request nonce.
func nonce() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}
