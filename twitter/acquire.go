package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AcquireUserCredentials exchanges a username and password for long-lived
// user-context credentials (Twitter's xAuth flow). The exchange request is
// OAuth1-signed with the consumer pair and the x_auth parameters included
// in the signature base. The returned value is a new ClientCredentials
// populated with the token pair from the provider's form-encoded response.
//
// No expiry is tracked; the credentials are held by the caller for the
// duration of the user session.
func (c *Client) AcquireUserCredentials(ctx context.Context, username, password string) (*ClientCredentials, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if c.config.ConsumerKey == "" || c.config.ConsumerSecret == "" {
		return nil, ErrNoConsumerCredentials
	}

	creds := &ClientCredentials{
		ConsumerKey:    c.config.ConsumerKey,
		ConsumerSecret: c.config.ConsumerSecret,
	}

	form := url.Values{}
	form.Set("x_auth_mode", "client_auth")
	form.Set("x_auth_username", username)
	form.Set("x_auth_password", password)

	endpoint := c.baseURL + "/oauth/access_token"
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid token endpoint %q: %w", endpoint, err)
	}

	header, err := creds.authorizationHeader(http.MethodPost, parsed, form)
	if err != nil {
		return nil, err
	}

	resp, err := c.Request(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()),
		WithHeader("Authorization", header),
		WithHeader("Content-Type", "application/x-www-form-urlencoded"))
	if err != nil {
		return nil, fmt.Errorf("credential exchange failed: %w", err)
	}

	// The provider answers with a form-encoded body whatever content type it
	// declares, so parse the raw bytes rather than trusting the decoded body.
	values, err := url.ParseQuery(string(resp.Raw))
	if err != nil {
		return nil, fmt.Errorf("malformed token response: %w", err)
	}

	acquired := *creds
	for key, vs := range values {
		if len(vs) == 0 || !strings.HasPrefix(key, "oauth_") {
			continue
		}
		switch strings.TrimPrefix(key, "oauth_") {
		case "token":
			acquired.Token = vs[0]
		case "token_secret":
			acquired.TokenSecret = vs[0]
		}
	}

	c.logger.Debug().
		Str("username", username).
		Msg("Acquired user-context credentials")

	return &acquired, nil
}

// MustAcquireUserCredentials is like AcquireUserCredentials but panics on
// error. Composable callers should prefer the error-returning form.
func (c *Client) MustAcquireUserCredentials(ctx context.Context, username, password string) *ClientCredentials {
	creds, err := c.AcquireUserCredentials(ctx, username, password)
	if err != nil {
		panic(err)
	}
	return creds
}

// AcquireAppToken exchanges the application's client id and secret for an
// app-context bearer token via the OAuth2 client-credentials grant. No
// refresh logic is provided; callers re-acquire when the token expires.
func (c *Client) AcquireAppToken(ctx context.Context) (*BearerToken, error) {
	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return nil, ErrNoClientCredentials
	}

	conf := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     c.baseURL + "/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// Route the exchange through the client's transport.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("app token exchange failed: %w", err)
	}

	c.logger.Debug().
		Str("token_type", token.Type()).
		Msg("Acquired app-context bearer token")

	return &BearerToken{
		AccessToken: token.AccessToken,
		TokenType:   token.Type(),
	}, nil
}

// MustAcquireAppToken is like AcquireAppToken but panics on error.
func (c *Client) MustAcquireAppToken(ctx context.Context) *BearerToken {
	token, err := c.AcquireAppToken(ctx)
	if err != nil {
		panic(err)
	}
	return token
}
