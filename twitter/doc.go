// Package twitter provides a minimal authenticated client for the Twitter
// REST API.
//
// The package deliberately stops at the authenticated-request primitive:
// credential acquisition under Twitter's two OAuth variants, authorization
// header injection, base-URL resolution and response normalization. Typed
// endpoint wrappers (timelines, streaming, media upload) are left to the
// caller, built on top of Request.
//
// # Authentication
//
// Two flows are supported, each producing a credential that is passed per
// request:
//
//   - User context: AcquireUserCredentials exchanges a username/password
//     for long-lived OAuth1 credentials (ClientCredentials). Every request
//     signed with them carries a fresh HMAC-SHA1 signature.
//   - App context: AcquireAppToken performs an OAuth2 client-credentials
//     exchange and returns an opaque BearerToken sent verbatim.
//
// The client holds no session state; which credential (if any) a request
// uses is decided entirely by the WithAuth option at the call site.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client := twitter.NewClient(twitter.Config{
//		ConsumerKey:    os.Getenv("TWITTER_CONSUMER_KEY"),
//		ConsumerSecret: os.Getenv("TWITTER_CONSUMER_SECRET"),
//	}, logger)
//
//	ctx := context.Background()
//	creds, err := client.AcquireUserCredentials(ctx, "user", "pass")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Request(ctx, http.MethodGet, "/statuses/user_timeline.json", nil,
//		twitter.WithAuth(creds),
//		twitter.WithQuery(url.Values{"screen_name": {"user"}}))
//
// Relative paths are resolved against the versioned API base; absolute URLs
// pass through untouched, which is how the token endpoints (which live
// outside the versioned path) are reached.
//
// # Error Handling
//
// Non-2xx responses become an *APIError carrying the status code and the
// provider's reason (the first message of its errors array when present).
// Transport failures are returned wrapped and never reclassified. The
// Must* acquisition variants panic on error and exist purely as caller
// convenience; library code should use the error-returning forms.
package twitter
