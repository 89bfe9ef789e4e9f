package twitter

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// Response is a normalized API response. Body holds the value decoded
// according to the response content type: a structured value for JSON,
// url.Values for form-encoded bodies, and the raw bytes for anything else.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       any
	Raw        []byte
}

// normalizeResponse consumes resp.Body and maps the response into either a
// Response (2xx) or an *APIError (anything else).
func normalizeResponse(resp *http.Response) (*Response, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	body, err := decodeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		// An undecodable error body still produces an APIError.
		body = raw
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
			Raw:        raw,
		}, nil
	}

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Reason:     errorReason(body, raw),
		Body:       body,
	}
}

// decodeBody decodes raw according to the declared content type.
func decodeBody(contentType string, raw []byte) (any, error) {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("malformed JSON body: %w", err)
		}
		return v, nil
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, fmt.Errorf("malformed form body: %w", err)
		}
		return values, nil
	default:
		return raw, nil
	}
}

// errorReason extracts the human-readable reason from a decoded error body.
// Twitter reports errors as {"errors": [{"message": ...}, ...]}; only the
// first message is surfaced. Any other shape is reported whole.
func errorReason(body any, raw []byte) string {
	if m, ok := body.(map[string]any); ok {
		if errs, ok := m["errors"].([]any); ok && len(errs) > 0 {
			if first, ok := errs[0].(map[string]any); ok {
				if msg, ok := first["message"].(string); ok {
					return msg
				}
			}
		}
	}
	return string(raw)
}
