package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request describes one logical API call. URL is an endpoint base plus
// path, already query-encoded by the caller. Header entries are merged
// over the session's default headers, with the request winning on
// collision. Body, when set, is attached verbatim.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Do dispatches req against the client's current session and decodes
// the response body into a T.
//
// Outcomes are classified in order: transport failures are returned
// wrapped, non-2xx statuses are normalized into an *APIError from the
// service's error envelope, and a 2xx body that does not match T yields
// a *DecodeError.
func Do[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T

	body, err := c.do(ctx, req)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodeError{Err: err}
	}
	return out, nil
}

// do runs the dispatch pipeline: snapshot the session, build and send
// the HTTP request, classify the response. The snapshot means an
// Authenticate landing mid-flight affects later calls only.
func (c *Client) do(ctx context.Context, req Request) ([]byte, error) {
	sess := c.currentSession()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, absoluteURL(req.URL), bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	mergeHeader(httpReq.Header, sess.header)
	mergeHeader(httpReq.Header, req.Header)

	start := time.Now()
	resp, err := sess.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("roblox: %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("roblox: failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Roblox API request")

	if !statusSuccess(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, resp.Status, body)
	}

	return body, nil
}

// mergeHeader copies src entries into dst, replacing whole values so
// later sources override earlier ones rather than appending to them.
func mergeHeader(dst, src http.Header) {
	for name, values := range src {
		dst.Del(name)
		for _, value := range values {
			dst.Add(name, value)
		}
	}
}

// absoluteURL prefixes the fixed secure scheme unless the target
// already carries one. Endpoint sets pointed at local test servers
// arrive with the scheme attached.
func absoluteURL(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	return "https://" + target
}

func statusSuccess(code int) bool {
	return code >= 200 && code < 300
}
