package httpclient

import "context"

// Response exposes the raw status and body of a completed request.
// Bodies are handed back untouched; callers decide what a status means.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client sends GET requests to fully built URLs. The query string is sent
// exactly as given so parameter order on the wire is the caller's.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
