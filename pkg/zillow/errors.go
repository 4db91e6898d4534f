package zillow

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrMissingAPIKey is returned when a client is built without a ZWS-ID.
	ErrMissingAPIKey = errors.New("zws-id is required")

	// ErrCommunication matches every *CommunicationError.
	ErrCommunication = errors.New("communication error")

	ErrMissingParam  = errors.New("missing required parameter")
	ErrUnknownParam  = errors.New("unknown parameter")
	ErrInvalidParams = errors.New("invalid parameters")
)

// CommunicationError reports that a call could not be completed: the
// transport failed, the server answered with a non-2xx status, or the body
// could not be read.
type CommunicationError struct {
	Operation string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error

	secret string
}

func (e *CommunicationError) Error() string {
	var msg string
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		msg = fmt.Sprintf("zillow %s: communication error: status %d: %v", e.Operation, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		msg = fmt.Sprintf("zillow %s: communication error: status %d", e.Operation, e.StatusCode)
	default:
		msg = fmt.Sprintf("zillow %s: communication error: %v", e.Operation, e.Err)
	}
	return redact(msg, e.secret)
}

// Unwrap returns the underlying cause.
func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for ErrCommunication.
func (e *CommunicationError) Is(target error) bool {
	return target == ErrCommunication
}

// ParamError reports a parameter that could not be placed on the request.
type ParamError struct {
	Operation string
	Param     string
	Err       error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("zillow %s: %v %q", e.Operation, e.Err, e.Param)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// ValidationError lists every constraint a request violated.
type ValidationError struct {
	Operation string
	Problems  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("zillow %s: invalid parameters: %s", e.Operation, strings.Join(e.Problems, "; "))
}

// Is implements errors.Is for ErrInvalidParams.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParams
}

func redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(secret), "REDACTED")
	return strings.ReplaceAll(msg, secret, "REDACTED")
}
