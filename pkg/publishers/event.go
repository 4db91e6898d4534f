package publishers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/zillow-connector/internal/domain"
)

const (
	// maxAWSMessageBytes is the SQS and SNS payload ceiling (256 KiB).
	maxAWSMessageBytes = 256 * 1024
	// maxPubSubMessageBytes is the Pub/Sub message data ceiling (10 MB).
	maxPubSubMessageBytes = 10 * 1000 * 1000
)

// ErrMessageTooLarge is returned when an encoded event exceeds a sink's limit.
var ErrMessageTooLarge = errors.New("publishers: encoded event exceeds message size limit")

// Event represents the payload published downstream.
type Event struct {
	JobID       string        `json:"job_id"`
	JobName     string        `json:"job_name"`
	Lookup      domain.Lookup `json:"lookup"`
	CollectedAt time.Time     `json:"collected_at"`
}

// NewEvent constructs an Event for the given job + lookup.
func NewEvent(jobID, jobName string, lookup domain.Lookup) Event {
	return Event{
		JobID:       jobID,
		JobName:     jobName,
		Lookup:      lookup,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes returns the routing attributes attached to queue/topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"job_id":    e.JobID,
		"operation": e.Lookup.Operation,
	}
}

// encode renders the event as JSON without HTML escaping so raw XML bodies
// stay readable downstream. limit <= 0 disables the size check.
func (e Event) encode(limit int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if limit > 0 && len(payload) > limit {
		return nil, fmt.Errorf("job %s: %d bytes > %d: %w", e.JobID, len(payload), limit, ErrMessageTooLarge)
	}
	return payload, nil
}
