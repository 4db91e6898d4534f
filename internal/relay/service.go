package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samvad-hq/zillow-connector/internal/domain"
	"github.com/samvad-hq/zillow-connector/internal/logger"
	"github.com/samvad-hq/zillow-connector/pkg/jobs"
	"github.com/samvad-hq/zillow-connector/pkg/publishers"
	"github.com/samvad-hq/zillow-connector/pkg/zillow"
	"golang.org/x/sync/errgroup"
)

// Caller runs one Zillow operation and returns the raw body.
type Caller interface {
	Do(ctx context.Context, op zillow.Operation, params map[string]string) (string, error)
}

// EventPublisher publishes lookup results downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Service runs lookup jobs and forwards their results.
type Service struct {
	caller      Caller
	publisher   EventPublisher
	log         logger.Logger
	concurrency int
}

// NewService wires a relay over the zillow client and a publisher.
// concurrency bounds the number of in-flight calls; values below 1 mean 1.
func NewService(caller Caller, pub EventPublisher, log logger.Logger, concurrency int) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		caller:      caller,
		publisher:   pub,
		log:         log,
		concurrency: concurrency,
	}
}

// Run executes one pass over jobs. Failed jobs do not stop the others; their
// errors are joined into the result.
func (s *Service) Run(ctx context.Context, js []jobs.Job) error {
	if s == nil || s.caller == nil {
		return fmt.Errorf("relay service is not initialized")
	}
	if len(js) == 0 {
		return fmt.Errorf("no jobs configured")
	}

	errs := s.runAll(ctx, js)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, js []jobs.Job) []error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for _, job := range js {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := s.runJob(ctx, job); err != nil {
				s.log.ErrorObj("job failed", "job_error", map[string]any{
					"job_id": job.ID,
					"error":  err.Error(),
				})
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

func (s *Service) runJob(ctx context.Context, job jobs.Job) error {
	op, ok := job.Op()
	if !ok {
		return fmt.Errorf("job %s: unknown operation %q", job.ID, job.Operation)
	}

	body, err := s.caller.Do(ctx, op, job.Params)
	if err != nil {
		return fmt.Errorf("job %s: %w", job.ID, err)
	}

	delivered := 0
	if s.publisher != nil {
		evt := publishers.NewEvent(job.ID, job.Name, domain.Lookup{
			Operation: op.Name,
			Params:    job.Params,
			Body:      body,
		})
		delivered, err = s.publisher.Publish(ctx, evt)
		if err != nil {
			return fmt.Errorf("job %s: publish: %w", job.ID, err)
		}
	}

	s.log.InfoObj("job completed", "job_result", map[string]any{
		"job_id":     job.ID,
		"operation":  op.Name,
		"bytes":      len(body),
		"deliveries": delivered,
	})
	return nil
}
