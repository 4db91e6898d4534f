package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/zillow-connector/internal/config"
	"github.com/samvad-hq/zillow-connector/internal/logger"
	"github.com/samvad-hq/zillow-connector/internal/relay"
	"github.com/samvad-hq/zillow-connector/pkg/httpclient"
	"github.com/samvad-hq/zillow-connector/pkg/jobs"
	"github.com/samvad-hq/zillow-connector/pkg/publishers"
	"github.com/samvad-hq/zillow-connector/pkg/zillow"
)

// Relay runs the configured lookup jobs on an interval and fans the raw
// responses out to the configured publishers.
type Relay struct {
	cfg         *config.Config
	jobReg      *jobs.Registry
	fanout      *publishers.Fanout
	service     *relay.Service
	runInterval time.Duration
	log         logger.Logger
}

// NewClient builds the zillow client described by cfg.
func NewClient(cfg *config.Config, log logger.Logger) (*zillow.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	return zillow.NewClient(cfg.ZWSID,
		zillow.WithBaseURL(cfg.BaseURL),
		zillow.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout, cfg.UserAgent)),
		zillow.WithValidation(cfg.ValidateParams),
		zillow.WithLogger(log),
	)
}

// NewRelay builds a relay runtime from config files.
func NewRelay(ctx context.Context, cfg *config.Config, log logger.Logger) (*Relay, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	jobReg, err := jobs.LoadRegistry(cfg.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("load jobs registry: %w", err)
	}
	jobIDs := make([]string, 0, len(jobReg.All()))
	for _, j := range jobReg.All() {
		jobIDs = append(jobIDs, j.ID)
	}
	log.InfoObj("jobs registry loaded", "jobs_meta", map[string]any{
		"count": len(jobIDs),
		"ids":   jobIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	client, err := NewClient(cfg, log)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init zillow client: %w", err)
	}

	return &Relay{
		cfg:         cfg,
		jobReg:      jobReg,
		fanout:      fanout,
		service:     relay.NewService(client, fanout, log, cfg.MaxConcurrency),
		runInterval: cfg.RunInterval,
		log:         log,
	}, nil
}

// Run starts the relay loop until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	if r == nil || r.service == nil {
		return fmt.Errorf("relay is not initialized")
	}
	defer r.closePublishers()

	enabled := r.jobReg.Enabled()
	if len(enabled) == 0 {
		r.log.WarnObj("no enabled jobs; relay idle", "jobs_file", r.cfg.JobsFile)
		<-ctx.Done()
		return nil
	}

	r.log.InfoObj("relay loop starting", "relay_state", map[string]any{
		"jobs_count":       len(enabled),
		"publishers_count": r.fanout.Size(),
		"run_interval":     r.runInterval.String(),
	})

	if err := r.runOnce(ctx, enabled); err != nil {
		r.log.ErrorObj("initial pass failed", "error", err)
	}

	ticker := time.NewTicker(r.runInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("relay loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := r.runOnce(ctx, enabled); err != nil {
				r.log.ErrorObj("scheduled pass failed", "error", err)
			}
		}
	}
}

// runOnce performs a single pass across all enabled jobs.
func (r *Relay) runOnce(ctx context.Context, js []jobs.Job) error {
	start := time.Now()
	r.log.InfoObj("pass started", "pass_meta", map[string]any{
		"jobs_count": len(js),
		"started_at": start.UTC(),
	})
	if err := r.service.Run(ctx, js); err != nil {
		return err
	}
	r.log.InfoObj("pass completed", "pass_meta", map[string]any{
		"jobs_count": len(js),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (r *Relay) closePublishers() {
	if err := r.fanout.Close(); err != nil {
		r.log.ErrorObj("publisher close failed", "error", err)
	}
}
