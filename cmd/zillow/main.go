package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/samvad-hq/zillow-connector/internal/app"
	"github.com/samvad-hq/zillow-connector/internal/config"
	"github.com/samvad-hq/zillow-connector/internal/logger"
	"github.com/samvad-hq/zillow-connector/pkg/jobs"
	"github.com/samvad-hq/zillow-connector/pkg/zillow"
	"github.com/spf13/pflag"
)

const usage = `usage: zillow [flags] <operation> [name=value ...]
       zillow [flags] --job <id> [name=value ...]

operations:
  getZestimate      zpid [rentzestimate]
  getChart          zpid [unittype width height chartDuration]
  getSearchResults  address citystatezip [zpid rentzestimate]
  getComps          zpid [count rentzestimate]

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zillow: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("zillow", pflag.ContinueOnError)
	fs.String("api-key", "", "ZWS-ID (overrides ZWS_ID)")
	fs.String("base-url", "", "web-service base URL")
	fs.Int("timeout", 0, "request timeout in seconds")
	fs.Bool("validate", false, "check parameter ranges before sending")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	jobID := fs.String("job", "", "run a job from the jobs file; name=value pairs override its params")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	var op zillow.Operation
	rest := fs.Args()
	if *jobID == "" {
		if len(rest) < 1 {
			fs.Usage()
			return errors.New("operation is required")
		}
		var ok bool
		if op, ok = zillow.OperationByName(rest[0]); !ok {
			return fmt.Errorf("unknown operation %q", rest[0])
		}
		rest = rest[1:]
	}
	params, err := parseParams(rest)
	if err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if *jobID != "" {
		op, params, err = resolveJob(cfg.JobsFile, *jobID, params)
		if err != nil {
			return err
		}
	}

	client, err := app.NewClient(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	body, err := client.Do(ctx, op, params)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, body)
	return err
}

// resolveJob looks up id in the jobs file and layers overrides on top of the
// job's own params.
func resolveJob(path, id string, overrides map[string]string) (zillow.Operation, map[string]string, error) {
	reg, err := jobs.LoadRegistry(path)
	if err != nil {
		return zillow.Operation{}, nil, fmt.Errorf("load jobs: %w", err)
	}
	job, ok := reg.ByID(id)
	if !ok {
		return zillow.Operation{}, nil, fmt.Errorf("job %q not found in %s", id, path)
	}
	op, ok := job.Op()
	if !ok {
		return zillow.Operation{}, nil, fmt.Errorf("job %s: unknown operation %q", job.ID, job.Operation)
	}
	params := make(map[string]string, len(job.Params)+len(overrides))
	for k, v := range job.Params {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}
	return op, params, nil
}

// parseParams turns name=value arguments into a parameter map.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (want name=value)", arg)
		}
		params[name] = value
	}
	return params, nil
}
