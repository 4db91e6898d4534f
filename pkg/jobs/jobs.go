// Package jobs loads the lookup jobs the relay runs on every pass.
package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samvad-hq/zillow-connector/pkg/zillow"
	"gopkg.in/yaml.v3"
)

// Job is one configured operation invocation.
type Job struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Operation string            `json:"operation" yaml:"operation"`
	Params    map[string]string `json:"params" yaml:"params"`
	Enabled   *bool             `json:"enabled" yaml:"enabled"`
}

type file struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// Registry holds the jobs loaded from a file.
type Registry struct {
	mu   sync.RWMutex
	jobs []Job
	idx  map[string]Job
}

// LoadRegistry loads jobs from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("jobs file path is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jobs file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}

	parsed, err := parseFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Jobs) == 0 {
		return nil, errors.New("jobs file contains no jobs entries")
	}

	reg := &Registry{
		jobs: make([]Job, len(parsed.Jobs)),
		idx:  make(map[string]Job, len(parsed.Jobs)),
	}
	for i := range parsed.Jobs {
		j := sanitizeJob(parsed.Jobs[i])
		if err := validateJob(j); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if _, exists := reg.idx[j.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		reg.jobs[i] = j
		reg.idx[j.ID] = j
	}

	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseFile(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f file
		if err := d.fn(data, &f); err != nil {
			errs = append(errs, fmt.Errorf("decode %s jobs: %w", d.name, err))
			continue
		}
		return f, nil
	}

	if len(errs) > 0 {
		return file{}, errors.Join(errs...)
	}
	return file{}, errors.New("jobs file format not recognized (expected YAML or JSON)")
}

// sanitizeJob trims fields and resolves the canonical operation name.
func sanitizeJob(j Job) Job {
	j.ID = strings.TrimSpace(j.ID)
	j.Name = strings.TrimSpace(j.Name)
	j.Operation = strings.TrimSpace(j.Operation)
	if op, ok := zillow.OperationByName(j.Operation); ok {
		j.Operation = op.Name
	}
	if j.Name == "" {
		j.Name = j.ID
	}

	params := make(map[string]string, len(j.Params))
	for k, v := range j.Params {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		params[key] = strings.TrimSpace(v)
	}
	j.Params = params

	if j.Enabled == nil {
		def := true
		j.Enabled = &def
	}
	return j
}

func validateJob(j Job) error {
	if j.ID == "" {
		return errors.New("id is required")
	}
	if j.Operation == "" {
		return fmt.Errorf("operation is required for job %q", j.ID)
	}
	if _, ok := zillow.OperationByName(j.Operation); !ok {
		return fmt.Errorf("unknown operation %q for job %q", j.Operation, j.ID)
	}
	return nil
}

// ByID returns the job with the given id.
func (r *Registry) ByID(id string) (Job, bool) {
	if r == nil {
		return Job{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Job{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.idx[id]
	return j, ok
}

// All returns every loaded job in file order.
func (r *Registry) All() []Job {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Enabled returns jobs that are enabled.
func (r *Registry) Enabled() []Job {
	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]Job, 0, len(all))
	for _, j := range all {
		if j.EnabledValue() {
			out = append(out, j)
		}
	}
	return out
}

// EnabledValue returns the enabled flag defaulting to true.
func (j Job) EnabledValue() bool {
	if j.Enabled == nil {
		return true
	}
	return *j.Enabled
}

// Op returns the zillow operation the job runs.
func (j Job) Op() (zillow.Operation, bool) {
	return zillow.OperationByName(j.Operation)
}
