// Package engine composes one full documentation pass: discover declaration
// sources, load them into a registry snapshot, validate the snapshot, and,
// when an evaluator adapter is configured, run every worked example.
//
// The engine is a library facade; front ends (CLIs, build pipelines, file
// watchers) construct one per pass and decide themselves what to do with
// the report.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/fndocs/executor"
	"github.com/vk/fndocs/hclload"
	"github.com/vk/fndocs/internal/ctxlog"
	"github.com/vk/fndocs/internal/fsutil"
	"github.com/vk/fndocs/model"
	"github.com/vk/fndocs/registry"
	"github.com/vk/fndocs/validator"
	"github.com/vk/fndocs/yamlload"
)

// Engine runs documentation passes for one configuration.
type Engine struct {
	cfg     *Config
	logger  *slog.Logger
	adapter executor.Adapter
}

// Option customizes an Engine.
type Option func(*Engine)

// WithAdapter supplies the external evaluator used to run worked examples.
// Without one, passes load and validate but skip example execution.
func WithAdapter(adapter executor.Adapter) Option {
	return func(e *Engine) { e.adapter = adapter }
}

// WithLogOutput redirects engine logs; the default is stderr.
func WithLogOutput(w io.Writer) Option {
	return func(e *Engine) { e.logger = newLogger(e.cfg.LogLevel, e.cfg.LogFormat, w) }
}

// New creates an Engine from a validated config.
func New(cfg *Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one full pass and returns the aggregated report. Load-time
// problems (parse failures, malformed declarations, duplicate names) abort
// the pass; validation findings and example outcomes are collected in the
// report instead.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, e.logger)

	reg, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	findings := validator.Validate(ctx, reg)

	var results []executor.Result
	if e.adapter != nil {
		results = executor.Run(ctx, reg, e.adapter, executor.Options{
			Workers: e.cfg.Workers,
			Timeout: e.cfg.ExampleTimeout,
		})
	} else {
		e.logger.Debug("No adapter configured, skipping example execution.")
	}

	report := &Report{Registry: reg, Findings: findings, Results: results}
	e.logger.Info("Documentation pass complete.",
		"functions", reg.Len(),
		"findings", len(findings),
		"examples_run", len(results),
	)
	return report, nil
}

// load discovers declaration files under DocsPath and builds the snapshot.
// Both encodings feed one registry, so cross-encoding name collisions are
// caught the same way as same-encoding ones.
func (e *Engine) load(ctx context.Context) (*registry.Registry, error) {
	logger := ctxlog.FromContext(ctx)

	extensions := append([]string{hclload.Extension}, yamlload.Extensions...)
	paths, err := fsutil.FindFilesByExtensions(e.cfg.DocsPath, extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to walk docs path: %w", err)
	}

	var hclPaths, yamlPaths []string
	for _, path := range paths {
		if strings.HasSuffix(path, hclload.Extension) {
			hclPaths = append(hclPaths, path)
		} else {
			yamlPaths = append(yamlPaths, path)
		}
	}

	var specs []*model.FunctionSpec
	if len(hclPaths) > 0 {
		loaded, err := hclload.New().Load(ctx, hclPaths...)
		if err != nil {
			return nil, err
		}
		specs = append(specs, loaded...)
	}
	if len(yamlPaths) > 0 {
		loaded, err := yamlload.New().Load(ctx, yamlPaths...)
		if err != nil {
			return nil, err
		}
		specs = append(specs, loaded...)
	}

	if len(specs) == 0 {
		logger.Warn("No declaration files found in docs path.", "path", e.cfg.DocsPath)
	}

	return registry.New(specs)
}
