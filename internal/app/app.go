// Package app implements the application layer for dotbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/dotbuild/internal/adapters/docgen"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dotbuild/internal/adapters/git"       //nolint:depguard // Wired in app layer
	"go.trai.ch/dotbuild/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dotbuild/internal/adapters/prompt"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dotbuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/dotbuild/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/dotbuild/internal/dotnet"
	"go.trai.ch/dotbuild/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// DefaultWatchTarget is the target rebuilt by Watch when none is given.
const DefaultWatchTarget = dotnet.TargetLocalDoc + domain.SingleSuffix

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	fs           ports.FileSystem
	prompter     ports.Prompter
	watcher      ports.Watcher

	out            io.Writer
	vcs            func(domain.GitConfig) ports.VersionControl
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	fs ports.FileSystem,
	prompter ports.Prompter,
	w ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		fs:           fs,
		prompter:     prompter,
		watcher:      w,
		out:          os.Stdout,
		vcs: func(cfg domain.GitConfig) ports.VersionControl {
			return git.NewClient(cfg)
		},
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithOutput sets the writer receiving the target progress and the build time report.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithVersionControl replaces the git client. This is primarily used for testing.
func (a *App) WithVersionControl(vcs ports.VersionControl) *App {
	a.vcs = func(domain.GitConfig) ports.VersionControl { return vcs }
	return a
}

// WithDebounceWindow sets how long Watch waits for file changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath is the build configuration file. Empty means domain.ConfigFileName.
	ConfigPath string
	// AssumeYes accepts every confirmation prompt.
	AssumeYes bool
}

func (o RunOptions) configPath() string {
	if o.ConfigPath == "" {
		return domain.ConfigFileName
	}
	return o.ConfigPath
}

// Run executes the requested target and its prerequisites. An empty target runs the
// default target.
func (a *App) Run(ctx context.Context, target string, opts RunOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	return a.execute(ctx, cfg, target, opts)
}

func (a *App) loadConfig(opts RunOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.configPath())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) execute(ctx context.Context, cfg *domain.Config, target string, opts RunOptions) error {
	runID := telemetry.NewRunID()
	a.logger.Info(fmt.Sprintf("Building %s %s (run %s)", cfg.ProjectName, cfg.Version, runID))

	// Target spans reach the renderer and the metrics through the bridge.
	renderer := linear.NewRenderer(a.out)
	metrics := telemetry.NewMetrics()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer, metrics)),
	)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(tp, runID, renderer)

	sched, err := a.newScheduler(cfg, tracer, opts)
	if err != nil {
		return err
	}

	runErr := sched.Run(ctx, target)
	renderErr := renderer.Stop()

	var metricsErr error
	if cfg.MetricsFile != "" {
		metricsErr = metrics.WriteToTextfile(cfg.MetricsFile)
	}

	if runErr != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, runErr)
	}
	return errors.Join(renderErr, metricsErr)
}

// newScheduler registers the build targets of cfg and returns a runner for them.
func (a *App) newScheduler(cfg *domain.Config, tracer ports.Tracer, opts RunOptions) (*scheduler.Scheduler, error) {
	prompter := a.prompter
	if opts.AssumeYes {
		prompter = prompt.New(a.logger, prompt.WithAssumeYes(true))
	}

	targets := dotnet.New(dotnet.Deps{
		Config:   cfg,
		Logger:   a.logger,
		Executor: a.executor,
		FS:       a.fs,
		VCS:      a.vcs(cfg.Git),
		Prompter: prompter,
		Docs:     docgen.New(a.executor, cfg),
	})
	graph, err := targets.Graph()
	if err != nil {
		return nil, err
	}
	return scheduler.NewScheduler(graph, tracer)
}

// TargetInfo describes an invocable target.
type TargetInfo struct {
	Name        string
	Description string
	// RunsAfter lists the direct prerequisites of the target.
	RunsAfter []string
}

// Targets lists every target of the configured build, sorted by name.
func (a *App) Targets(opts RunOptions) ([]TargetInfo, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	graph, err := dotnet.New(dotnet.Deps{Config: cfg}).Graph()
	if err != nil {
		return nil, err
	}

	names := graph.Names()
	infos := make([]TargetInfo, 0, len(names))
	for _, name := range names {
		t, _ := graph.Get(name)
		infos = append(infos, TargetInfo{
			Name:        t.Name,
			Description: t.Description,
			RunsAfter:   t.Dependencies,
		})
	}
	return infos, nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	RunOptions
	// Target is run once at start and after every batch of changes. Empty means DefaultWatchTarget.
	Target string
}

// Watch runs the target whenever the documentation content changes, until ctx is done.
// Failed runs are logged and do not stop the loop.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.RunOptions)
	if err != nil {
		return err
	}

	target := opts.Target
	if target == "" {
		target = DefaultWatchTarget
	}
	rebuild := func() {
		if err := a.execute(ctx, cfg, target, opts.RunOptions); err != nil && ctx.Err() == nil {
			a.logger.Error(err)
		}
	}

	if err := a.watcher.Start(ctx, cfg.DocContentDir); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	rebuild()
	a.logger.Info("Watching " + cfg.DocContentDir + " for changes")

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		default:
			// A rebuild is already queued and will pick up these changes.
		}
	})
	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-batches:
			a.logger.Info(fmt.Sprintf("%d file(s) changed, running %s", len(paths), target))
			rebuild()
		}
	}
}
