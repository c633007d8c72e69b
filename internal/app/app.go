// Package app implements the application layer for masq.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/masq/internal/adapters/detector"
	"go.trai.ch/masq/internal/adapters/linear"
	"go.trai.ch/masq/internal/adapters/telemetry"
	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	parser       ports.Parser
	resolver     ports.SourceResolver
	store        ports.ArtifactStore
	logger       ports.Logger
	progress     io.Writer
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	parser ports.Parser,
	resolver ports.SourceResolver,
	store ports.ArtifactStore,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		parser:       parser,
		resolver:     resolver,
		store:        store,
		logger:       log,
		getwd:        os.Getwd,
	}
}

// WithProgressOutput sets the writer the progress report is printed to.
// Defaults to stderr.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progress = w
	return a
}

// WithWorkingDir fixes the directory the configuration search starts from.
// This is primarily used for testing.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// CommonOptions are accepted by every command.
type CommonOptions struct {
	// ConfigPath names the configuration file. Empty searches upwards from
	// the working directory.
	ConfigPath string
	Verbose    bool
	// LogFormat overrides the configured log format when set.
	LogFormat string
}

// jsonSetter is implemented by loggers that can switch to JSON output.
type jsonSetter interface {
	SetJSON(enable bool)
}

// prepare applies the common options and returns the resolved configuration.
func (a *App) prepare(opts CommonOptions) (*domain.Config, error) {
	if opts.Verbose {
		a.logger.SetVerbose(true)
	}

	var (
		cfg *domain.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = a.configLoader.LoadFile(opts.ConfigPath)
	} else {
		var cwd string
		cwd, err = a.getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		cfg, err = a.configLoader.Load(cwd)
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	format := cfg.LogFormat
	if opts.LogFormat != "" {
		format = opts.LogFormat
	}
	switch format {
	case domain.LogFormatAuto, domain.LogFormatPretty, domain.LogFormatJSON:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown log format"), "logFormat", format)
	}
	if detector.ResolveFormat(detector.DetectFormat(), format) == domain.LogFormatJSON {
		if j, ok := a.logger.(jsonSetter); ok {
			j.SetJSON(true)
		}
	}

	return cfg, nil
}

// resolve joins a relative path onto the configuration root.
func resolve(cfg *domain.Config, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.Root, path)
}

// progressRun is the progress reporting of one command.
type progressRun struct {
	renderer ports.Renderer
	tracer   *telemetry.OTelTracer
	provider *sdktrace.TracerProvider
}

// startProgress wires a fresh renderer into the OpenTelemetry SDK.
func (a *App) startProgress() *progressRun {
	renderer := linear.NewRenderer(a.progress)
	bridge := telemetry.NewBridge(renderer)
	tp := setupOTel(bridge)
	return &progressRun{
		renderer: renderer,
		tracer:   telemetry.NewOTelTracer("masq").WithRenderer(renderer),
		provider: tp,
	}
}

// stop prints the summary and releases the tracer provider.
func (p *progressRun) stop() {
	_ = p.renderer.Stop()
	_ = p.provider.Shutdown(context.Background())
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}

// track runs fn inside a span named name and reports whether it succeeded.
// A failure is logged with the file it belongs to.
func (a *App) track(ctx context.Context, tracer ports.Tracer, name string, fn func(context.Context, ports.Span) error) bool {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		a.logger.Error(zerr.With(err, "file", name))
		return false
	}
	return true
}

func batchFailed(op string, failed int) error {
	return zerr.With(zerr.Wrap(domain.ErrBatchFailed, op+" failed"), "failed", failed)
}
