package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/bkocaman/harbor/errors"
)

// Pipeline is the ordered composition of a severity filter and the log
// sinks: the local console formatter, the remote shipping sink, and any
// host-supplied writers. The filter gates every sink; sink order among
// themselves carries no meaning.
type Pipeline struct {
	level  zerolog.Level
	remote *DatadogSink
	logger zerolog.Logger
}

type pipelineOptions struct {
	consoleOut     io.Writer
	noColor        bool
	hostSinks      []io.Writer
	remoteEndpoint string
}

// PipelineOption customizes pipeline construction.
type PipelineOption func(*pipelineOptions)

// WithHostSink merges a host-supplied sink into the pipeline. The host
// logger is merged in alongside the built sinks, never replacing them.
func WithHostSink(w io.Writer) PipelineOption {
	return func(o *pipelineOptions) {
		o.hostSinks = append(o.hostSinks, w)
	}
}

// WithConsoleOutput redirects the local format sink. Defaults to stdout.
func WithConsoleOutput(w io.Writer) PipelineOption {
	return func(o *pipelineOptions) {
		o.consoleOut = w
	}
}

// WithNoColor disables ANSI color on the local format sink.
func WithNoColor() PipelineOption {
	return func(o *pipelineOptions) {
		o.noColor = true
	}
}

// WithRemoteEndpoint overrides the intake URL of the remote sink.
func WithRemoteEndpoint(url string) PipelineOption {
	return func(o *pipelineOptions) {
		o.remoteEndpoint = url
	}
}

// Build composes the logging pipeline from the resolved configuration.
// The severity filter is constructed first: an unparseable level is a fatal
// configuration error and no sink is created. Construction never partially
// installs anything; the returned pipeline only becomes process-wide state
// through Install.
func Build(level, apiKey, tags string, opts ...PipelineOption) (*Pipeline, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return nil, errors.LogLevelInvalid(level, err)
	}

	o := pipelineOptions{consoleOut: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	remote := NewDatadogSink(DatadogOptions{
		Service:  ServiceName,
		APIKey:   apiKey,
		Region:   RegionUS1,
		Tags:     tags,
		Endpoint: o.remoteEndpoint,
	})

	sinks := make([]io.Writer, 0, 2+len(o.hostSinks))
	sinks = append(sinks, newConsoleWriter(o.consoleOut, o.noColor))
	sinks = append(sinks, remote)
	sinks = append(sinks, o.hostSinks...)

	zl := zerolog.New(zerolog.MultiLevelWriter(sinks...)).
		Level(lvl).
		With().Timestamp().Logger()

	return &Pipeline{level: lvl, remote: remote, logger: zl}, nil
}

// Logger returns a Logger writing through the pipeline. Useful before
// Install, e.g. in tests that keep the pipeline local.
func (p *Pipeline) Logger() *Logger {
	return &Logger{logger: p.logger, service: ServiceName}
}

// Level returns the severity threshold the pipeline was built with.
func (p *Pipeline) Level() zerolog.Level { return p.level }

// Close flushes and stops the remote sink.
func (p *Pipeline) Close() {
	if p.remote != nil {
		p.remote.Close()
	}
}

// --- one-shot global installation ---

var (
	installMu sync.Mutex
	installed bool
)

// Install makes the pipeline the process's single global log destination.
// Installation is a one-shot operation: a second call fails loudly with
// AlreadyInstalled instead of silently overwriting the running pipeline.
// Logging before the first Install is a precondition violation, not a
// checked runtime state.
func Install(p *Pipeline) error {
	installMu.Lock()
	defer installMu.Unlock()

	if installed {
		return errors.AlreadyInstalled()
	}
	installed = true

	zerolog.SetGlobalLevel(p.level)
	zlog.Logger = p.logger
	SetGlobalLogger(p.Logger())
	return nil
}

// resetInstall clears the one-shot guard. Test hook only.
func resetInstall() {
	installMu.Lock()
	installed = false
	installMu.Unlock()
}
