package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	logger "github.com/mutablelogic/go-server/pkg/logger"
	serverotel "github.com/mutablelogic/go-server/pkg/otel"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// HTTP server and client options
	HTTP struct {
		Addr    string        `name:"addr" env:"HERITAGE_ADDR" default:"localhost:8080" help:"Server listen address"`
		Prefix  string        `name:"prefix" default:"" help:"Path prefix for all routes"`
		Origin  string        `name:"origin" default:"" help:"Allowed cross-origin requests, or '*' for any"`
		Timeout time.Duration `name:"timeout" default:"2m" help:"Client request timeout"`
	} `embed:"" prefix:"http."`

	// Open Telemetry options
	OTel struct {
		Endpoint string `name:"endpoint" env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT,OTEL_EXPORTER_OTLP_ENDPOINT" help:"OpenTelemetry traces endpoint"`
		Header   string `name:"header" env:"OTEL_EXPORTER_OTLP_HEADERS" help:"OpenTelemetry collector headers"`
		Name     string `name:"name" env:"OTEL_SERVICE_NAME" default:"heritage" help:"OpenTelemetry service name"`
	} `embed:"" prefix:"otel."`

	// Context
	ctx      context.Context
	tracer   trace.Tracer
	logger   *slog.Logger
	execName string
}

type CLI struct {
	Globals
	ServerCommands
	HeritageCommands
	ToolCommands
	VersionCommands
}

const (
	tracerName = "github.com/mutablelogic/go-heritage/cmd/heritage"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Heritage restoration agent"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Create a logger
	cli.Globals.logger = newLogger(os.Stderr, logLevel(cli.Debug, cli.Verbose), term.IsTerminal(int(os.Stderr.Fd())))
	slog.SetDefault(cli.Globals.logger)

	// Spans go to the globally registered provider, which is a no-op unless
	// an exporter endpoint is set
	cli.Globals.tracer = otel.Tracer(tracerName)
	if cli.OTel.Endpoint != "" {
		provider, err := serverotel.NewProvider(cli.OTel.Endpoint, "", "", cli.OTel.Header, cli.OTel.Name)
		cmd.FatalIfErrorf(err)
		defer serverotel.ShutdownProvider(context.Background())
		cli.Globals.tracer = provider.Tracer(tracerName)
	}

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// logLevel returns the level for the debug and verbose flags
func logLevel(debug, verbose bool) *slog.LevelVar {
	level := new(slog.LevelVar)
	switch {
	case verbose:
		level.Set(logger.LevelTrace)
	case debug:
		level.Set(logger.LevelDebug)
	}
	return level
}

// newLogger writes coloured lines to a terminal and JSON otherwise
func newLogger(w io.Writer, level *slog.LevelVar, tty bool) *slog.Logger {
	if tty {
		return slog.New(logger.NewTermHandler(w, level))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
