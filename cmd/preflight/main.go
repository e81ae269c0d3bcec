// Command preflight sends a CORS-preflight request to a URL and reports
// whether the response would let a browser proceed with the actual request.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jub0bs/preflight"
	"github.com/jub0bs/preflight/internal/console"
	"github.com/jub0bs/preflight/opterrors"
	"github.com/sirupsen/logrus"
)

const (
	name    = preflight.Name
	version = preflight.Version
)

// exit codes
const (
	exitOK        = 0
	exitTransport = 1
	exitInput     = 2
	exitCanceled  = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}

// run runs the program with args and returns its exit code.
// If client is nil, the default client is used.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, client preflight.Doer) int {
	fs := newFlagSet()
	if len(args) == 0 {
		printUsage(stdout, fs)
		return exitOK
	}
	cfg, err := loadConfig(fs, args)
	if err != nil {
		fmt.Fprintf(stderr, "preflight: %v\n", err)
		fmt.Fprintln(stderr, "Run 'preflight --help' for usage.")
		return exitInput
	}
	switch {
	case cfg.help:
		printUsage(stdout, fs)
		return exitOK
	case cfg.version:
		fmt.Fprintf(stdout, "%s v%s\n", name, version)
		return exitOK
	}

	opts, err := newOptions(cfg)
	if err != nil {
		for err := range opterrors.All(err) {
			fmt.Fprintln(stderr, err)
		}
		return exitInput
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(cfg.logLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: cfg.noColor,
	})

	var sink preflight.Sink
	if cfg.plain {
		sink = preflight.NewTextSink(stdout)
	} else {
		sink = console.New(stdout, cfg.noColor)
	}
	runner := preflight.Runner{
		Client: client,
		Logger: logger,
	}
	if _, err := runner.Run(ctx, opts, sink); err != nil {
		if errors.Is(err, context.Canceled) {
			sink.Emit(preflight.Record{
				Tag:  preflight.TagWarning,
				Text: "Aborted by user!",
			})
			return exitCanceled
		}
		return exitTransport
	}
	return exitOK
}

// newOptions validates the positional arguments and the options of cfg.
func newOptions(cfg *config) (*preflight.Options, error) {
	in := preflight.Input{
		Method:        cfg.method,
		Headers:       cfg.headers,
		Origin:        cfg.origin,
		RequireOrigin: cfg.requireOrigin,
	}
	var errs []error
	if len(cfg.args) != 0 {
		in.URL = cfg.args[0]
		for _, arg := range cfg.args[1:] {
			errs = append(errs, &opterrors.ExtraURLError{Value: arg})
		}
	}
	opts, err := preflight.NewOptions(in)
	if len(errs) != 0 {
		return nil, errors.Join(append(errs, err)...)
	}
	return opts, err
}
