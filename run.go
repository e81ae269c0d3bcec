package preflight

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jub0bs/preflight/internal/util"
	"github.com/sirupsen/logrus"
)

// Timeout is the time limit of the preflight round trip,
// including connection time and the reading of the response headers.
const Timeout = 30 * time.Second

// A Doer sends HTTP requests. [*http.Client] satisfies this interface.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewClient returns the [*http.Client] that a zero [Runner] uses.
// It times out after [Timeout] and, because browsers treat redirected
// CORS-preflight requests as failed, it does not follow redirects.
// Its transport doesn't ask for compressed responses, so the request carries
// no header other than those reported by [Build] and the response headers
// reach [NewHeaderView] untouched.
func NewClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true
	return &http.Client{
		Transport: transport,
		Timeout:   Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// A Runner performs a preflight check: it sends a single CORS-preflight
// request and evaluates the response.
// The zero value is ready to use.
type Runner struct {
	// Client sends the preflight request.
	// If nil, the result of NewClient is used.
	Client Doer
	// Logger receives diagnostic logs.
	// If nil, logs are discarded.
	Logger logrus.FieldLogger
}

// Run builds the CORS-preflight request described by opts, sends it,
// evaluates the response, and returns the results of the checks
// (see [Evaluate]).
// Along the way, it emits the following records to sink, in this order:
//
//   - the request line (TagRequest);
//   - the request headers (TagHeader), in the order of [Build];
//   - the status line and the round-trip time (TagResponse);
//   - the response headers (TagHeader), in the order of [HeaderView.All];
//   - the records of the results of the checks.
//
// opts's advisories, if any, are logged at warn level rather than emitted.
//
// If the request cannot be sent or no response is received, Run returns a
// nil slice and a non-nil error, and it emits no response records nor check
// records. Unless the error stems from the cancellation of ctx, Run first
// emits one TagError record per error in the error's chain, outermost first.
func (r *Runner) Run(ctx context.Context, opts *Options, sink Sink) ([]Result, error) {
	client := r.Client
	if client == nil {
		client = NewClient()
	}
	logger := r.Logger
	if logger == nil {
		logger = discardLogger()
	}

	req, fields := Build(ctx, opts)
	sink.Emit(Record{Tag: TagRequest, Text: req.Method + " " + req.URL.String()})
	for _, f := range fields {
		sink.Emit(Record{Tag: TagHeader, Field: f})
	}

	log := logger.WithFields(logrus.Fields{
		"url":    req.URL.String(),
		"method": opts.Method(),
	})
	for _, msg := range opts.Advisories() {
		log.Warn(msg)
	}
	log.Debug("sending preflight request")
	start := time.Now()
	res, err := client.Do(req)
	if err != nil {
		err = util.Errorf("sending preflight request: %w", err)
		if errors.Is(err, context.Canceled) {
			log.WithError(err).Debug("preflight request canceled")
			return nil, err
		}
		log.WithError(err).Error("preflight request failed")
		for _, msg := range ErrorChain(err) {
			sink.Emit(Record{Tag: TagError, Text: msg})
		}
		return nil, err
	}
	defer closeBody(res.Body)
	elapsed := time.Since(start)
	log.WithFields(logrus.Fields{
		"status":  res.StatusCode,
		"elapsed": elapsed,
	}).Debug("received preflight response")

	sink.Emit(Record{Tag: TagResponse, Text: statusLine(res.StatusCode), Status: res.StatusCode})
	sink.Emit(Record{Tag: TagResponse, Text: strconv.FormatInt(elapsed.Milliseconds(), 10) + " ms"})
	view := NewHeaderView(res)
	for f := range view.All() {
		sink.Emit(Record{Tag: TagHeader, Field: f, Inbound: true})
	}
	results := evaluate(res.StatusCode, view, opts.Headers() != "")
	for _, result := range results {
		sink.Emit(result.Record())
	}
	return results, nil
}

// ErrorChain returns the message of err followed by the messages of its
// successive causes, innermost last.
func ErrorChain(err error) []string {
	return util.Chain(err)
}

// maxDrainBytes bounds how much of a response body is read
// before the body is closed, in the hope of reusing the connection.
const maxDrainBytes = 4 << 10

func closeBody(body io.ReadCloser) {
	// Errors are deliberately ignored.
	io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
	body.Close()
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
