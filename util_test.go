package preflight_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/jub0bs/preflight"
)

const (
	// request headers
	headerAccept    = "Accept"
	headerUserAgent = "User-Agent"
	headerOrigin    = "Origin"
	headerACRM      = "Access-Control-Request-Method"
	headerACRH      = "Access-Control-Request-Headers"

	// response headers
	headerACAO = "Access-Control-Allow-Origin"
	headerACAM = "Access-Control-Allow-Methods"
	headerACAH = "Access-Control-Allow-Headers"
	headerACMA = "Access-Control-Max-Age"
)

func mustNewOptions(t *testing.T, in preflight.Input) *preflight.Options {
	t.Helper()
	opts, err := preflight.NewOptions(in)
	if err != nil {
		t.Fatalf("failure to build options: %v", err)
	}
	return opts
}

// newServer returns a test server that records the last request it
// received and responds with status and resHdrs.
func newServer(t *testing.T, status int, resHdrs http.Header) (*httptest.Server, *spy) {
	t.Helper()
	var s spy
	h := func(w http.ResponseWriter, r *http.Request) {
		s.method = r.Method
		s.reqHdrs = r.Header.Clone()
		for k, v := range resHdrs {
			w.Header()[k] = v
		}
		w.WriteHeader(status)
	}
	srv := httptest.NewServer(http.HandlerFunc(h))
	t.Cleanup(srv.Close)
	return srv, &s
}

type spy struct {
	method  string
	reqHdrs http.Header
}

// recorder is a preflight.Sink that records everything it's fed.
type recorder struct {
	records []preflight.Record
}

func (r *recorder) Emit(rec preflight.Record) {
	r.records = append(r.records, rec)
}

func (r *recorder) tags() []preflight.Tag {
	var tags []preflight.Tag
	for _, rec := range r.records {
		tags = append(tags, rec.Tag)
	}
	return tags
}

func (r *recorder) withTag(tag preflight.Tag) []preflight.Record {
	var recs []preflight.Record
	for _, rec := range r.records {
		if rec.Tag == tag {
			recs = append(recs, rec)
		}
	}
	return recs
}

func outcomes(results []preflight.Result) []preflight.Outcome {
	var res []preflight.Outcome
	for _, r := range results {
		res = append(res, r.Outcome)
	}
	return res
}

func assertOutcomes(t *testing.T, results []preflight.Result, want ...preflight.Outcome) {
	t.Helper()
	if got := outcomes(results); !slices.Equal(got, want) {
		t.Errorf("outcomes: got %v; want %v", got, want)
	}
}
