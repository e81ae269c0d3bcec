package preflight

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jub0bs/preflight/internal/headers"
)

// An Outcome is the outcome of a check.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// names of the checks, in the order in which Evaluate runs them
const (
	CheckStatus       = "status"
	CheckAllowOrigin  = "allow-origin"
	CheckAllowMethods = "allow-methods"
	CheckAllowHeaders = "allow-headers"
	CheckMaxAge       = "max-age"
)

// A Result is the result of a single check.
type Result struct {
	Check   string  // one of the Check* constants
	Outcome Outcome // passed | failed | skipped
	// Warning, if set, qualifies a Passed outcome: the check passed,
	// but the response is unusual in some way.
	Warning bool
	Reason  string // human-readable
}

// Evaluate checks res, the response to the CORS-preflight request described
// by opts, and returns one result per check, in the following order:
//
//  1. status: the status code must be 200 or 204;
//  2. allow-origin: Access-Control-Allow-Origin must be present;
//  3. allow-methods: Access-Control-Allow-Methods must be present;
//  4. allow-headers: if opts carries headers,
//     Access-Control-Allow-Headers must be present;
//  5. max-age: if present, Access-Control-Max-Age must be an integer;
//     values outside of 0 to 86400 (exclusive) only warrant a warning.
//
// All checks run unconditionally and independently of one another.
// Note that checks 2, 3, and 4 are concerned with the presence of the
// response headers, not with their values: in particular, Evaluate does not
// verify that Access-Control-Allow-Origin matches the request's origin.
func Evaluate(res *http.Response, opts *Options) []Result {
	return evaluate(res.StatusCode, NewHeaderView(res), opts.Headers() != "")
}

func evaluate(status int, view HeaderView, withACRH bool) []Result {
	return []Result{
		checkStatus(status),
		checkPresence(CheckAllowOrigin, view, headers.ACAO),
		checkPresence(CheckAllowMethods, view, headers.ACAM),
		checkAllowHeaders(view, withACRH),
		checkMaxAge(view),
	}
}

func checkStatus(status int) Result {
	res := Result{Check: CheckStatus}
	line := statusLine(status)
	switch status {
	case http.StatusOK, http.StatusNoContent:
		res.Outcome = Passed
		res.Reason = fmt.Sprintf("Status code is %s.", line)
	default:
		res.Outcome = Failed
		const tmpl = "Status code is %s; expected 200 OK or 204 No Content."
		res.Reason = fmt.Sprintf(tmpl, line)
	}
	return res
}

func statusLine(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status) + " " + text
}

func checkPresence(check string, view HeaderView, name string) Result {
	if !view.Has(name) {
		return Result{
			Check:   check,
			Outcome: Failed,
			Reason:  name + " is missing.",
		}
	}
	return Result{
		Check:   check,
		Outcome: Passed,
		Reason:  name + " is present.",
	}
}

func checkAllowHeaders(view HeaderView, withACRH bool) Result {
	if !withACRH {
		return Result{
			Check:   CheckAllowHeaders,
			Outcome: Skipped,
			Reason:  headers.ACRH + " was not used.",
		}
	}
	return checkPresence(CheckAllowHeaders, view, headers.ACAH)
}

const (
	// maxNormalMaxAge is the exclusive upper bound of the normal range
	// of Access-Control-Max-Age values.
	maxNormalMaxAge = 86_400
	// maxAgeBits is the bit size of acceptable Access-Control-Max-Age values.
	maxAgeBits = 32
)

func checkMaxAge(view HeaderView) Result {
	res := Result{Check: CheckMaxAge}
	v, found := view.Get(headers.ACMA)
	if !found {
		res.Outcome = Skipped
		res.Reason = headers.ACMA + " was not used."
		return res
	}
	delta, err := strconv.ParseInt(v, 10, maxAgeBits)
	if err != nil {
		res.Outcome = Failed
		res.Reason = headers.ACMA + " is invalid."
		return res
	}
	res.Outcome = Passed
	if delta < 0 || maxNormalMaxAge <= delta {
		res.Warning = true
		const tmpl = "%s is %d, which is outside normal range, 0 to %d."
		res.Reason = fmt.Sprintf(tmpl, headers.ACMA, delta, maxNormalMaxAge)
		return res
	}
	const tmpl = "%s is %d."
	res.Reason = fmt.Sprintf(tmpl, headers.ACMA, delta)
	return res
}
