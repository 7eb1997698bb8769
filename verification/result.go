// Package verification implements the accumulating VerificationResult
// of spec §3/§4.6/§7: a boolean plus an ordered list of human-
// readable error messages, a monoid with identity "verified, no
// errors" under "AND of booleans, append of message lists" (spec §9).
package verification

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Result carries the outcome of a verify*Argument call. It never
// short-circuits: every documented algebraic check runs to
// completion and failures accumulate in order, so a verifier cannot
// be used as a timing oracle for which check failed first (spec
// §4.6).
type Result struct {
	err *multierror.Error
}

// New returns an empty, "verified" Result.
func New() *Result {
	return &Result{err: &multierror.Error{}}
}

// Fail appends a failure message, in order.
func (r *Result) Fail(message string) {
	r.err = multierror.Append(r.err, errorString(message))
}

// Failf appends a formatted failure message.
func (r *Result) Failf(format string, args ...interface{}) {
	r.Fail(fmt.Sprintf(format, args...))
}

// Merge appends another Result's errors, preserving order — the
// "labelled prefixes" propagation spec §9 describes for sub-argument
// failures. prefix, if non-empty, is prepended to each merged message.
func (r *Result) Merge(prefix string, other *Result) {
	for _, e := range other.Errors() {
		if prefix == "" {
			r.Fail(e)
		} else {
			r.Failf("%s: %s", prefix, e)
		}
	}
}

// Verified reports whether the error list is empty.
func (r *Result) Verified() bool {
	return r.err == nil || r.err.Len() == 0
}

// Errors returns the ordered list of failure messages.
func (r *Result) Errors() []string {
	if r.err == nil {
		return nil
	}
	out := make([]string, 0, r.err.Len())
	for _, e := range r.err.Errors {
		out = append(out, e.Error())
	}
	return out
}

// Err returns nil if verified, or the accumulated multierror otherwise.
func (r *Result) Err() error {
	return r.err.ErrorOrNil()
}

type errorString string

func (e errorString) Error() string { return string(e) }
