package client

import (
	"errors"

	"github.com/octabyte/hostel-gommon/utils"
	"github.com/tidwall/gjson"
)

var ErrFailed = errors.New("hostel api request failed")

// Result is the outcome of one API call: either a success carrying the
// decoded response, or the failure marker. A failure carries no detail on
// purpose; what went wrong has already been logged, alerted or acted on
// (e.g. a forced logout) by the time the caller sees it.
type Result struct {
	ok     bool
	status int
	body   []byte
}

// Failed is the uniform failure marker.
var Failed = Result{}

func succeeded(status int, body []byte) Result {
	return Result{ok: true, status: status, body: body}
}

func (r Result) OK() bool {
	return r.ok
}

// Status is the HTTP status of a successful call, 0 for a failure.
func (r Result) Status() int {
	return r.status
}

// Raw is the JSON body of a successful call. It is nil for failures and for
// successful responses without a body.
func (r Result) Raw() []byte {
	return r.body
}

// Get reads a value from the body with a gjson path, e.g. "bookings.#" or
// "user.email".
func (r Result) Get(path string) gjson.Result {
	if !r.ok || len(r.body) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.body, path)
}

// Decode unmarshals the body into v. It returns ErrFailed for failures and
// leaves v untouched when the body is empty.
func (r Result) Decode(v interface{}) error {
	if !r.ok {
		return ErrFailed
	}
	if len(r.body) == 0 {
		return nil
	}
	return utils.BytesToStruct(r.body, v)
}
