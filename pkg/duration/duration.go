package duration

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration with JSON marshalling as a human
// string ("1h32m4s") instead of a bare nanosecond count, so
// SeriesResult.Elapsed (internal/harness) reads naturally in the
// /runs API response instead of forcing a client to convert.
type Duration struct {
	time.Duration
}

// ErrInvalidInput is returned by UnmarshalJSON when the JSON value is
// neither a number (nanoseconds) nor a time.ParseDuration-compatible
// string.
var ErrInvalidInput = fmt.Errorf("could not unmarshal value to duration")

// NewDuration wraps t.
func NewDuration(t time.Duration) Duration {
	return Duration{t}
}

// MarshalJSON renders d as its String() form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either a bare JSON number (nanoseconds, as
// encoding/json would round-trip a raw time.Duration) or a string
// parseable by time.ParseDuration, so this type stays a drop-in
// replacement for time.Duration on the read side even though it
// always writes the string form.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	default:
		return ErrInvalidInput
	}
}
