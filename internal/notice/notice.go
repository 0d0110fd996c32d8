// Package notice carries user-facing success/error messages out of the sync
// core. The CLI prints them; tests capture them.
package notice

import (
	"errors"
	"fmt"
	"io"

	"github.com/Somethings1/fintrack-sub000/internal/api"
)

// Notifier receives user-facing notices. Implementations must be cheap; they
// are called from hot paths in the sync core.
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

// Writer prints notices to an io.Writer, one line each.
type Writer struct {
	Out io.Writer
}

func (w *Writer) Success(msg string) { fmt.Fprintln(w.Out, msg) }
func (w *Writer) Warn(msg string)    { fmt.Fprintln(w.Out, "warning:", msg) }
func (w *Writer) Error(msg string)   { fmt.Fprintln(w.Out, "error:", msg) }

// Discard swallows all notices. Useful for silent operations and tests.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Warn(string)    {}
func (Discard) Error(string)   {}

// ForTransportError maps a failed backend call onto the message the user
// should see, by status class.
func ForTransportError(what string, err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Unavailable():
			return fmt.Sprintf("%s failed: server unavailable, try again later", what)
		case se.Unauthorized():
			return fmt.Sprintf("%s failed: session issue, please log in again", what)
		}
		return fmt.Sprintf("%s failed unexpectedly (status %d)", what, se.Status)
	}
	return fmt.Sprintf("%s failed: %v", what, err)
}
