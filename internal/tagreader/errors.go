package tagreader

import "errors"

// Read failures, classified at the point of detection. Callers branch with
// errors.Is; nothing downstream inspects error text.
var (
	// ErrUnavailable: this platform/device has no contactless capability.
	ErrUnavailable = errors.New("tag reading not available")

	// ErrDisabled: capability present but switched off.
	ErrDisabled = errors.New("tag reading is disabled")

	// ErrTimeout: a single read attempt exceeded its deadline.
	ErrTimeout = errors.New("tag read timed out")

	// ErrCancelled: the user or OS aborted the read. Never retried, and
	// callers treat it as a quiet no-op rather than an error to show.
	ErrCancelled = errors.New("tag read cancelled")

	// ErrBusy: a read was requested while another is outstanding.
	ErrBusy = errors.New("tag read already in progress")

	// ErrNoRecord: a tag was acquired but carried no readable record.
	ErrNoRecord = errors.New("no record found on tag")
)

// IsCancelled reports whether err is (or wraps) a read cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
