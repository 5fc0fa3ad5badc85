package board

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned when the attention probe got no CC acknowledgement
// before a command. The board may be absent, busy, or the link noisy; the
// condition is recoverable and callers may retry.
var ErrNotReady = errors.New("board did not acknowledge attention probe")

// ErrNoBoardFound is returned by port autodetection when no candidate
// serial port is present.
var ErrNoBoardFound = errors.New("no SXB board found among serial ports")

// FormatError reports an executable image that does not carry the framing
// this loader understands. It is fatal to the load: there is no partial
// meaning to a malformed image.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("image format: %s", e.Reason)
}
