package imgscout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocator is returned when a locator cannot be parsed. No
	// fetch is started for it.
	ErrInvalidLocator = errors.New("imgscout: invalid locator")

	// ErrUnsupportedFormat is returned when the leading bytes match none of
	// PNG, GIF or JPEG.
	ErrUnsupportedFormat = errors.New("imgscout: unsupported format, only PNG, GIF and JPEG are supported")

	// ErrTruncated is returned when the stream ended, or the header can never
	// yield a size, before dimensions were found. The remote image is likely
	// malformed or corrupt.
	ErrTruncated = errors.New("imgscout: truncated or unparseable image header")

	// ErrFetchFailed indicates that fetching a remote resource failed.
	// Errors matching it are *TransportError values.
	ErrFetchFailed = errors.New("imgscout: fetch failed")
)

// TransportError wraps an error reported by a Transport.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrFetchFailed, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match ErrFetchFailed.
func (e *TransportError) Is(target error) bool {
	return target == ErrFetchFailed
}
