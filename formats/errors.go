package formats

import "errors"

var (
	// ErrInvalidData indicates a header that can never yield a size, such as
	// a JPEG segment whose length does not cover its own length field.
	ErrInvalidData = errors.New("formats: invalid data")

	// ErrUnsupportedFormat is returned when a decoder is not available.
	ErrUnsupportedFormat = errors.New("formats: unsupported format")

	// ErrNoFrame is returned when a JPEG stream reaches its end-of-image
	// marker without a start-of-frame segment.
	ErrNoFrame = errors.New("formats: no frame header before end of image")
)
