package formats

import "fmt"

// Size dispatches to the header decoder for format.
//
// A zero Dimensions with a nil error means buf does not hold enough bytes
// yet. A non-nil error is decisive: more bytes will not help.
func Size(format Format, buf []byte) (Dimensions, error) {
	switch format {
	case FormatJPEG:
		return JPEGSize(buf)
	case FormatPNG:
		return PNGSize(buf), nil
	case FormatGIF:
		return GIFSize(buf), nil
	default:
		return Dimensions{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
