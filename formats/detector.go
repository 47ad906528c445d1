package formats

import "encoding/binary"

// Magic words formed by the first two bytes of each supported format.
const (
	jpegMagic = 0xFFD8
	pngMagic  = 0x8950
	gifMagic  = 0x4749
)

// Detect identifies the image format by examining the first two bytes.
//
// A buffer shorter than two bytes yields FormatUnsupported as an
// indeterminate answer; callers must wait for more data. With two or more
// bytes an unsupported result is final.
func Detect(magicBytes []byte) Format {
	if len(magicBytes) < 2 {
		return FormatUnsupported
	}

	switch binary.BigEndian.Uint16(magicBytes[:2]) {
	case jpegMagic:
		return FormatJPEG
	case pngMagic:
		return FormatPNG
	case gifMagic:
		return FormatGIF
	default:
		return FormatUnsupported
	}
}
