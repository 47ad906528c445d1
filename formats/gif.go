package formats

import "encoding/binary"

const (
	// "GIF" + version (6), then the logical screen width and height
	// (little-endian, 2 bytes each) and the packed fields byte.
	gifMinHeader = 11
	gifWidthAt   = 6
	gifHeightAt  = 8
)

// GIFSize reads the logical screen dimensions. Short buffers yield zero
// Dimensions.
func GIFSize(buf []byte) Dimensions {
	if len(buf) < gifMinHeader {
		return Dimensions{}
	}

	return Dimensions{
		Width:  uint32(binary.LittleEndian.Uint16(buf[gifWidthAt : gifWidthAt+2])),
		Height: uint32(binary.LittleEndian.Uint16(buf[gifHeightAt : gifHeightAt+2])),
	}
}
