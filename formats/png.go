package formats

import "encoding/binary"

const (
	// Signature (8) + IHDR length (4) + "IHDR" (4) + width (4) + height (4),
	// plus the first byte after the height field.
	pngMinHeader  = 25
	pngWidthAt    = 16
	pngHeightAt   = 20
	pngDimsLength = 4
)

// PNGSize reads the width and height from the IHDR chunk, which always
// directly follows the signature. Short buffers yield zero Dimensions.
func PNGSize(buf []byte) Dimensions {
	if len(buf) < pngMinHeader {
		return Dimensions{}
	}

	return Dimensions{
		Width:  binary.BigEndian.Uint32(buf[pngWidthAt : pngWidthAt+pngDimsLength]),
		Height: binary.BigEndian.Uint32(buf[pngHeightAt : pngHeightAt+pngDimsLength]),
	}
}
