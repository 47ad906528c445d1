package formats

import (
	"encoding/binary"
	"fmt"
)

// jpegState is a step of the segment walk.
type jpegState int

const (
	jpegSeeking jpegState = iota
	jpegMarkerFound
	jpegSkip
	jpegParseDimensions
	jpegEnd
)

func (s jpegState) String() string {
	switch s {
	case jpegSeeking:
		return "seeking"
	case jpegMarkerFound:
		return "marker"
	case jpegSkip:
		return "skip"
	case jpegParseDimensions:
		return "frame"
	case jpegEnd:
		return "end"
	}
	return fmt.Sprintf("jpegState(%d)", int(s))
}

const (
	markerPrefix = 0xFF
	eoiMarker    = 0xD9 // End Of Image.
	app0Marker   = 0xE0
	app15Marker  = 0xEF

	// The SOI marker occupies the first two bytes.
	jpegWalkStart = 2
)

// isSOF reports whether marker starts a frame header. DHT (0xC4), JPG
// (0xC8) and DAC (0xCC) share the range but carry no dimensions.
func isSOF(marker byte) bool {
	switch marker {
	case 0xC0, 0xC1, 0xC2, 0xC3,
		0xC5, 0xC6, 0xC7,
		0xC9, 0xCA, 0xCB,
		0xCD, 0xCE, 0xCF:
		return true
	}
	return false
}

// JPEGScanner walks JPEG marker segments over a buffer that only ever grows.
// It remembers where the previous Scan stopped so each call only looks at
// bytes it has not consumed yet.
//
// The zero value is ready to use.
type JPEGScanner struct {
	state   jpegState
	offset  int
	started bool
	size    Dimensions
	err     error
	done    bool
}

// Scan continues the walk over buf, which must extend every buffer passed to
// earlier calls. It returns non-zero Dimensions once a frame header is
// found, zero Dimensions and a nil error when buf ends mid-walk, and a
// non-nil error when the stream can never yield a size.
func (s *JPEGScanner) Scan(buf []byte) (Dimensions, error) {
	if s.done {
		return s.size, s.err
	}
	if !s.started {
		s.state, s.offset, s.started = jpegSeeking, jpegWalkStart, true
	}

	for {
		switch s.state {
		case jpegSeeking:
			if len(buf) <= s.offset {
				return Dimensions{}, nil
			}
			if buf[s.offset] == markerPrefix {
				s.state = jpegMarkerFound
			}
			s.offset++

		case jpegMarkerFound:
			if len(buf) <= s.offset {
				return Dimensions{}, nil
			}
			marker := buf[s.offset]
			switch {
			case marker >= app0Marker && marker <= app15Marker:
				s.state = jpegSkip
			case isSOF(marker):
				s.state = jpegParseDimensions
			case marker == markerPrefix:
				// Fill byte; the marker code follows.
				s.offset++
			case marker == eoiMarker:
				s.state = jpegEnd
			default:
				s.state = jpegSkip
			}

		case jpegSkip:
			// Length field follows the marker and counts itself.
			if len(buf) <= s.offset+2 {
				return Dimensions{}, nil
			}
			length := int(binary.BigEndian.Uint16(buf[s.offset+1 : s.offset+3]))
			if length < 2 {
				return s.finish(Dimensions{}, fmt.Errorf("%w: segment 0x%02X at offset %d has length %d",
					ErrInvalidData, buf[s.offset], s.offset, length))
			}
			s.offset += 1 + length
			s.state = jpegSeeking

		case jpegParseDimensions:
			// marker(1) length(2) precision(1) height(2) width(2)
			if len(buf) <= s.offset+7 {
				return Dimensions{}, nil
			}
			size := Dimensions{
				Height: uint32(binary.BigEndian.Uint16(buf[s.offset+4 : s.offset+6])),
				Width:  uint32(binary.BigEndian.Uint16(buf[s.offset+6 : s.offset+8])),
			}
			if size.IsZero() {
				return s.finish(size, fmt.Errorf("%w: frame header at offset %d has no dimensions", ErrInvalidData, s.offset))
			}
			return s.finish(size, nil)

		case jpegEnd:
			return s.finish(Dimensions{}, ErrNoFrame)
		}
	}
}

func (s *JPEGScanner) finish(size Dimensions, err error) (Dimensions, error) {
	s.size, s.err, s.done = size, err, true
	return size, err
}

// JPEGSize walks buf from the start of the first segment. See
// JPEGScanner.Scan for the meaning of the results.
func JPEGSize(buf []byte) (Dimensions, error) {
	var s JPEGScanner
	return s.Scan(buf)
}
