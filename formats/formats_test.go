package formats

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scoutPNG is the 500x375 PNG header prefix.
func scoutPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D, // IHDR chunk length (13)
		0x49, 0x48, 0x44, 0x52, // "IHDR"
		0x00, 0x00, 0x01, 0xF4, // Width (500)
		0x00, 0x00, 0x01, 0x77, // Height (375)
		0x08,                   // Bit depth
		0x02,                   // Color type (RGB)
		0x00, 0x00, 0x00, // Compression, filter, interlace
		0x00, 0x00, 0x00, 0x00, // CRC (dummy)
	}
}

// scoutGIF is the 500x375 GIF header prefix.
func scoutGIF() []byte {
	return []byte{
		0x47, 0x49, 0x46, 0x38, 0x39, 0x61, // "GIF89a"
		0xF4, 0x01, // Width (500) little-endian
		0x77, 0x01, // Height (375) little-endian
		0x80, // Packed fields
		0x00, // Background color
		0x00, // Aspect ratio
	}
}

// scoutJPEG is a 500x375 JPEG: SOI, APP0 (JFIF), DQT, SOF0, EOI.
func scoutJPEG() []byte {
	return []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xE0, 0x00, 0x10, // APP0 segment (16 bytes)
		0x4A, 0x46, 0x49, 0x46, 0x00, 0x01, 0x01, 0x01, 0x00, 0x48, 0x00, 0x48, 0x00, 0x00, // JFIF header
		0xFF, 0xDB, 0x00, 0x04, 0x00, 0x01, // DQT (truncated table)
		0xFF, 0xC0, 0x00, 0x11, // SOF0 segment (17 bytes)
		0x08,       // Precision
		0x01, 0x77, // Height (375)
		0x01, 0xF4, // Width (500)
		0x03,                   // Components
		0x01, 0x22, 0x00, 0x02, 0x11, 0x01, 0x03, 0x11, 0x01,
		0xFF, 0xD9, // EOI
	}
}

// TestDetect tests format detection via the leading magic word
func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		magicBytes []byte
		expected   Format
	}{
		{name: "JPEG", magicBytes: []byte{0xFF, 0xD8, 0xFF, 0xE0}, expected: FormatJPEG},
		{name: "PNG", magicBytes: []byte{0x89, 0x50, 0x4E, 0x47}, expected: FormatPNG},
		{name: "GIF", magicBytes: []byte{0x47, 0x49, 0x46, 0x38}, expected: FormatGIF},
		{name: "TwoBytesOnly", magicBytes: []byte{0xFF, 0xD8}, expected: FormatJPEG},
		{name: "BMP", magicBytes: []byte{0x42, 0x4D, 0x00, 0x00}, expected: FormatUnsupported},
		{name: "OneByte", magicBytes: []byte{0xFF}, expected: FormatUnsupported},
		{name: "Empty", magicBytes: nil, expected: FormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.magicBytes); got != tt.expected {
				t.Errorf("Detect() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatConcrete(t *testing.T) {
	for _, f := range []Format{FormatJPEG, FormatPNG, FormatGIF} {
		if !f.Concrete() {
			t.Errorf("%v.Concrete() = false", f)
		}
	}
	if FormatUnsupported.Concrete() || Format("").Concrete() {
		t.Error("unsupported format reported as concrete")
	}
}

// TestSize tests each decoder on a complete 500x375 header
func TestSize(t *testing.T) {
	want := Dimensions{Width: 500, Height: 375}
	tests := []struct {
		name   string
		format Format
		data   []byte
	}{
		{name: "PNG", format: FormatPNG, data: scoutPNG()},
		{name: "GIF", format: FormatGIF, data: scoutGIF()},
		{name: "JPEG", format: FormatJPEG, data: scoutJPEG()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.format {
				t.Fatalf("Detect() = %v, want %v", got, tt.format)
			}
			got, err := Size(tt.format, tt.data)
			if err != nil {
				t.Fatalf("Size() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Size() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestSize_ShortBuffers checks that every prefix shorter than a complete
// header asks for more data instead of failing.
func TestSize_ShortBuffers(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    []byte
		minimum int
	}{
		{name: "PNG", format: FormatPNG, data: scoutPNG(), minimum: 25},
		{name: "GIF", format: FormatGIF, data: scoutGIF(), minimum: 11},
		// SOF0 marker at 27, width ends at 34.
		{name: "JPEG", format: FormatJPEG, data: scoutJPEG(), minimum: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < tt.minimum; n++ {
				got, err := Size(tt.format, tt.data[:n])
				if err != nil {
					t.Fatalf("Size(%d bytes) error = %v", n, err)
				}
				if !got.IsZero() {
					t.Fatalf("Size(%d bytes) = %+v, want zero", n, got)
				}
			}
			got, err := Size(tt.format, tt.data[:tt.minimum])
			if err != nil || got.IsZero() {
				t.Errorf("Size(%d bytes) = %+v, %v, want a size", tt.minimum, got, err)
			}
		})
	}
}

func TestSize_Unsupported(t *testing.T) {
	_, err := Size(FormatUnsupported, []byte{0x42, 0x4D, 0x00})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Size() error = %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestSize_Idempotent(t *testing.T) {
	for _, data := range [][]byte{scoutPNG(), scoutGIF(), scoutJPEG()} {
		f := Detect(data)
		first, firstErr := Size(f, data)
		for i := 0; i < 3; i++ {
			got, err := Size(f, data)
			if got != first || err != firstErr {
				t.Fatalf("%v: run %d = %+v, %v; first = %+v, %v", f, i, got, err, first, firstErr)
			}
		}
	}
}
