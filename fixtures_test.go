package imgscout

// createScoutPNG creates a 500x375 PNG header followed by an IEND chunk.
func createScoutPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D, // IHDR chunk length (13)
		0x49, 0x48, 0x44, 0x52, // "IHDR"
		0x00, 0x00, 0x01, 0xF4, // Width (500)
		0x00, 0x00, 0x01, 0x77, // Height (375)
		0x08,             // Bit depth
		0x06,             // Color type (RGBA)
		0x00, 0x00, 0x00, // Compression, filter, interlace
		0x00, 0x00, 0x00, 0x00, // CRC (dummy)
		0x00, 0x00, 0x00, 0x00, // IEND chunk length
		0x49, 0x45, 0x4E, 0x44, // "IEND"
		0xAE, 0x42, 0x60, 0x82, // CRC
	}
}

// createScoutGIF creates a 500x375 GIF header.
func createScoutGIF() []byte {
	return []byte{
		0x47, 0x49, 0x46, 0x38, 0x39, 0x61, // "GIF89a"
		0xF4, 0x01, // Width (500) little-endian
		0x77, 0x01, // Height (375) little-endian
		0x80,             // Packed fields
		0x00,             // Background color
		0x00,             // Aspect ratio
		0x00, 0x00, 0x00, // Color table entry (dummy)
		0x3B, // Trailer
	}
}

// createScoutJPEG creates a 500x375 JPEG: SOI, APP0 (JFIF), SOF0, EOI.
func createScoutJPEG() []byte {
	return []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xE0, 0x00, 0x10, // APP0 segment (16 bytes)
		0x4A, 0x46, 0x49, 0x46, 0x00, 0x01, 0x01, 0x01, 0x00, 0x48, 0x00, 0x48, 0x00, 0x00, // JFIF header
		0xFF, 0xC0, 0x00, 0x0B, // SOF0 segment (11 bytes)
		0x08,       // Precision
		0x01, 0x77, // Height (375)
		0x01, 0xF4, // Width (500)
		0x01,             // Components
		0x01, 0x11, 0x00, // Component spec
		0xFF, 0xD9, // EOI
	}
}

// createMinimalBMP creates the start of a BMP file header.
func createMinimalBMP() []byte {
	return []byte{
		0x42, 0x4D, // "BM"
		0x00, 0x00, 0x00, 0x00, // File size (dummy)
		0x00, 0x00, // Reserved
		0x00, 0x00, // Reserved
		0x36, 0x00, 0x00, 0x00, // Offset to pixel data
	}
}

var scoutSize = Dimensions{Width: 500, Height: 375}
