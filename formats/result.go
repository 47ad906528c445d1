package formats

// Format identifies an encoding recognised by Detect.
type Format string

const (
	FormatUnsupported Format = "Unsupported"
	FormatJPEG        Format = "JPEG"
	FormatPNG         Format = "PNG"
	FormatGIF         Format = "GIF"
)

// Concrete reports whether f names a decodable format.
func (f Format) Concrete() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatGIF:
		return true
	}
	return false
}

// Dimensions is an image size in pixels. The zero value means the size is
// not known yet.
type Dimensions struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// IsZero reports whether d is the "not yet determined" sentinel.
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}
