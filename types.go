package imgscout

import (
	"github.com/google/uuid"

	"imgscout/formats"
)

// Format represents a supported image format.
type Format = formats.Format

const (
	FormatUnsupported = formats.FormatUnsupported
	FormatJPEG        = formats.FormatJPEG
	FormatPNG         = formats.FormatPNG
	FormatGIF         = formats.FormatGIF
)

// Dimensions is an image size in pixels. The zero value means "unknown".
type Dimensions = formats.Dimensions

// Result is the outcome of one scout request. Err is nil on success, in
// which case Size is non-zero and Format is concrete.
type Result struct {
	Err    error      `json:"-"`
	Size   Dimensions `json:"size"`
	Format Format     `json:"format"`
}

// Callback receives the Result of a scout request. It is called exactly
// once per request.
type Callback func(err error, size Dimensions, format Format)

// Handle identifies one in-flight scout request. A fresh Handle is issued
// for every call, so two requests for the same locator never share one.
type Handle uuid.UUID

func newHandle() Handle {
	return Handle(uuid.New())
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}
