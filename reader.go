package imgscout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// readChunkSize is how much SizeFromReader asks for per Read. Headers of
// all three formats normally fit in the first chunk.
const readChunkSize = 4 << 10

var bytePool = sync.Pool{
	New: func() interface{} {
		return make([]byte, readChunkSize)
	},
}

func borrowBuffer(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf := bytePool.Get().([]byte)
	if cap(buf) < size {
		buf = make([]byte, size)
	}
	return buf[:size]
}

func releaseBuffer(buf []byte) {
	if buf == nil {
		return
	}
	bytePool.Put(buf)
}

// SizeOfFile reports the format and dimensions of the image at path,
// reading only as much of the file as the header needs.
//
// Example:
//
//	res, err := imgscout.SizeOfFile("image.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Format: %s, Dimensions: %dx%d\n", res.Format, res.Size.Width, res.Size.Height)
func SizeOfFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{Err: err, Format: FormatUnsupported}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return SizeFromReader(file)
}

// SizeFromBytes reports the format and dimensions of the image in b.
func SizeFromBytes(b []byte) (Result, error) {
	return SizeFromReader(bytes.NewReader(b))
}

// SizeFromReader feeds r through the same incremental parser used for
// remote fetches and stops reading at the first decisive outcome.
func SizeFromReader(r io.Reader) (Result, error) {
	c := newCoordinator(0, nil)
	buf := borrowBuffer(readChunkSize)
	defer releaseBuffer(buf)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if res, ok := c.append(buf[:n]); ok {
				return res, res.Err
			}
		}
		if errors.Is(err, io.EOF) {
			res, _ := c.complete(nil)
			return res, res.Err
		}
		if err != nil {
			res, _ := c.complete(fmt.Errorf("failed to read image header: %w", err))
			return res, res.Err
		}
	}
}
