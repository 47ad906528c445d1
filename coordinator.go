package imgscout

import (
	"fmt"
	"sync"

	"imgscout/formats"
)

// coordinator owns the growing header buffer of one request and decides,
// after every chunk, whether the request is answered, failed, or still
// needs bytes.
type coordinator struct {
	mu       sync.Mutex
	buf      []byte
	format   Format
	jpeg     formats.JPEGScanner
	maxBytes int
	done     bool

	cancelOnce sync.Once
	cancelFn   func()
}

func newCoordinator(maxBytes int, cancel func()) *coordinator {
	return &coordinator{
		format:   FormatUnsupported,
		maxBytes: maxBytes,
		cancelFn: cancel,
	}
}

// append adds p to the buffer and re-evaluates it. The returned bool is
// true exactly once, on the first decisive outcome.
func (c *coordinator) append(p []byte) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return Result{}, false
	}
	c.buf = append(c.buf, p...)
	if len(c.buf) < 2 {
		return Result{}, false
	}

	if !c.format.Concrete() {
		c.format = formats.Detect(c.buf)
	}
	if !c.format.Concrete() {
		if len(c.buf) > 2 {
			return c.finish(ErrUnsupportedFormat, Dimensions{})
		}
		return Result{}, false
	}

	size, err := c.decode()
	switch {
	case !size.IsZero():
		return c.finish(nil, size)
	case err != nil:
		return c.finish(fmt.Errorf("%w: %w", ErrTruncated, err), Dimensions{})
	case c.maxBytes > 0 && len(c.buf) >= c.maxBytes:
		return c.finish(fmt.Errorf("%w: no %s dimensions within %d bytes", ErrTruncated, c.format, c.maxBytes), Dimensions{})
	}
	return Result{}, false
}

func (c *coordinator) decode() (Dimensions, error) {
	if c.format == FormatJPEG {
		return c.jpeg.Scan(c.buf)
	}
	return formats.Size(c.format, c.buf)
}

// complete ends the request because the transport finished or failed
// before a decisive outcome. It reports false if the request was already
// decided.
func (c *coordinator) complete(transportErr error) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return Result{}, false
	}
	if transportErr != nil {
		return c.finish(&TransportError{Err: transportErr}, Dimensions{})
	}
	return c.finish(fmt.Errorf("%w: stream ended after %d bytes", ErrTruncated, len(c.buf)), Dimensions{})
}

func (c *coordinator) finish(err error, size Dimensions) (Result, bool) {
	c.done = true
	return Result{Err: err, Size: size, Format: c.format}, true
}

// cancel stops the transport. It is safe to call more than once.
func (c *coordinator) cancel() {
	c.cancelOnce.Do(func() {
		if c.cancelFn != nil {
			c.cancelFn()
		}
	})
}

// buffered returns the number of bytes received so far.
func (c *coordinator) buffered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf)
}

// promise hands a Result to its Callback at most once.
type promise struct {
	once sync.Once
	cb   Callback
}

// resolve delivers r and reports whether this call was the one that did.
func (p *promise) resolve(r Result) bool {
	resolved := false
	p.once.Do(func() {
		resolved = true
		if p.cb != nil {
			p.cb(r.Err, r.Size, r.Format)
		}
	})
	return resolved
}
