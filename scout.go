package imgscout

import (
	"context"
	"errors"
	"sync"

	"tailscale.com/types/logger"
	"tailscale.com/util/mak"
)

// Scout tracks in-flight scout requests and routes Transport events to
// them. It is safe for concurrent use.
//
// Example:
//
//	s := imgscout.New(fetch.New())
//	res, err := s.Size(ctx, "https://example.com/photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Format: %s, Dimensions: %dx%d\n", res.Format, res.Size.Width, res.Size.Height)
type Scout struct {
	transport      Transport
	logf           logger.Logf
	maxHeaderBytes int

	mu   sync.Mutex
	reqs map[Handle]*request // guarded by mu
}

type request struct {
	locator string
	c       *coordinator
	p       *promise
}

// Option configures a Scout.
type Option func(*Scout)

// WithLogf sets the logger for request lifecycle events.
func WithLogf(logf logger.Logf) Option {
	return func(s *Scout) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// WithMaxHeaderBytes fails a request with ErrTruncated once n bytes have
// arrived without yielding dimensions. Zero, the default, means no limit.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Scout) {
		s.maxHeaderBytes = n
	}
}

// New returns a Scout fetching through t.
func New(t Transport, opts ...Option) *Scout {
	s := &Scout{
		transport: t,
		logf:      logger.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scout starts determining the format and size of the image at locator.
// cb is called exactly once, from whichever goroutine reaches the outcome.
// An invalid locator is reported synchronously with ErrInvalidLocator and
// the zero Handle, and nothing is fetched.
func (s *Scout) Scout(locator string, cb Callback) Handle {
	u, err := ParseLocator(locator)
	if err != nil {
		s.logf("imgscout: rejecting %q: %v", locator, err)
		cb(err, Dimensions{}, FormatUnsupported)
		return Handle{}
	}

	h := newHandle()
	req := &request{
		locator: locator,
		c:       newCoordinator(s.maxHeaderBytes, func() { s.transport.Cancel(h) }),
		p:       &promise{cb: cb},
	}
	s.mu.Lock()
	mak.Set(&s.reqs, h, req)
	s.mu.Unlock()

	s.logf("imgscout: [%v] scouting %s", h, locator)
	if err := s.transport.StartFetch(h, u, s); err != nil {
		if res, ok := req.c.complete(err); ok {
			s.finish(h, req, res)
		}
	}
	return h
}

// Size is the blocking form of Scout. It returns the Result and its Err.
// If ctx ends first, the fetch is cancelled and ctx.Err() is returned.
func (s *Scout) Size(ctx context.Context, locator string) (Result, error) {
	ch := make(chan Result, 1)
	h := s.Scout(locator, func(err error, size Dimensions, format Format) {
		ch <- Result{Err: err, Size: size, Format: format}
	})
	select {
	case res := <-ch:
		return res, res.Err
	case <-ctx.Done():
		s.Cancel(h)
		return Result{Err: ctx.Err(), Format: FormatUnsupported}, ctx.Err()
	}
}

// Cancel aborts the request identified by h. Its callback receives a
// *TransportError wrapping context.Canceled. Unknown handles are ignored.
func (s *Scout) Cancel(h Handle) {
	req := s.lookup(h)
	if req == nil {
		return
	}
	if res, ok := req.c.complete(context.Canceled); ok {
		s.finish(h, req, res)
	}
}

// Pending returns the number of requests still waiting for an outcome.
func (s *Scout) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

// OnChunk implements Sink.
func (s *Scout) OnChunk(h Handle, p []byte) {
	req := s.lookup(h)
	if req == nil {
		s.logf("imgscout: [%v] dropping %d bytes for finished request", h, len(p))
		return
	}
	if res, ok := req.c.append(p); ok {
		s.finish(h, req, res)
	}
}

// OnComplete implements Sink.
func (s *Scout) OnComplete(h Handle, err error) {
	req := s.lookup(h)
	if req == nil {
		return
	}
	if res, ok := req.c.complete(err); ok {
		s.finish(h, req, res)
	}
}

func (s *Scout) lookup(h Handle) *request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reqs[h]
}

// finish evicts req, stops its transport and delivers res. It runs once per
// request because only the first decisive coordinator call reports ok.
func (s *Scout) finish(h Handle, req *request, res Result) {
	s.mu.Lock()
	if s.reqs[h] == req {
		delete(s.reqs, h)
	}
	s.mu.Unlock()

	req.c.cancel()
	switch {
	case res.Err == nil:
		s.logf("imgscout: [%v] %s is %s %dx%d after %d bytes", h, req.locator, res.Format, res.Size.Width, res.Size.Height, req.c.buffered())
	case errors.Is(res.Err, context.Canceled):
		s.logf("imgscout: [%v] %s cancelled", h, req.locator)
	default:
		s.logf("imgscout: [%v] %s failed: %v", h, req.locator, res.Err)
	}
	req.p.resolve(res)
}
