// Package fetch streams image bytes over HTTP(S) or from local files into
// an imgscout.Sink, stopping as soon as the Scout cancels the fetch.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"tailscale.com/types/logger"
	"tailscale.com/util/mak"

	"imgscout"
)

const (
	// DefaultChunkSize is the read size used when no option overrides it.
	DefaultChunkSize = 4 << 10

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "imgscout/1"
)

// ErrUnsupportedScheme is returned by StartFetch for locators other than
// http, https and file.
var ErrUnsupportedScheme = errors.New("fetch: unsupported scheme")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: unexpected status %s", e.Status)
}

// Transport implements imgscout.Transport.
type Transport struct {
	client    *http.Client
	chunkSize int
	userAgent string
	logf      logger.Logf

	mu     sync.Mutex
	active map[imgscout.Handle]*fetch // guarded by mu
}

type fetch struct {
	cancel  context.CancelFunc
	stopped atomic.Bool
}

// Option configures a Transport.
type Option func(*Transport)

// WithClient sets the HTTP client. Its Timeout bounds each whole fetch.
func WithClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout bounds each fetch on the default client.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.client = &http.Client{Timeout: d}
		}
	}
}

// WithChunkSize sets how many bytes are read before each delivery.
func WithChunkSize(n int) Option {
	return func(t *Transport) {
		if n > 0 {
			t.chunkSize = n
		}
	}
}

// WithUserAgent sets the User-Agent header of HTTP requests.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// WithLogf sets the logger.
func WithLogf(logf logger.Logf) Option {
	return func(t *Transport) {
		if logf != nil {
			t.logf = logf
		}
	}
}

// New returns a Transport.
func New(opts ...Option) *Transport {
	t := &Transport{
		client:    &http.Client{Timeout: defaultTimeout},
		chunkSize: DefaultChunkSize,
		userAgent: defaultUserAgent,
		logf:      logger.Discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartFetch implements imgscout.Transport.
func (t *Transport) StartFetch(h imgscout.Handle, u *url.URL, sink imgscout.Sink) error {
	switch u.Scheme {
	case "http", "https", "file":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &fetch{cancel: cancel}
	t.mu.Lock()
	mak.Set(&t.active, h, f)
	t.mu.Unlock()

	go t.run(ctx, h, u, sink, f)
	return nil
}

// Cancel implements imgscout.Transport.
func (t *Transport) Cancel(h imgscout.Handle) {
	t.mu.Lock()
	f := t.active[h]
	delete(t.active, h)
	t.mu.Unlock()
	if f == nil {
		return
	}
	f.stopped.Store(true)
	f.cancel()
}

// Active returns the number of fetches still running.
func (t *Transport) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

func (t *Transport) run(ctx context.Context, h imgscout.Handle, u *url.URL, sink imgscout.Sink, f *fetch) {
	err := t.stream(ctx, h, u, sink, f)

	t.mu.Lock()
	if t.active[h] == f {
		delete(t.active, h)
	}
	t.mu.Unlock()
	f.cancel()

	if f.stopped.Load() {
		return
	}
	if err != nil {
		t.logf("fetch: [%v] %s: %v", h, u.Redacted(), err)
	}
	sink.OnComplete(h, err)
}

func (t *Transport) stream(ctx context.Context, h imgscout.Handle, u *url.URL, sink imgscout.Sink, f *fetch) error {
	body, err := t.open(ctx, u)
	if err != nil {
		return err
	}
	defer body.Close()

	buf := make([]byte, t.chunkSize)
	total := 0
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if f.stopped.Load() {
				return nil
			}
			total += n
			sink.OnChunk(h, buf[:n])
		}
		if errors.Is(err, io.EOF) {
			t.logf("fetch: [%v] %s: body ended after %d bytes", h, u.Redacted(), total)
			return nil
		}
		if err != nil {
			if f.stopped.Load() {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (t *Transport) open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	if u.Scheme == "file" {
		return os.Open(u.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept-Encoding", "gzip, zstd")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return decodeBody(resp)
}

// decodeBody undoes the content encodings advertised in the request. Since
// the request sets Accept-Encoding itself, net/http leaves bodies encoded.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
		return resp.Body, nil
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return resp.Body.Close()
		}}, nil
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to open zstd body: %w", err)
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return resp.Body.Close()
		}}, nil
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error { return rc.close() }
