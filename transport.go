package imgscout

import "net/url"

// Sink receives the events of fetches started by a Transport.
type Sink interface {
	// OnChunk delivers the next bytes of the fetch identified by h. Chunks
	// arrive in order and never overlap. p may be reused after the call
	// returns.
	OnChunk(h Handle, p []byte)

	// OnComplete ends the fetch identified by h, with a nil error when the
	// body was read to the end.
	OnComplete(h Handle, err error)
}

// Transport streams the bytes behind a locator.
type Transport interface {
	// StartFetch begins delivering the body of u to sink under h. It must
	// not block on the network. A non-nil error means no events will follow.
	StartFetch(h Handle, u *url.URL, sink Sink) error

	// Cancel stops delivery for h. It is idempotent and must not call back
	// into the Sink synchronously.
	Cancel(h Handle)
}
