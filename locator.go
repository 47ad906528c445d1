package imgscout

import (
	"fmt"
	"net/url"
)

// ParseLocator checks that locator is an absolute URL a Transport could
// fetch: it needs a scheme and, unless it is a file URL, a host.
func ParseLocator(locator string) (*url.URL, error) {
	if locator == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidLocator)
	}
	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidLocator, locator)
	}
	if u.Scheme == "file" {
		if u.Path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrInvalidLocator, locator)
		}
		return u, nil
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidLocator, locator)
	}
	return u, nil
}
