package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Closed error taxonomy for upstream calls. Handlers match these with
// errors.Is and map them to HTTP statuses; no string sniffing anywhere.
var (
	// ErrNotFound: the upstream recognized the request but found no
	// matching entity (for OpenWeather this covers both 404 and 400,
	// which it returns for unknown city names).
	ErrNotFound = errors.New("upstream: not found")

	// ErrUnauthorized: the API credential was rejected.
	ErrUnauthorized = errors.New("upstream: unauthorized")

	// ErrTimeout: the call exceeded its deadline.
	ErrTimeout = errors.New("upstream: timeout")

	// ErrUnavailable: DNS failure or connection refused; the upstream
	// host could not be reached at all.
	ErrUnavailable = errors.New("upstream: unavailable")

	// ErrUpstream: any other non-2xx or unexpected upstream response.
	ErrUpstream = errors.New("upstream: request failed")
)

// classifyTransport wraps a transport-level error (http.Client.Do failure)
// with the matching sentinel.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
