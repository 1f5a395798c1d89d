package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrTimeout indicates a timeout while issuing a request.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrNotFound indicates a missing resource (HTTP 404).
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return fmt.Errorf("not_found: %w", e.Err).Error()
}

func (e ErrNotFound) Unwrap() error {
	return e.Err
}

// ErrRateLimited indicates the API rate-limited the request.
type ErrRateLimited struct {
	Err error
}

func (e ErrRateLimited) Error() string {
	return fmt.Errorf("rate_limited: %w", e.Err).Error()
}

func (e ErrRateLimited) Unwrap() error {
	return e.Err
}

// ErrStatus is any other non-2xx response.
type ErrStatus struct {
	StatusCode int
	Err        error
}

func (e ErrStatus) Error() string {
	return fmt.Errorf("status %d: %w", e.StatusCode, e.Err).Error()
}

func (e ErrStatus) Unwrap() error {
	return e.Err
}

// ErrDecode indicates a body that does not match the expected JSON shape.
type ErrDecode struct {
	Err error
}

func (e ErrDecode) Error() string {
	return fmt.Errorf("decode: %w", e.Err).Error()
}

func (e ErrDecode) Unwrap() error {
	return e.Err
}

// classifyError wraps a transport error or an HTTP status into one of the typed errors.
func classifyError(err error, statusCode int) error {
	switch statusCode {
	case http.StatusNotFound:
		return ErrNotFound{Err: fmt.Errorf("http %d", statusCode)}
	case http.StatusTooManyRequests:
		return ErrRateLimited{Err: fmt.Errorf("http %d", statusCode)}
	}
	if err == nil {
		if statusCode >= 400 {
			return ErrStatus{StatusCode: statusCode, Err: fmt.Errorf("http %d", statusCode)}
		}
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}
	return err
}

// ErrorType returns the metric label for err.
func ErrorType(err error) string {
	if err == nil {
		return "unknown"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var notFound ErrNotFound
	if errors.As(err, &notFound) {
		return "not_found"
	}
	var rateLimited ErrRateLimited
	if errors.As(err, &rateLimited) {
		return "rate_limited"
	}
	var status ErrStatus
	if errors.As(err, &status) {
		return "status"
	}
	var decode ErrDecode
	if errors.As(err, &decode) {
		return "decode"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "other"
}
