package apierr

import (
	"errors"
	"fmt"
)

// Error is the HTTP-facing error carried from services up to handlers.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// ConfigurationError means a required credential or setting is absent.
// It is thrown to the caller and never retried.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set", e.Name)
}

func MissingConfig(name string) *ConfigurationError {
	return &ConfigurationError{Name: name}
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// UpstreamError wraps a non-2xx or malformed response from a third-party
// service. Adapters catch these at the boundary and degrade where a
// sensible default exists.
type UpstreamError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s: http %d", e.Service, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func Upstream(service string, status int, err error) *UpstreamError {
	return &UpstreamError{Service: service, Status: status, Err: err}
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
