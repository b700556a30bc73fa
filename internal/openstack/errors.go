package openstack

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/gophercloud/gophercloud/v2"
)

type ErrorKind string

const (
	ErrAuthFailed  ErrorKind = "auth_failed"
	ErrForbidden   ErrorKind = "forbidden"
	ErrUnreachable ErrorKind = "cloud_unreachable"
	ErrUnknown     ErrorKind = "unknown"
)

// APIError wraps a per-cloud enumeration failure with a stable kind, so
// callers and logs don't have to dig through SDK error chains.
type APIError struct {
	Kind  ErrorKind
	Cloud string
	Err   error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrAuthFailed:
		return fmt.Sprintf("cloud %s: authentication failed", e.Cloud)
	case ErrForbidden:
		return fmt.Sprintf("cloud %s: authorization failed", e.Cloud)
	case ErrUnreachable:
		return fmt.Sprintf("cloud %s: unreachable", e.Cloud)
	default:
		return fmt.Sprintf("cloud %s: %v", e.Cloud, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func classifyError(cloud string, err error) *APIError {
	if err == nil {
		return nil
	}
	var respErr gophercloud.ErrUnexpectedResponseCode
	if errors.As(err, &respErr) {
		switch respErr.Actual {
		case 401:
			return &APIError{Kind: ErrAuthFailed, Cloud: cloud, Err: err}
		case 403:
			return &APIError{Kind: ErrForbidden, Cloud: cloud, Err: err}
		}
		return &APIError{Kind: ErrUnknown, Cloud: cloud, Err: err}
	}
	if isUnreachable(err) {
		return &APIError{Kind: ErrUnreachable, Cloud: cloud, Err: err}
	}
	return &APIError{Kind: ErrUnknown, Cloud: cloud, Err: err}
}

func isUnreachable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	message := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"no such host",
		"i/o timeout",
		"context deadline exceeded",
	} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
