package infra

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind   RepositoryErrorKind
	Status int // HTTP status of the remote response, 0 when none was received
	msg    string
	err    error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", sanitize.Error(err)))
	}

	slogger.Error("Repository error: "+msg, logArgs...)

	if err != nil {
		err = errs.WithStack(err)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// NewHTTPError classifies a non-2xx response. body is sanitized before it is kept.
func NewHTTPError(status int, msg, body string) error {
	kind := KindHTTPFailure
	switch {
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindUnauthorized
	}
	var inner error
	if body != "" {
		inner = errors.New(sanitize.String(body))
	}
	return RepositoryError{Kind: kind, Status: status, msg: msg, err: inner}
}

// NewTransportError classifies a request that never produced a response.
func NewTransportError(msg string, err error) error {
	kind := KindHTTPFailure
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return RepositoryError{Kind: kind, msg: msg, err: errors.New(sanitize.Error(err))}
}

func NewDecodeError(msg string, err error) error {
	return RepositoryError{Kind: KindDecodeFailure, msg: msg, err: err}
}

func NewConfigurationError(msg string, err error) error {
	return RepositoryError{Kind: KindConfiguration, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound      RepositoryErrorKind = "NOT_FOUND"
	KindHTTPFailure   RepositoryErrorKind = "HTTP_FAILURE"
	KindUnauthorized  RepositoryErrorKind = "UNAUTHORIZED"
	KindTimeout       RepositoryErrorKind = "TIMEOUT"
	KindDecodeFailure RepositoryErrorKind = "DECODE_FAILURE"
	KindConfiguration RepositoryErrorKind = "CONFIGURATION"
)
