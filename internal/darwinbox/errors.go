package darwinbox

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Kind classifies a failure surfaced to MCP callers.
type Kind string

const (
	KindAuth             Kind = "auth_error"
	KindRemote           Kind = "remote_error"
	KindInvalidArgument  Kind = "invalid_argument"
	KindUnknownOperation Kind = "unknown_operation"
	KindInternal         Kind = "internal_error"
)

// Text codes carried on the go-errors envelope.
const (
	TextCodeAuth             = "AUTH_ERROR"
	TextCodeRemote           = "REMOTE_ERROR"
	TextCodeInvalidArgument  = "INVALID_ARGUMENT"
	TextCodeUnknownOperation = "UNKNOWN_OPERATION"
	TextCodeInternal         = "INTERNAL_ERROR"
)

// NewAuthError reports that no credential could be obtained.
func NewAuthError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(TextCodeAuth)
}

// NewRemoteError reports a failed authenticated call. status is the upstream
// HTTP status, or 0 for transport failures.
func NewRemoteError(message string, status int) *goerrors.Error {
	code := status
	if code == 0 {
		code = http.StatusBadGateway
	}
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(code).
		WithTextCode(TextCodeRemote)
	if status != 0 {
		err.WithMetadata(map[string]any{"upstream_status": status})
	}
	return err
}

// NewInvalidArgument reports a missing or malformed caller argument.
func NewInvalidArgument(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidArgument)
}

// NewUnknownOperation reports a tool name outside the catalog.
func NewUnknownOperation(name string) *goerrors.Error {
	return goerrors.New("Unknown tool: "+name, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeUnknownOperation)
}

// NewInternal wraps an unexpected failure.
func NewInternal(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeInternal)
}

// KindOf classifies err. Errors that are not go-errors envelopes are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return KindInternal
	}
	switch strings.ToUpper(rich.TextCode) {
	case TextCodeAuth:
		return KindAuth
	case TextCodeRemote:
		return KindRemote
	case TextCodeInvalidArgument:
		return KindInvalidArgument
	case TextCodeUnknownOperation:
		return KindUnknownOperation
	}
	switch rich.Category {
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return KindAuth
	case goerrors.CategoryExternal:
		return KindRemote
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return KindInvalidArgument
	case goerrors.CategoryNotFound:
		return KindUnknownOperation
	}
	return KindInternal
}

// MessageOf returns the human-readable message of err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && strings.TrimSpace(rich.Message) != "" {
		return rich.Message
	}
	return err.Error()
}
