package darwinbox

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"auth", NewAuthError("no token"), KindAuth},
		{"remote", NewRemoteError("quota exceeded", 429), KindRemote},
		{"invalid argument", NewInvalidArgument("employee_no is required"), KindInvalidArgument},
		{"unknown operation", NewUnknownOperation("fire_everyone"), KindUnknownOperation},
		{"internal", NewInternal("boom"), KindInternal},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped auth", fmt.Errorf("ctx: %w", NewAuthError("no token")), KindAuth},
		{"category only", goerrors.New("nope", goerrors.CategoryAuthz), KindAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRemoteError_TransportCode(t *testing.T) {
	err := NewRemoteError("connection refused", 0)
	if err.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for transport failure, got %d", err.Code)
	}
	if err.Message != "connection refused" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestNewUnknownOperation_Message(t *testing.T) {
	err := NewUnknownOperation("fire_everyone")
	if MessageOf(err) != "Unknown tool: fire_everyone" {
		t.Errorf("unexpected message %q", MessageOf(err))
	}
}

func TestMessageOf_PlainError(t *testing.T) {
	if got := MessageOf(errors.New("boom")); got != "boom" {
		t.Errorf("expected boom, got %q", got)
	}
}
