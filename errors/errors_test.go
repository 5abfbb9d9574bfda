package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorMessageFormat(t *testing.T) {
	err := ModuleNotFound("user", "")
	if !strings.Contains(err.Error(), "MODULE_NOT_FOUND") {
		t.Errorf("expected code in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), `"user"`) {
		t.Errorf("expected module name in message, got %q", err.Error())
	}
}

func TestModuleNotFoundWithRequester(t *testing.T) {
	err := ModuleNotFound("core", "user")
	if !strings.Contains(err.Message, `"core"`) || !strings.Contains(err.Message, `"user"`) {
		t.Errorf("expected both identifiers in message, got %q", err.Message)
	}
	if err.Details["requester"] != "user" {
		t.Errorf("expected requester detail, got %v", err.Details)
	}
}

func TestCircularDependencyPath(t *testing.T) {
	err := CircularDependency([]string{"a", "b", "a"})
	if !strings.Contains(err.Message, "a -> b -> a") {
		t.Errorf("expected full cycle path in message, got %q", err.Message)
	}
	path, ok := err.Details["path"].([]string)
	if !ok || len(path) != 3 {
		t.Errorf("expected path detail with 3 entries, got %v", err.Details["path"])
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestHasCode(t *testing.T) {
	err := SelfImport("user")
	if !HasCode(err, ErrCodeConfiguration) {
		t.Error("expected ErrCodeConfiguration")
	}
	if HasCode(err, ErrCodeModuleNotFound) {
		t.Error("did not expect ErrCodeModuleNotFound")
	}

	wrapped := fmt.Errorf("initialize: %w", err)
	if !HasCode(wrapped, ErrCodeConfiguration) {
		t.Error("expected HasCode to see through wrapping")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("expected ErrCodeInternal for plain error, got %s", got)
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInternal, "test").WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected detail to be set, got %v", err.Details)
	}
}
