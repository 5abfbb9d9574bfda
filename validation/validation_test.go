package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("module", "core")
	if v.HasErrors() {
		t.Error("expected no errors for a present module name")
	}

	v2 := New()
	v2.Required("module", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("module", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorIdentifier(t *testing.T) {
	valid := []string{"core", "user-service", "auth.oidc", "mod_1"}
	for _, name := range valid {
		v := New().Identifier("module", name)
		if v.HasErrors() {
			t.Errorf("expected %q to be a valid identifier, got %v", name, v.Errors())
		}
	}

	invalid := []string{"", "  ", "with space", "slash/name", "uni\tcode"}
	for _, name := range invalid {
		v := New().Identifier("module", name)
		if !v.HasErrors() {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	tag := uuid.New().String()

	v := New()
	v.RequiredUUID("container_tag", tag)
	if v.HasErrors() {
		t.Errorf("expected no errors for a valid container tag, got %v", v.Errors())
	}

	for _, bad := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		v := New()
		v.RequiredUUID("container_tag", bad)
		if !v.HasErrors() {
			t.Errorf("expected error for container tag %q", bad)
		}
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	v := New()
	v.OptionalUUID("trace_id", "")
	if v.HasErrors() {
		t.Error("expected no error for absent optional UUID")
	}

	v2 := New()
	v2.OptionalUUID("trace_id", uuid.New().String())
	if v2.HasErrors() {
		t.Error("expected no error for valid optional UUID")
	}

	v3 := New()
	v3.OptionalUUID("trace_id", "bad-uuid")
	if !v3.HasErrors() {
		t.Error("expected error for malformed optional UUID")
	}
}

func TestValidatorLengths(t *testing.T) {
	v := New()
	v.MaxLength("module", "core", 64)
	v.MinLength("module", "core", 2)
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.MaxLength("module", strings.Repeat("x", 65), 64)
	if !v2.HasErrors() {
		t.Error("expected error for name exceeding max length")
	}

	v3 := New()
	v3.MinLength("module", "c", 2)
	if !v3.HasErrors() {
		t.Error("expected error for name below min length")
	}
}

func TestValidatorRange(t *testing.T) {
	v := New()
	v.Range("max_depth", 8, 1, 64)
	if v.HasErrors() {
		t.Error("expected no error for depth in range")
	}

	v2 := New()
	v2.Range("max_depth", 0, 1, 64)
	if !v2.HasErrors() {
		t.Error("expected error for depth below range")
	}

	v3 := New()
	v3.Range("max_depth", 65, 1, 64)
	if !v3.HasErrors() {
		t.Error("expected error for depth above range")
	}
}

func TestValidatorMinMax(t *testing.T) {
	v := New()
	v.Min("imports", 0, 0)
	v.Max("imports", 3, 32)
	if v.HasErrors() {
		t.Error("expected no errors")
	}

	v2 := New()
	v2.Min("imports", -1, 0)
	if !v2.HasErrors() {
		t.Error("expected error for value below min")
	}

	v3 := New()
	v3.Max("imports", 33, 32)
	if !v3.HasErrors() {
		t.Error("expected error for value above max")
	}
}

func TestValidatorPattern(t *testing.T) {
	v := New()
	v.Pattern("type_key", "main.userService", `^[\w.]+$`)
	if v.HasErrors() {
		t.Errorf("expected no error for a well-formed type key, got %v", v.Errors())
	}

	v2 := New()
	v2.Pattern("type_key", "no spaces allowed", `^[\w.]+$`)
	if !v2.HasErrors() {
		t.Error("expected error for non-matching pattern")
	}

	// empty values are skipped
	v3 := New()
	v3.Pattern("type_key", "", `^[\w.]+$`)
	if v3.HasErrors() {
		t.Error("expected no error for empty value with pattern")
	}
}

func TestValidatorOneOf(t *testing.T) {
	kinds := []string{"transient", "singleton", "lazy_singleton", "instance"}

	v := New()
	v.OneOf("kind", "lazy_singleton", kinds)
	if v.HasErrors() {
		t.Error("expected no error for a known binding kind")
	}

	v2 := New()
	v2.OneOf("kind", "scoped", kinds)
	if !v2.HasErrors() {
		t.Error("expected error for an unknown binding kind")
	}

	// empty values are skipped
	v3 := New()
	v3.OneOf("kind", "", kinds)
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	rate := 0.5
	v := New()
	v.Custom(rate >= 0 && rate <= 1, "sample_rate", "must be between 0 and 1")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "sample_rate", "must be between 0 and 1")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "must be between 0 and 1" {
		t.Errorf("expected custom message, got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidateAggregates(t *testing.T) {
	v := New()
	v.Identifier("module", "core")
	if appErr := v.Validate(); appErr != nil {
		t.Errorf("expected nil for valid input, got %v", appErr)
	}

	v2 := New()
	v2.Required("name", "")
	v2.Required("environment", "")
	appErr := v2.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr.Message, "name") || !strings.Contains(appErr.Message, "environment") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Identifier("module", "user").MaxLength("module", "user", 64).Min("imports", 1, 0)
	if result != v {
		t.Error("expected chaining to return the same validator")
	}
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}
}

type serviceSettings struct {
	Name        string  `json:"name" validate:"required,identifier"`
	Environment string  `json:"environment" validate:"required,oneof=development staging production"`
	SampleRate  float64 `json:"sample_rate" validate:"gte=0,lte=1"`
}

func TestStructValidateValid(t *testing.T) {
	s := serviceSettings{Name: "webapp", Environment: "production", SampleRate: 0.25}
	if err := Validate(s); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateAggregatesFields(t *testing.T) {
	s := serviceSettings{Name: "", Environment: "qa", SampleRate: 1.5}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, field := range []string{"name", "environment", "sample_rate"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected error to mention %q, got %q", field, msg)
		}
	}
}

func TestStructValidateIdentifierTag(t *testing.T) {
	s := serviceSettings{Name: "web app", Environment: "development", SampleRate: 0}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected error for malformed identifier")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("expected error to mention 'name', got %q", err.Error())
	}
}

func TestValidateUUIDFunc(t *testing.T) {
	tag := uuid.New().String()
	id, err := ValidateUUID("container_tag", tag)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id.String() != tag {
		t.Errorf("expected %s, got %s", tag, id.String())
	}

	if _, err := ValidateUUID("container_tag", ""); err == nil {
		t.Error("expected error for empty UUID")
	}
	if _, err := ValidateUUID("container_tag", "bad"); err == nil {
		t.Error("expected error for invalid UUID")
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("module", "core"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("module", ""); err == nil {
		t.Error("expected error for empty required field")
	}
}
