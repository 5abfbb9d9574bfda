package modular

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/kbukum/modkit/binding"
	"github.com/kbukum/modkit/errors"
)

func TestModuleInitializeCreatesFreshContainer(t *testing.T) {
	m := newModule(coreDef())
	if m.Initialized() {
		t.Fatal("initialized before Initialize")
	}

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	first := m.Container().Tag()

	if err := m.Reset(context.Background(), nil); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.Container().Tag() == first {
		t.Fatal("Reset did not produce a new container identity")
	}
}

func TestModuleInitializeFailureLeavesNoContainer(t *testing.T) {
	m := newModule(Define("broken", nil, func(ctx context.Context, c *binding.Container) error {
		return stderrors.New("register failed")
	}))

	if err := m.Initialize(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if m.Initialized() {
		t.Fatal("container retained after failed Initialize")
	}
}

func TestModuleValidate(t *testing.T) {
	register := func(ctx context.Context, c *binding.Container) error { return nil }

	tests := []struct {
		name    string
		imports []string
		wantErr bool
	}{
		{"no imports", nil, false},
		{"distinct imports", []string{"a", "b"}, false},
		{"self import", []string{"x", "self"}, true},
		{"duplicate import", []string{"a", "b", "a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modName := "self"
			m := newModule(Define(modName, tt.imports, register))
			err := m.Validate()
			if tt.wantErr {
				if !errors.HasCode(err, errors.ErrCodeConfiguration) {
					t.Fatalf("expected configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
		})
	}
}

func TestModuleValidateRejectsBadName(t *testing.T) {
	register := func(ctx context.Context, c *binding.Container) error { return nil }
	for _, name := range []string{"", "  ", "core module", "core/db"} {
		m := newModule(Define(name, nil, register))
		err := m.Validate()
		if !errors.HasCode(err, errors.ErrCodeValidation) {
			t.Errorf("name %q: expected validation error, got %v", name, err)
		}
	}
}

func TestModuleDisposeWithoutContainer(t *testing.T) {
	m := newModule(coreDef())
	// must not panic and must fire nothing
	fired := false
	m.Subscribe(func() { fired = true })
	m.Dispose(nil)
	if fired {
		t.Fatal("Dispose fired a notification")
	}
}

func TestModuleDisposeRunsHooks(t *testing.T) {
	var seen []any
	m := newModule(coreDef())
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	m.Dispose(func(instance any) { seen = append(seen, instance) })
	if len(seen) != 1 {
		t.Fatalf("hook saw %d instances, want 1", len(seen))
	}
	if m.Initialized() {
		t.Fatal("container retained after Dispose")
	}
}

func TestImportsModuleReflectsWiring(t *testing.T) {
	r := initChain(t)

	core := r.Get("core")
	user := r.Get("user")
	profile := r.Get("profile")

	if !user.ImportsModule(core) {
		t.Error("user should import core")
	}
	if core.ImportsModule(user) {
		t.Error("core should not import user")
	}
	if profile.ImportsModule(core) {
		t.Error("profile wires user only, not core directly")
	}
	if user.ImportsModule(nil) {
		t.Error("nil module is never imported")
	}
}

func TestModuleImportsReturnsCopy(t *testing.T) {
	m := newModule(userDef())
	imports := m.Imports()
	imports[0] = "mutated"
	if m.Imports()[0] != "core" {
		t.Fatal("Imports exposed internal slice")
	}
}
