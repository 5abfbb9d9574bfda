package bootstrap

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kbukum/modkit/binding"
	"github.com/kbukum/modkit/config"
	"github.com/kbukum/modkit/modular"
)

type testAppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Listen               string `yaml:"listen" mapstructure:"listen"`
}

func validConfig() *testAppConfig {
	return &testAppConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        "test-app",
			Environment: "development",
			Version:     "0.1.0",
		},
		Listen: ":0",
	}
}

type greeter struct{ Prefix string }

func greeterModule() modular.Definition {
	return modular.Define("greeter", nil, func(ctx context.Context, c *binding.Container) error {
		return binding.BindValue(c, &greeter{Prefix: "hello"})
	})
}

func TestNewAppAppliesDefaultsAndValidates(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = ""

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("environment = %q, want defaulted %q", app.Cfg.Environment, "development")
	}
	if app.Name != "test-app" {
		t.Errorf("name = %q", app.Name)
	}
	if app.Registry == nil {
		t.Fatal("registry not created")
	}
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Name = ""

	if _, err := NewApp(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestNewAppWithCustomRegistry(t *testing.T) {
	r := modular.NewRegistry()
	app, err := NewApp(validConfig(), WithRegistry(r))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.Registry != r {
		t.Fatal("custom registry not used")
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	app, err := NewApp(validConfig(), WithGracefulTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.RegisterModules(greeterModule())

	var order []string
	app.OnStart(func(ctx context.Context) error {
		if app.Registry.Get("greeter") == nil {
			t.Error("modules not initialized before OnStart")
		}
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(ctx context.Context, a *App[*testAppConfig]) error {
		g, err := binding.Resolve[*greeter](a.Registry.Get("greeter").Container())
		if err != nil {
			return err
		}
		if g.Prefix != "hello" {
			t.Errorf("prefix = %q", g.Prefix)
		}
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(ctx context.Context) error {
		order = append(order, "ready")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		return nil
	})

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}

	want := []string{"start", "configure", "ready", "task", "stop"}
	if len(order) != len(want) {
		t.Fatalf("lifecycle order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("lifecycle order = %v, want %v", order, want)
		}
	}

	if app.Registry.Len() != 0 {
		t.Error("registry not cleared on shutdown")
	}
}

func TestRunTaskReturnsTaskError(t *testing.T) {
	app, err := NewApp(validConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	boom := stderrors.New("task failed")
	got := app.RunTask(context.Background(), func(ctx context.Context) error { return boom })
	if !stderrors.Is(got, boom) {
		t.Fatalf("RunTask error = %v, want %v", got, boom)
	}
}

func TestStartupFailsOnModuleError(t *testing.T) {
	app, err := NewApp(validConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	boom := stderrors.New("register boom")
	app.RegisterModules(modular.Define("broken", nil, func(ctx context.Context, c *binding.Container) error {
		return boom
	}))

	got := app.RunTask(context.Background(), func(ctx context.Context) error {
		t.Error("task must not run when startup fails")
		return nil
	})
	if !stderrors.Is(got, boom) {
		t.Fatalf("expected module error, got %v", got)
	}
}

func TestOnStartHookFailureAborts(t *testing.T) {
	app, err := NewApp(validConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	boom := stderrors.New("hook boom")
	app.OnStart(func(ctx context.Context) error { return boom })

	got := app.RunTask(context.Background(), func(ctx context.Context) error {
		t.Error("task must not run after hook failure")
		return nil
	})
	if !stderrors.Is(got, boom) {
		t.Fatalf("expected hook error, got %v", got)
	}
}

func TestSummaryCollectModules(t *testing.T) {
	r := modular.NewRegistry()
	r.RegisterMany(
		greeterModule(),
		modular.Define("api", []string{"greeter"}, func(ctx context.Context, c *binding.Container) error {
			return nil
		}),
	)
	if err := r.InitializeAll(context.Background()); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}

	s := NewSummary("svc", "1.0")
	infos := s.CollectModules(r)
	if len(infos) != 2 {
		t.Fatalf("collected %d modules, want 2", len(infos))
	}
	if infos[0].Name != "greeter" || infos[0].Bindings != 1 || infos[0].Level != 0 {
		t.Errorf("greeter info = %+v", infos[0])
	}
	if infos[1].Name != "api" || infos[1].Level != 1 {
		t.Errorf("api info = %+v", infos[1])
	}
	if len(infos[1].Imports) != 1 || infos[1].Imports[0] != "greeter" {
		t.Errorf("api imports = %v", infos[1].Imports)
	}
}

func TestSummaryTrackRoute(t *testing.T) {
	s := NewSummary("svc", "1.0")
	s.TrackRoute("GET", "/healthz", "health")
	if len(s.routes) != 1 || s.routes[0].Path != "/healthz" {
		t.Fatalf("routes = %+v", s.routes)
	}
}
