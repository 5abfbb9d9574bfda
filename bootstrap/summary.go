package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/modkit/modular"
)

// ModuleInfo holds the tracked status of one module for display.
type ModuleInfo struct {
	Name     string
	Imports  []string
	Bindings int
	Level    int
}

// RouteInfo represents a registered HTTP route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	routes          []RouteInfo
	notes           []string
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackRoute records an HTTP route.
func (s *Summary) TrackRoute(method, path, handler string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path, Handler: handler})
}

// TrackNote records a free-form line displayed at the end of the summary.
func (s *Summary) TrackNote(note string) {
	s.notes = append(s.notes, note)
}

// CollectModules gathers per-module display info from the registry, grouped
// by dependency level.
func (s *Summary) CollectModules(registry *modular.Registry) []ModuleInfo {
	if registry == nil {
		return nil
	}

	levelOf := make(map[string]int)
	if levels, err := registry.Levels(); err == nil {
		for i, level := range levels {
			for _, name := range level {
				levelOf[name] = i
			}
		}
	}

	var infos []ModuleInfo
	for _, name := range registry.Names() {
		m := registry.Get(name)
		if m == nil {
			continue
		}
		info := ModuleInfo{
			Name:    name,
			Imports: m.Imports(),
			Level:   levelOf[name],
		}
		if c := m.Container(); c != nil {
			info.Bindings = len(c.Registrations())
		}
		infos = append(infos, info)
	}
	return infos
}

// Display prints the bootstrap summary including live module state from the
// registry.
func (s *Summary) Display(registry *modular.Registry) {
	fmt.Printf("\n")
	fmt.Printf("🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	modules := s.CollectModules(registry)
	if len(modules) > 0 {
		fmt.Printf("📦 Modules\n")
		for i, m := range modules {
			prefix := "├──"
			if i == len(modules)-1 {
				prefix = "└──"
			}
			detail := fmt.Sprintf("%d bindings", m.Bindings)
			if len(m.Imports) > 0 {
				detail += fmt.Sprintf(", imports %s", strings.Join(m.Imports, ", "))
			}
			fmt.Printf("   %s ✅ %s [level %d] (%s)\n", prefix, m.Name, m.Level, detail)
		}
		fmt.Printf("\n")
	} else {
		fmt.Printf("   └── No modules registered\n\n")
	}

	if len(s.routes) > 0 {
		fmt.Printf("🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			prefix := "├──"
			if i == len(s.routes)-1 {
				prefix = "└──"
			}
			fmt.Printf("   %s %-7s %s → %s\n", prefix, r.Method, r.Path, r.Handler)
		}
		fmt.Printf("\n")
	}

	for _, note := range s.notes {
		fmt.Printf("   %s\n", note)
	}
	if len(s.notes) > 0 {
		fmt.Printf("\n")
	}
}
