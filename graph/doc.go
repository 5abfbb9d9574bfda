// Package graph models the directed dependency graph between modules.
//
// It provides cycle detection with full path reporting and Kahn-style
// level grouping for display and introspection. The graph is derived from
// declared imports and rebuilt on demand; it holds no module state.
package graph
