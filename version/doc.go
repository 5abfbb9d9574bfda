// Package version exposes the build version for modkit applications.
//
// The version and git commit are stamped at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/modkit/version.Version=v1.0.0"
//
// Builds without stamps fall back to the vcs metadata the Go toolchain
// embeds in the binary.
package version
