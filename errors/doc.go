// Package errors provides unified error handling for modkit.
// All lifecycle and wiring failures carry a machine-readable code and the
// identifier of the module that caused them.
package errors
