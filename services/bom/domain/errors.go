package domain

import "errors"

// Sentinel errors for the bom domain. Use errors.Is() to check these.
var (
	// ErrEmptyBom indicates the input contained no parseable line items.
	ErrEmptyBom = errors.New("bom contains no line items")

	// ErrUnparsableBom indicates the raw input could not be parsed as CSV.
	ErrUnparsableBom = errors.New("bom input is not parseable")

	// ErrUnknownProvider indicates a requested provider name is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderUnavailable indicates an adapter has no credentials and no
	// mock fallback. The orchestrator treats it as zero offers; it never
	// aborts a realization.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")
)
