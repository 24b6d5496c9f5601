// Package types holds the small set of types shared by wasmkit's public
// packages, chiefly the typed error used across the rewrite pipeline.
//
// Every failure surfaced by wasmkit is an *Error carrying one of a few stable
// categories (io, malformed input, invalid archive, integer overflow, usage),
// so callers can branch with errors.Is against the package sentinels:
//
//	if errors.Is(err, types.ErrMalformed) {
//	    // input was not a wasm binary
//	}
//
// This package has no dependencies beyond the standard library.
package types
