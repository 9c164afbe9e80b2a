// Package route implements the single-route matching core: an
// immutable route definition built once, and a seven-gate matching
// pipeline that decides whether an incoming request (path plus
// transport context) matches it.
//
// The gates run in a fixed order — routability, secure transport, path
// pattern, method, content negotiation, context constraints, custom
// predicate — and short-circuit on the first failure. Each Match call
// produces a fresh Attempt carrying the score, a diagnostic trail, the
// raw captures, and (on success) the resolved parameter map, so the
// same Route can be evaluated concurrently from any number of
// goroutines.
//
// Ordinary non-matches are values, not errors: the surrounding
// dispatcher inspects the Attempt to rank near-misses and build
// diagnostics. Configuration faults — a malformed template, an invalid
// constraint fragment — fail Build with a hard error instead.
package route
