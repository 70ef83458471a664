// Package heuristic provides the deterministic, offline implementations
// of query analysis and match explanation. They are selected at provider
// construction when no generative credential is configured, and are the
// degradation target when the generative backend fails mid-request.
package heuristic
