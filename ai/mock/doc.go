// Package mock provides test doubles for the ai service interfaces.
// The default embedder produces deterministic FNV-seeded unit vectors,
// so similarity-dependent tests are reproducible without any external
// service.
package mock
