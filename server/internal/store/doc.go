// Package store caches computed dashboards in memory. It provides a
// thread-safe map keyed by filter set with TTL eviction, so repeated
// requests for the same filters reuse one computation until it expires or
// the dataset is reloaded.
package store
