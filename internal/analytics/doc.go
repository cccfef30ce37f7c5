// Package analytics implements the feedback analytics engine: ingestion
// through the moderation gate and sentiment classifier, keyword tracking,
// idempotent daily rollups, and smoothing-based forecasts composed into
// windowed insight reports.
//
// Every operation is synchronous from the caller's point of view. The
// package holds no shared mutable state of its own; persistence and its
// transaction boundary belong to the repository implementations.
package analytics
