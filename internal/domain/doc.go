// Package domain defines the core model types, closed enumerations, and
// repository interfaces shared across the feedback analytics engine.
// It has no dependencies on adapters or the HTTP layer.
package domain
