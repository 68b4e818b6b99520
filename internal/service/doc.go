// Package service orchestrates the application's use cases: it sequences
// loading, domain mutation, conflict checking, and persistence into uniform
// outcomes for the API layer.
package service
