// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized mock implementations
// can be reused.
//
// Each mock exposes a function field per interface method; tests override
// only the methods they care about and the rest fall back to simple default
// behavior backed by in-memory state.
package mocks
