// Package integration holds cross-package tests for the Quill language.
//
// Package: integration
// Title: Quill Integration Tests
// Description: Tests that drive whole programs through the engine and check
// that lexer, parser, evaluator, registry and program cache
// agree on behavior, errors and performance.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial integration test suite
// - 2025-02-14 v0.2.0: Rewritten around the Quill engine
//
// Test Categories:
//
// Language Tests (language_integration_test.go):
// - Complete programs with functions, recursion, blocks and printing
// - Canonical printing reproduces the same tree
// - Host natives called from programs
//
// Error Tests (error_integration_test.go):
// - Error codes and positions survive every layer
// - Scope dumps on evaluation errors
// - Exit codes derived from error codes
//
// Performance Tests (performance_test.go):
// - Lexing, parsing and evaluation benchmarks
// - Engine runs with and without the program cache
package integration
