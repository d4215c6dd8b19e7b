// Package helper provides testing utilities for the wikidb PostgreSQL engine.
//
// This package contains shared testing infrastructure including spies for the
// wikidb observability interfaces, used to capture and validate log output and
// metrics during tests across the engine test suite.
package helper
