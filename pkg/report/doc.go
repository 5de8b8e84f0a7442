// Package report compiles a capture record into a single-page inspection
// report. A Compiler builds a locale-aware Layout from the record and hands it
// to an Engine, which renders it fully in memory (HTML or PDF).
package report
