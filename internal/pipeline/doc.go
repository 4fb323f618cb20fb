// Package pipeline turns a validated configuration into finished jobs:
// Resolve finds the source files, Dispatcher runs one conversion per file
// on a bounded worker pool and reports each result as it arrives, and Run
// ties the two together for the CLI.
package pipeline
