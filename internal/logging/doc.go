// Package logging provides implementations of the datapackage.Logger
// interface.
//
//   - ConsoleLogger writes messages to stderr, or another writer.
//   - NullLogger discards everything and is the library default.
//
// Both are safe for concurrent use.
package logging
