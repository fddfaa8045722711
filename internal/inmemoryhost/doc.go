// Package inmemoryhost is the in-process host.Host implementation. It keeps
// registered classes in insertion order so tests and teardown can assert on
// exact registration sequences.
package inmemoryhost
