// Package storage persists documents behind a small Store interface.
//
// The editor treats files as opaque text keyed by a slash-separated
// relative path. Local is the filesystem implementation; other backends
// (a git repository, a remote API) can satisfy the same interface.
package storage
