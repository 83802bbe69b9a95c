// Package registry provides a generic, thread-safe registry that remembers
// registration order. Fragment producers register themselves into one from
// init() functions, and List reports names in the order they were added.
package registry
