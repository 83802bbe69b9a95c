// Package output renders composition results for people and for machines.
// JSON and YAML carry the flat-config shape; text is a styled summary when
// the writer is a color terminal and plain otherwise.
package output
