// Package types defines the data model shared by every stage of the
// composition pipeline: fragments, ordered rule settings, rule configs and
// the plugin, parser and processor handles fragments refer to.
package types
