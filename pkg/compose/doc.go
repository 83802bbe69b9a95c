// Package compose turns an options object into the final ordered fragment
// list.
//
// Composition has two halves. BuildPlan resolves which domains are enabled,
// in a fixed order, and the cross-domain flags each producer sees. Compose
// runs every planned producer concurrently, then linearizes their output by
// plan position so the result never depends on scheduling. The fused
// top-level fragment and user fragments follow, then namespace renaming,
// and the terminal disables fragment comes last.
package compose
