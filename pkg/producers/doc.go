// Package producers holds one fragment producer per supported domain. Each
// producer turns its domain options into an ordered list of fragments and
// registers itself from init().
//
// Producers are independent: they never look at other producers' output.
// Cross-domain facts, such as whether TypeScript is enabled, arrive as
// Flags. Rules are emitted under the plugins' upstream namespaces; the
// composer shortens them afterwards.
package producers
