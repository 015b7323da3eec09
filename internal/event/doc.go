// Package event implements the publish/subscribe channel that connects
// the editing surface with the independently running settings surface.
//
// Topics are hierarchical dot-separated strings ("settings.changed",
// "session.tab.opened"). A subscription pattern may use "*" to match
// exactly one segment. Delivery is synchronous and at-most-once per
// emission; there is no replay or history. A handler that needs the
// past must keep its own state.
package event
