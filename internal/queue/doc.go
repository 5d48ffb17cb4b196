// Package queue implements the ordered playback queue.
//
// # List
//
// [List] is a doubly linked list of [Node] values with O(1) append, O(n) positional lookup and O(n) move.
// Every operation is total: out-of-range indices and absent nodes are absorbed as no-ops (or, for
// [List.InsertBefore], as an append at the tail) instead of being reported as errors.
//
// A node records the list that owns it. Nodes owned by another list are ignored by [List.Remove] and
// [List.InsertBefore], so a node is never reachable from two lists at once. Removing a node clears its links.
//
// # Move
//
// [List.Move] removes the node at the source index and then resolves the destination index against the
// list as it is after the removal. The moved record therefore ends up at the destination index:
//
//	[A, B, C].Move(0, 2) => [B, C, A]
//	[A, B, C].Move(2, 0) => [C, A, B]
//	[A, B, C].Move(0, 1) => [B, A, C]
//
// # Queue
//
// [List] does no locking. [Queue] wraps a single list with a [sync.RWMutex]: mutations take the write
// lock, reads take the read lock and return copies. The server constructs exactly one [Queue] at startup
// and hands it to the HTTP layer.
package queue
