// Package board contains the task-board aggregate: the Board root, its
// Column and Card entities, the validated value objects that gate all input
// into the aggregate, and the domain events the aggregate buffers.
//
// The Board is the single consistency boundary. All mutations go through it,
// it enforces cross-column invariants (card ownership, board-type rules), and
// it is the only type allowed to record domain events. Events accumulate in
// an in-memory buffer and are drained by the application layer after a
// successful persist.
package board
