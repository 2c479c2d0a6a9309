/*
Package runtime implements the navigation core: the state repository, the
joint table (reverse-adjacency state graph), the path finder and the
transition executor.

Graph mutation is expected to happen during a quiescent configuration phase.
The joint table still guards its maps with a reader-writer lock so in-flight
path searches observe a consistent snapshot if a caller rebuilds concurrently.
*/
package runtime
