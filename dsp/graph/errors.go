package graph

import "errors"

// WouldCycle is returned by AddConnection/AddConnections when the
// candidate edge(s) would violate the DAG invariant. The graph is left
// unchanged. It is the only error the package returns: indexing with a
// non-existent NodeIndex/EdgeIndex panics instead (see store.go).
var WouldCycle = errors.New("graph: connection would introduce a cycle")
