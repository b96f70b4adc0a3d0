package graph

import "fmt"

// NodeIndex is a stable handle to a node. Indices remain valid from the
// AddNode call that produced them until the matching RemoveNode call;
// removal never shifts other live indices.
type NodeIndex int

// EdgeIndex is a stable handle to an edge (Connection), with the same
// stability contract as NodeIndex.
type EdgeIndex int

const invalidIndex = -1

// errSameIndexMsg is the panic value indexTwiceMut raises for a == b.
const errSameIndexMsg = "graph: index_twice_mut requires a != b"

type nodeSlot[S Sample] struct {
	alive bool
	data  Node[S]
	in    []EdgeIndex
	out   []EdgeIndex
}

type edgeSlot[S Sample] struct {
	alive bool
	src   NodeIndex
	dst   NodeIndex
	conn  Connection[S]
}

// store owns the node and edge arenas. Removed slots are tombstoned and
// their index pushed onto a free list for later reuse by a *new*,
// logically unrelated addNode/addEdge call.
type store[S Sample] struct {
	nodes     []nodeSlot[S]
	freeNodes []NodeIndex

	edges     []edgeSlot[S]
	freeEdges []EdgeIndex

	nodeCount int
	edgeCount int
}

func newStore[S Sample](nodeCap, edgeCap int) *store[S] {
	return &store[S]{
		nodes: make([]nodeSlot[S], 0, nodeCap),
		edges: make([]edgeSlot[S], 0, edgeCap),
	}
}

// addNode inserts data as a new node with no incident edges. O(1).
func (s *store[S]) addNode(data Node[S]) NodeIndex {
	if n := len(s.freeNodes); n > 0 {
		idx := s.freeNodes[n-1]
		s.freeNodes = s.freeNodes[:n-1]
		s.nodes[idx] = nodeSlot[S]{alive: true, data: data}
		s.nodeCount++

		return idx
	}

	idx := NodeIndex(len(s.nodes))
	s.nodes = append(s.nodes, nodeSlot[S]{alive: true, data: data})
	s.nodeCount++

	return idx
}

// removeNode removes idx and every edge incident to it, returning its data.
func (s *store[S]) removeNode(idx NodeIndex) (Node[S], bool) {
	if !s.isAliveNode(idx) {
		return nil, false
	}

	slot := s.nodes[idx]
	data := slot.data

	for _, e := range append([]EdgeIndex(nil), slot.in...) {
		s.removeEdge(e)
	}

	for _, e := range append([]EdgeIndex(nil), slot.out...) {
		s.removeEdge(e)
	}

	s.nodes[idx] = nodeSlot[S]{}
	s.freeNodes = append(s.freeNodes, idx)
	s.nodeCount--

	return data, true
}

// addEdge links src -> dst. It does not check acyclicity; the façade does.
func (s *store[S]) addEdge(src, dst NodeIndex) EdgeIndex {
	s.mustAliveNode(src)
	s.mustAliveNode(dst)

	var idx EdgeIndex
	if n := len(s.freeEdges); n > 0 {
		idx = s.freeEdges[n-1]
		s.freeEdges = s.freeEdges[:n-1]
		s.edges[idx] = edgeSlot[S]{alive: true, src: src, dst: dst}
	} else {
		idx = EdgeIndex(len(s.edges))
		s.edges = append(s.edges, edgeSlot[S]{alive: true, src: src, dst: dst})
	}

	s.nodes[src].out = append(s.nodes[src].out, idx)
	s.nodes[dst].in = append(s.nodes[dst].in, idx)
	s.edgeCount++

	return idx
}

// removeEdge unlinks and tombstones idx. Returns false if already removed.
func (s *store[S]) removeEdge(idx EdgeIndex) bool {
	if !s.isAliveEdge(idx) {
		return false
	}

	e := s.edges[idx]
	s.nodes[e.src].out = removeValue(s.nodes[e.src].out, idx)
	s.nodes[e.dst].in = removeValue(s.nodes[e.dst].in, idx)

	s.edges[idx] = edgeSlot[S]{}
	s.freeEdges = append(s.freeEdges, idx)
	s.edgeCount--

	return true
}

func removeValue(s []EdgeIndex, v EdgeIndex) []EdgeIndex {
	for i, e := range s {
		if e == v {
			return append(s[:i], s[i+1:]...)
		}
	}

	return s
}

// findEdge looks for an existing src -> dst edge. O(degree(src)).
func (s *store[S]) findEdge(src, dst NodeIndex) (EdgeIndex, bool) {
	if !s.isAliveNode(src) || !s.isAliveNode(dst) {
		return invalidIndex, false
	}

	for _, e := range s.nodes[src].out {
		if s.edges[e].dst == dst {
			return e, true
		}
	}

	return invalidIndex, false
}

func (s *store[S]) isAliveNode(idx NodeIndex) bool {
	return idx >= 0 && int(idx) < len(s.nodes) && s.nodes[idx].alive
}

func (s *store[S]) isAliveEdge(idx EdgeIndex) bool {
	return idx >= 0 && int(idx) < len(s.edges) && s.edges[idx].alive
}

func (s *store[S]) mustAliveNode(idx NodeIndex) {
	if !s.isAliveNode(idx) {
		panic(fmt.Sprintf("graph: no such node index %d", idx))
	}
}

func (s *store[S]) mustAliveEdge(idx EdgeIndex) {
	if !s.isAliveEdge(idx) {
		panic(fmt.Sprintf("graph: no such edge index %d", idx))
	}
}

// node returns the node at idx, panicking if idx is out of range or dead.
func (s *store[S]) node(idx NodeIndex) Node[S] {
	s.mustAliveNode(idx)
	return s.nodes[idx].data
}

// setNode replaces the data stored at idx, panicking if idx is out of range or dead.
func (s *store[S]) setNode(idx NodeIndex, data Node[S]) {
	s.mustAliveNode(idx)
	s.nodes[idx].data = data
}

// connection returns a pointer to the Connection buffer backing idx,
// panicking if idx is out of range or dead.
func (s *store[S]) connection(idx EdgeIndex) *Connection[S] {
	s.mustAliveEdge(idx)
	return &s.edges[idx].conn
}

// indexTwiceMut returns the nodes at a and b for simultaneous mutable use.
// Panics if a == b, mirroring the source engine's split-borrow primitive.
func (s *store[S]) indexTwiceMut(a, b NodeIndex) (Node[S], Node[S]) {
	if a == b {
		panic(errSameIndexMsg)
	}

	return s.node(a), s.node(b)
}

// ParentWalker iterates the incoming edges of a node. It holds only an
// index cursor into the store's own adjacency list, no copy of it, so
// constructing one never allocates. Render relies on this: the graph
// must not be structurally mutated while a walker is live, so there is
// nothing to snapshot against.
type ParentWalker[S Sample] struct {
	store *store[S]
	node  NodeIndex
	pos   int
}

// Next returns the next live incoming edge and its source node, or false
// once exhausted.
func (w *ParentWalker[S]) Next() (EdgeIndex, NodeIndex, bool) {
	edges := w.store.nodes[w.node].in
	for w.pos < len(edges) {
		e := edges[w.pos]
		w.pos++

		if !w.store.isAliveEdge(e) {
			continue
		}

		return e, w.store.edges[e].src, true
	}

	return invalidIndex, invalidIndex, false
}

// ChildWalker iterates the outgoing edges of a node, symmetric to ParentWalker.
type ChildWalker[S Sample] struct {
	store *store[S]
	node  NodeIndex
	pos   int
}

// Next returns the next live outgoing edge and its destination node, or
// false once exhausted.
func (w *ChildWalker[S]) Next() (EdgeIndex, NodeIndex, bool) {
	edges := w.store.nodes[w.node].out
	for w.pos < len(edges) {
		e := edges[w.pos]
		w.pos++

		if !w.store.isAliveEdge(e) {
			continue
		}

		return e, w.store.edges[e].dst, true
	}

	return invalidIndex, invalidIndex, false
}

// parents returns a cursor over idx's incoming edges. It does not allocate:
// the returned value is sized to be kept on the stack by its caller.
func (s *store[S]) parents(idx NodeIndex) ParentWalker[S] {
	s.mustAliveNode(idx)
	return ParentWalker[S]{store: s, node: idx}
}

// children returns a cursor over idx's outgoing edges, symmetric to parents.
func (s *store[S]) children(idx NodeIndex) ChildWalker[S] {
	s.mustAliveNode(idx)
	return ChildWalker[S]{store: s, node: idx}
}
