package graph

import "testing"

func TestStoreAddRemoveNodeReusesTombstone(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)

	a := s.addNode(&constNode{value: 1})
	if _, ok := s.removeNode(a); !ok {
		t.Fatal("removeNode reported failure for a live node")
	}

	b := s.addNode(&constNode{value: 2})
	if b != a {
		t.Errorf("expected tombstoned index %d to be reused, got %d", a, b)
	}

	if !s.isAliveNode(b) {
		t.Error("reused index is not reported alive")
	}
}

func TestStoreRemoveNodeDetachesIncidentEdges(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})
	b := s.addNode(passthroughNode{})
	c := s.addNode(passthroughNode{})

	s.addEdge(a, b)
	s.addEdge(b, c)

	if _, ok := s.removeNode(b); !ok {
		t.Fatal("removeNode reported failure")
	}

	if s.edgeCount != 0 {
		t.Errorf("expected both incident edges gone, got edgeCount=%d", s.edgeCount)
	}

	if len(s.nodes[a].out) != 0 {
		t.Errorf("expected a's outgoing edges cleared, got %v", s.nodes[a].out)
	}

	if len(s.nodes[c].in) != 0 {
		t.Errorf("expected c's incoming edges cleared, got %v", s.nodes[c].in)
	}
}

func TestStoreFindEdge(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})
	b := s.addNode(passthroughNode{})

	if _, ok := s.findEdge(a, b); ok {
		t.Fatal("findEdge found a nonexistent edge")
	}

	want := s.addEdge(a, b)

	got, ok := s.findEdge(a, b)
	if !ok {
		t.Fatal("findEdge did not find the edge just added")
	}

	if got != want {
		t.Errorf("findEdge returned %d, want %d", got, want)
	}

	if _, ok := s.findEdge(b, a); ok {
		t.Error("findEdge found an edge in the wrong direction")
	}
}

func TestStoreIndexTwiceMutPanicsOnEqualIndex(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})

	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()

	s.indexTwiceMut(a, a)
}

func TestStoreIndexTwiceMutReturnsBothNodes(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})
	b := s.addNode(&constNode{value: 2})

	na, nb := s.indexTwiceMut(a, b)

	if na.(*constNode).value != 1 || nb.(*constNode).value != 2 {
		t.Errorf("unexpected node data: %v, %v", na, nb)
	}
}

func TestStoreParentChildWalkersSkipTombstonedEdges(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})
	b := s.addNode(&constNode{value: 2})
	c := s.addNode(passthroughNode{})

	e1 := s.addEdge(a, c)
	s.addEdge(b, c)
	s.removeEdge(e1)

	w := s.parents(c)

	var srcs []NodeIndex
	for {
		_, src, ok := w.Next()
		if !ok {
			break
		}

		srcs = append(srcs, src)
	}

	if len(srcs) != 1 || srcs[0] != b {
		t.Errorf("expected parents [%d], got %v", b, srcs)
	}
}

func TestStoreWalkerIsACursorNotACopy(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})
	b := s.addNode(passthroughNode{})
	c := s.addNode(passthroughNode{})

	s.addEdge(a, b)

	w := s.children(a)

	// The walker holds only a cursor into the store's own adjacency
	// list, so an edge added after the walker was built is still visible
	// to it: there is nothing to snapshot against.
	s.addEdge(a, c)

	var count int
	for {
		_, _, ok := w.Next()
		if !ok {
			break
		}

		count++
	}

	if count != 2 {
		t.Errorf("expected walker to see both children, got %d", count)
	}
}

func TestStoreMustAliveNodePanicsOnDeadIndex(t *testing.T) {
	t.Parallel()

	s := newStore[float64](0, 0)
	a := s.addNode(&constNode{value: 1})
	s.removeNode(a)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on a dead index")
		}
	}()

	s.mustAliveNode(a)
}
