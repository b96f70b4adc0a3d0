package graph

import "container/heap"

// nodeHeap is a min-heap of NodeIndex, giving computeVisitOrder a
// deterministic (ascending) tie-break among nodes of equal depth.
type nodeHeap []NodeIndex

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)         { *h = append(*h, x.(NodeIndex)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]

	return v
}

// computeVisitOrder runs Kahn's algorithm over the store's live nodes and
// edges, breaking ties between simultaneously-ready nodes by ascending
// NodeIndex so renders are reproducible.
//
// Panics if the graph contains a cycle: the façade is responsible for
// keeping the DAG invariant intact, so reaching that state here is a bug
// in the caller, not a condition callers should branch on.
func computeVisitOrder[S Sample](s *store[S]) []NodeIndex {
	indegree := make(map[NodeIndex]int, s.nodeCount)

	for idx := range s.nodes {
		ni := NodeIndex(idx)
		if !s.isAliveNode(ni) {
			continue
		}

		indegree[ni] = len(s.nodes[ni].in)
	}

	ready := make(nodeHeap, 0, len(indegree))
	for idx, d := range indegree {
		if d == 0 {
			ready = append(ready, idx)
		}
	}

	heap.Init(&ready)

	order := make([]NodeIndex, 0, len(indegree))

	for ready.Len() > 0 {
		idx := heap.Pop(&ready).(NodeIndex)
		order = append(order, idx)

		w := s.children(idx)
		for {
			_, dst, ok := w.Next()
			if !ok {
				break
			}

			indegree[dst]--
			if indegree[dst] == 0 {
				heap.Push(&ready, dst)
			}
		}
	}

	if len(order) != len(indegree) {
		panic("graph: visit order computed on a cyclic graph")
	}

	return order
}

// indexOf returns the position of idx within order, or -1 if absent.
func indexOf(order []NodeIndex, idx NodeIndex) int {
	for i, v := range order {
		if v == idx {
			return i
		}
	}

	return -1
}
