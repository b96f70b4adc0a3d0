package graph

// renderPass walks order, stopping once it has rendered target. It reuses
// output as the working buffer for every node in turn: once a node's
// outgoing edges have been published (step 7), output is overwritten from
// scratch for the next node, so no per-node storage beyond the
// Connection buffers themselves is required.
func (g *Graph[S]) renderPass(order []NodeIndex, target NodeIndex, output []S, sampleHz float64) {
	n := len(output)
	g.ensureScratch(n)

	dryBuf := g.dryBuf[:n]
	blendBuf := g.blendBuf[:n]

	for _, idx := range order {
		Equilibrium(output)
		Equilibrium(dryBuf)

		parents := g.store.parents(idx)
		for {
			e, _, ok := parents.Next()
			if !ok {
				break
			}

			AddFrame(output, g.store.connection(e).Samples())
		}

		copy(dryBuf, output)

		node := g.store.node(idx)
		node.Render(output, sampleHz)

		dry, wet := dryWetOf(node)
		MulAmp(output, output, wet)
		MulAmp(blendBuf, dryBuf, dry)
		AddFrame(output, blendBuf)

		if idx == target {
			return
		}

		children := g.store.children(idx)
		for {
			e, _, ok := children.Next()
			if !ok {
				break
			}

			g.store.connection(e).publish(output)
		}
	}
}

// RenderTo renders the graph to output, stopping at node idx. Panics if
// idx does not refer to a live node.
func (g *Graph[S]) RenderTo(idx NodeIndex, output []S, sampleHz float64) {
	g.store.mustAliveNode(idx)

	if len(output) == 0 {
		return
	}

	g.renderPass(g.visitOrder, idx, output, sampleHz)
}

// Render renders to the master node if one is set, otherwise to the
// natural sink: the last node in visit order with no outgoing edges.
// Produces equilibrium if no such node exists (an empty graph).
func (g *Graph[S]) Render(output []S, sampleHz float64) {
	if len(output) == 0 {
		return
	}

	idx, ok := g.defaultTarget()
	if !ok {
		Equilibrium(output)
		return
	}

	g.renderPass(g.visitOrder, idx, output, sampleHz)
}

func (g *Graph[S]) defaultTarget() (NodeIndex, bool) {
	if g.master != invalidIndex && g.store.isAliveNode(g.master) {
		return g.master, true
	}

	for i := len(g.visitOrder) - 1; i >= 0; i-- {
		idx := g.visitOrder[i]
		if len(g.store.nodes[idx].out) == 0 {
			return idx, true
		}
	}

	return invalidIndex, false
}

func (g *Graph[S]) ensureScratch(n int) {
	g.dryBuf = growTo(g.dryBuf, n)
	g.blendBuf = growTo(g.blendBuf, n)
}

func growTo[S Sample](buf []S, n int) []S {
	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]S, n)
}
