package graph

// Connection is the scratch buffer carried by one directed edge. It holds
// the last fully rendered output of the edge's source node, published
// during the last render pass. Its length is either 0 or equal to the
// last render's buffer length.
type Connection[S Sample] struct {
	buf []S
}

// Len reports the connection buffer's current length.
func (c *Connection[S]) Len() int {
	return len(c.buf)
}

// Samples exposes the raw backing buffer, valid until the next resize.
func (c *Connection[S]) Samples() []S {
	return c.buf
}

// ensureLen resizes buf to exactly n samples, reusing capacity when
// possible, zero-filling any newly exposed tail. Buffers grow and
// truncate on demand; PrepareBuffers pre-warms them.
func (c *Connection[S]) ensureLen(n int) {
	if n <= 0 {
		c.buf = c.buf[:0]
		return
	}

	if cap(c.buf) >= n {
		prev := len(c.buf)
		c.buf = c.buf[:n]

		if n > prev {
			Equilibrium(c.buf[prev:n])
		}

		return
	}

	c.buf = make([]S, n)
}

// publish copies src into the connection buffer, resizing first if needed.
func (c *Connection[S]) publish(src []S) {
	c.ensureLen(len(src))
	copy(c.buf, src)
}
