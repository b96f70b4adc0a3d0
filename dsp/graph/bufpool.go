package graph

import "sync"

// BufferPool provides sync.Pool-based reuse of render output buffers, for
// hosts juggling several Graphs (or repeated short-lived render calls)
// that want to avoid per-callback allocation without hand-rolling their
// own free list.
type BufferPool[S Sample] struct {
	pool sync.Pool
}

// NewBufferPool returns a BufferPool ready for use.
func NewBufferPool[S Sample]() *BufferPool[S] {
	return &BufferPool[S]{
		pool: sync.Pool{
			New: func() any {
				buf := make([]S, 0)
				return &buf
			},
		},
	}
}

// Get returns a buffer of exactly n samples, zeroed. Callers must return
// it via Put when done.
func (p *BufferPool[S]) Get(n int) []S {
	ptr := p.pool.Get().(*[]S)
	buf := growTo(*ptr, n)
	Equilibrium(buf)

	return buf
}

// Put returns buf to the pool for reuse. The caller must not use buf
// after calling Put.
func (p *BufferPool[S]) Put(buf []S) {
	if buf == nil {
		return
	}

	p.pool.Put(&buf)
}
