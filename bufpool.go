package flow

import "sync"

// outflowPool reuses BufferOutflows for Marshal.
// This reduces GC pressure when messages of unknown size are encoded repeatedly.
var outflowPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common message sizes.
		return NewBufferOutflow(BUFFER_SIZE)
	},
}

// maxPooledSize keeps one oversized message from pinning a large buffer in the pool.
const maxPooledSize = 64 * 1024

func getOutflow() *BufferOutflow {
	w := outflowPool.Get().(*BufferOutflow)
	w.Reset()
	return w
}

func putOutflow(w *BufferOutflow) {
	if cap(w.B) > maxPooledSize {
		return
	}
	outflowPool.Put(w)
}
