package paging

// FIFOReplacer evicts frames in the order they were filled. Hits do not
// reorder the queue.
type FIFOReplacer struct {
	queue []int // frame indices, oldest fill first
}

// NewFIFOReplacer creates a new FIFO replacer
func NewFIFOReplacer(capacity int) *FIFOReplacer {
	return &FIFOReplacer{
		queue: make([]int, 0, capacity),
	}
}

// Victim pops the oldest filled frame
func (f *FIFOReplacer) Victim(view FrameView, accessed PageID, refs []PageID, lookahead int) int {
	if len(f.queue) == 0 {
		return -1
	}

	victim := f.queue[0]
	f.queue = f.queue[1:]

	// Drop stale copies of the victim so it is queued once when refilled
	kept := f.queue[:0]
	for _, frame := range f.queue {
		if frame != victim {
			kept = append(kept, frame)
		}
	}
	f.queue = kept

	return victim
}

// RecordAccess queues the frame on fills
func (f *FIFOReplacer) RecordAccess(frame int, pageID PageID, kind AccessKind) {
	if kind == AccessFill {
		f.queue = append(f.queue, frame)
	}
}

// Reset empties the queue
func (f *FIFOReplacer) Reset() {
	f.queue = f.queue[:0]
}

func (f *FIFOReplacer) Algorithm() Algorithm {
	return FIFO
}

// Len returns the number of queued frames
func (f *FIFOReplacer) Len() int {
	return len(f.queue)
}
