package paging

// recencyClock stamps frames with a logical time taken from a counter that
// advances on every access. Frames never stamped read as -1.
type recencyClock struct {
	stamps []int64
	now    int64
}

func newRecencyClock(capacity int) recencyClock {
	c := recencyClock{stamps: make([]int64, capacity)}
	c.clear()
	return c
}

func (c *recencyClock) touch(frame int) {
	for frame >= len(c.stamps) {
		c.stamps = append(c.stamps, -1)
	}
	c.stamps[frame] = c.now
	c.now++
}

func (c *recencyClock) stamp(frame int) int64 {
	if frame < len(c.stamps) {
		return c.stamps[frame]
	}
	return -1
}

func (c *recencyClock) clear() {
	for i := range c.stamps {
		c.stamps[i] = -1
	}
	c.now = 0
}

// LRUReplacer implements LRU (Least Recently Used) replacement policy
type LRUReplacer struct {
	clock recencyClock
}

// NewLRUReplacer creates a new LRU replacer
func NewLRUReplacer(capacity int) *LRUReplacer {
	return &LRUReplacer{clock: newRecencyClock(capacity)}
}

// Victim returns the occupied frame with the oldest stamp. On equal stamps
// the lowest frame index wins.
func (lru *LRUReplacer) Victim(view FrameView, accessed PageID, refs []PageID, lookahead int) int {
	victim := -1
	var oldest int64
	for i := 0; i < view.Len(); i++ {
		if _, ok := view.Page(i); !ok {
			continue
		}
		if stamp := lru.clock.stamp(i); victim == -1 || stamp < oldest {
			victim, oldest = i, stamp
		}
	}
	return victim
}

// RecordAccess stamps the frame with the current time
func (lru *LRUReplacer) RecordAccess(frame int, pageID PageID, kind AccessKind) {
	lru.clock.touch(frame)
}

// Reset forgets all stamps and rewinds the clock
func (lru *LRUReplacer) Reset() {
	lru.clock.clear()
}

func (lru *LRUReplacer) Algorithm() Algorithm {
	return LRU
}
