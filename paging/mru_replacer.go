package paging

// MRUReplacer implements MRU (Most Recently Used) replacement: the frame
// touched last is the first to go.
type MRUReplacer struct {
	clock recencyClock
}

// NewMRUReplacer creates a new MRU replacer
func NewMRUReplacer(capacity int) *MRUReplacer {
	return &MRUReplacer{clock: newRecencyClock(capacity)}
}

// Victim returns the occupied frame with the newest stamp. On equal stamps
// the lowest frame index wins.
func (mru *MRUReplacer) Victim(view FrameView, accessed PageID, refs []PageID, lookahead int) int {
	victim := -1
	var newest int64
	for i := 0; i < view.Len(); i++ {
		if _, ok := view.Page(i); !ok {
			continue
		}
		if stamp := mru.clock.stamp(i); victim == -1 || stamp > newest {
			victim, newest = i, stamp
		}
	}
	return victim
}

// RecordAccess stamps the frame with the current time
func (mru *MRUReplacer) RecordAccess(frame int, pageID PageID, kind AccessKind) {
	mru.clock.touch(frame)
}

// Reset forgets all stamps and rewinds the clock
func (mru *MRUReplacer) Reset() {
	mru.clock.clear()
}

func (mru *MRUReplacer) Algorithm() Algorithm {
	return MRU
}
