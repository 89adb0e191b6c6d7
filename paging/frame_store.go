package paging

import (
	"golang.org/x/exp/slices"
)

// FrameView is a read-only view of the frame slots handed to a replacer
// while it selects a victim.
type FrameView struct {
	slots []PageID
}

// Len returns the number of frames
func (v FrameView) Len() int {
	return len(v.slots)
}

// Page returns the page held by frame i, and false if the frame is empty
func (v FrameView) Page(i int) (PageID, bool) {
	if i < 0 || i >= len(v.slots) || v.slots[i] == NoPage {
		return NoPage, false
	}
	return v.slots[i], true
}

// FrameStore owns the physical frames. It keeps the page table in agreement
// with the slots and delegates victim selection to its replacer.
type FrameStore struct {
	slots     []PageID
	used      int
	pageTable *PageTable
	replacer  Replacer
}

// NewFrameStore creates a store of frameCount empty frames
func NewFrameStore(frameCount int, pageTable *PageTable, replacer Replacer) (*FrameStore, error) {
	if frameCount <= 0 {
		return nil, ErrInvalidFrameCount("NewFrameStore", frameCount)
	}

	slots := make([]PageID, frameCount)
	for i := range slots {
		slots[i] = NoPage
	}

	return &FrameStore{
		slots:     slots,
		pageTable: pageTable,
		replacer:  replacer,
	}, nil
}

// Size returns the number of frames
func (fs *FrameStore) Size() int {
	return len(fs.slots)
}

// IsFull reports whether every frame is occupied
func (fs *FrameStore) IsFull() bool {
	return fs.used == len(fs.slots)
}

// View returns a read-only view of the slots
func (fs *FrameStore) View() FrameView {
	return FrameView{slots: fs.slots}
}

// Snapshot returns a copy of the slots, NoPage marking empty frames
func (fs *FrameStore) Snapshot() []PageID {
	return slices.Clone(fs.slots)
}

// Place loads pageID into a frame. A free frame is used when one exists,
// the lowest index first; otherwise the replacer picks a victim. next is the
// position in refs right after the access being served.
// Returns the frame used and the evicted page, NoPage if none was evicted.
func (fs *FrameStore) Place(pageID PageID, refs []PageID, next int) (int, PageID, error) {
	if !fs.pageTable.contains(pageID) {
		return -1, NoPage, ErrPageIDOutOfRange("FrameStore.Place", pageID, fs.pageTable.Size())
	}

	if !fs.IsFull() {
		frame := slices.Index(fs.slots, NoPage)
		fs.install(frame, pageID)
		fs.replacer.RecordAccess(frame, pageID, AccessFill)
		return frame, NoPage, nil
	}

	frame := fs.replacer.Victim(fs.View(), pageID, refs, next)
	if frame < 0 || frame >= len(fs.slots) || fs.slots[frame] == NoPage {
		return -1, NoPage, ErrVictimNotOccupied("FrameStore.Place", fs.replacer.Algorithm(), frame)
	}

	evicted := fs.slots[frame]
	fs.pageTable.markEvicted(evicted)
	fs.slots[frame] = NoPage
	fs.used--

	fs.install(frame, pageID)
	fs.replacer.RecordAccess(frame, pageID, AccessFill)

	return frame, evicted, nil
}

// NotifyHit tells the replacer that the page in frame was accessed again
func (fs *FrameStore) NotifyHit(frame int, pageID PageID) {
	fs.replacer.RecordAccess(frame, pageID, AccessHit)
}

func (fs *FrameStore) install(frame int, pageID PageID) {
	fs.slots[frame] = pageID
	fs.used++
	fs.pageTable.markResident(pageID, frame)
}

func (fs *FrameStore) reset() {
	for i := range fs.slots {
		fs.slots[i] = NoPage
	}
	fs.used = 0
	fs.pageTable.reset()
	fs.replacer.Reset()
}
