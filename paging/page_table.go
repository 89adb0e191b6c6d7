package paging

// PageID identifies a virtual page within the configured universe
type PageID int

// NoPage marks an empty frame slot, or the absence of an evicted page
const NoPage PageID = -1

// Page is the residency record of one virtual page
type Page struct {
	ID         PageID
	InRAM      bool
	FrameIndex int // -1 while not resident
}

// PageTable maps every page id in [0, size) to its residency record.
// Records are created up front and never removed; only the frame store
// toggles their residency.
type PageTable struct {
	pages []Page
}

// NewPageTable creates a page table for the universe [0, size)
func NewPageTable(size int) (*PageTable, error) {
	if size <= 0 {
		return nil, ErrInvalidPageCount("NewPageTable", size)
	}

	pages := make([]Page, size)
	for i := range pages {
		pages[i] = Page{ID: PageID(i), FrameIndex: -1}
	}

	return &PageTable{pages: pages}, nil
}

// Page returns a copy of the residency record for id
func (pt *PageTable) Page(id PageID) (Page, error) {
	if !pt.contains(id) {
		return Page{}, ErrPageIDOutOfRange("PageTable.Page", id, len(pt.pages))
	}
	return pt.pages[id], nil
}

// Size returns the size of the page universe
func (pt *PageTable) Size() int {
	return len(pt.pages)
}

// ResidentCount returns the number of pages currently held by a frame
func (pt *PageTable) ResidentCount() int {
	count := 0
	for i := range pt.pages {
		if pt.pages[i].InRAM {
			count++
		}
	}
	return count
}

func (pt *PageTable) contains(id PageID) bool {
	return id >= 0 && int(id) < len(pt.pages)
}

func (pt *PageTable) markResident(id PageID, frame int) {
	pt.pages[id].InRAM = true
	pt.pages[id].FrameIndex = frame
}

func (pt *PageTable) markEvicted(id PageID) {
	pt.pages[id].InRAM = false
	pt.pages[id].FrameIndex = -1
}

func (pt *PageTable) reset() {
	for i := range pt.pages {
		pt.markEvicted(PageID(i))
	}
}
