package paging

// OPTReplacer implements Belady's optimal policy. It keeps no state and
// decides from the remainder of the reference sequence alone.
type OPTReplacer struct{}

// NewOPTReplacer creates a new optimal replacer
func NewOPTReplacer() *OPTReplacer {
	return &OPTReplacer{}
}

// Victim scans occupied frames in ascending order. The first page that is
// never referenced again is returned at once; otherwise the page whose next
// use is strictly farthest away, first found on ties.
func (o *OPTReplacer) Victim(view FrameView, accessed PageID, refs []PageID, lookahead int) int {
	victim := -1
	farthest := -1
	for i := 0; i < view.Len(); i++ {
		pageID, ok := view.Page(i)
		if !ok {
			continue
		}

		next := nextUse(pageID, refs, lookahead)
		if next == -1 {
			return i
		}
		if next > farthest {
			victim, farthest = i, next
		}
	}
	return victim
}

// nextUse returns the first position >= from holding pageID, or -1
func nextUse(pageID PageID, refs []PageID, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(refs); i++ {
		if refs[i] == pageID {
			return i
		}
	}
	return -1
}

func (o *OPTReplacer) RecordAccess(frame int, pageID PageID, kind AccessKind) {}

func (o *OPTReplacer) Reset() {}

func (o *OPTReplacer) Algorithm() Algorithm {
	return OPT
}
