package main

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sibexico/PageSim/paging"
)

// ParseReferenceString reads page ids separated by whitespace or commas,
// e.g. "7 0 1 2" or "7,0,1,2".
func ParseReferenceString(s string) ([]paging.PageID, error) {
	const op = "ParseReferenceString"

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return nil, paging.ErrEmptySequence(op)
	}

	refs := make([]paging.PageID, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, paging.ErrBadReference(op, token, err)
		}
		if id < 0 {
			return nil, paging.ErrBadReference(op, token, nil)
		}
		refs = append(refs, paging.PageID(id))
	}
	return refs, nil
}
