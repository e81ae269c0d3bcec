package util

import "slices"

// A Set represents a set of strings.
// The zero value represents an empty set.
type Set struct {
	elems []string // invariant: sorted
}

// NewSet returns a Set that contains all of elems
// but no other elements.
func NewSet(elems ...string) (set Set) {
	for _, e := range elems {
		set.Add(e)
	}
	return
}

// Add adds e to set.
func (set *Set) Add(e string) {
	i, found := slices.BinarySearch(set.elems, e)
	if found {
		return
	}
	set.elems = slices.Insert(set.elems, i, e)
}

// Contains reports whether e is an element of set.
func (set Set) Contains(e string) bool {
	_, found := slices.BinarySearch(set.elems, e)
	return found
}

// ToSortedSlice returns a slice of set's elements sorted in lexicographical
// order.
func (set Set) ToSortedSlice() []string {
	return slices.Clone(set.elems)
}
