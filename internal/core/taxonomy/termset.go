// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "slices"

// TermSet is an unordered set of term ids.
type TermSet map[int]struct{}

// NewTermSet builds a set from ids, dropping duplicates.
func NewTermSet(ids ...int) TermSet {
	set := make(TermSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add inserts id and reports whether it was new.
func (set TermSet) Add(id int) bool {
	if _, found := set[id]; found {
		return false
	}
	set[id] = struct{}{}
	return true
}

// Has reports membership.
func (set TermSet) Has(id int) bool {
	_, found := set[id]
	return found
}

// Len returns the number of ids in the set.
func (set TermSet) Len() int { return len(set) }

// Sorted returns the ids in ascending order.
func (set TermSet) Sorted() []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
