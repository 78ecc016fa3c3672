// Package index provides the in-memory lookup structures of the job search
// engine: a prefix trie over titles and exact-key attribute indexes. All of
// them map keys to sets of record ids and are read-only once built.
package index

import "sort"

// IDSet is a set of record ids.
type IDSet map[int]struct{}

func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Range returns the set {0, ..., n-1}.
func Range(n int) IDSet {
	s := make(IDSet, n)
	for i := 0; i < n; i++ {
		s[i] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Intersect returns the ids present in both sets. It walks the smaller set.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(IDSet, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// UnionInto adds every id of other to s.
func (s IDSet) UnionInto(other IDSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
