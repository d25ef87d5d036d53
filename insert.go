package miditrack

import "sort"

// Insert inserts v into s, which must already be sorted ascending by key, and
// returns the updated slice. The insertion point is found with a binary search
// over key(s[i]) <= key(v), so a value whose key equals existing keys goes
// after all of them: values with equal keys keep the order in which they were
// inserted. Calling Insert on an unsorted slice does not panic, but the
// resulting order is unspecified; use InsertChecked when the input cannot be
// trusted.
func Insert[S ~[]E, E any](s S, v E, key func(E) int) S {
	k := key(v)
	i := sort.Search(len(s), func(i int) bool { return key(s[i]) > k })
	var zero E
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// InsertChecked is like Insert, but first verifies that s is sorted by key. If
// it is not, s is returned unmodified together with a *PreconditionError
// pointing at the first element that is out of order.
func InsertChecked[S ~[]E, E any](s S, v E, key func(E) int) (S, error) {
	if i := unsortedIndex(s, key); i >= 0 {
		return s, &PreconditionError{Index: i}
	}
	return Insert(s, v, key), nil
}

// unsortedIndex returns the index of the first element whose key is smaller
// than the key of its predecessor, or -1 if s is sorted.
func unsortedIndex[S ~[]E, E any](s S, key func(E) int) int {
	for i := 1; i < len(s); i++ {
		if key(s[i]) < key(s[i-1]) {
			return i
		}
	}
	return -1
}
