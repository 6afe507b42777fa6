// Package set provides an immutable ordered set.
package set

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is an immutable set of ordered values.
type Set[T cmp.Ordered] struct {
	items map[T]struct{}
}

// New constructs a new Set.
func New[T cmp.Ordered](items ...T) *Set[T] {
	s := &Set[T]{items: make(map[T]struct{}, len(items))}
	for _, item := range items {
		s.items[item] = struct{}{}
	}
	return s
}

// With returns a new Set with the provided items added. When every item is
// already present, With returns the receiver.
func (s *Set[T]) With(items ...T) *Set[T] {
	if s.ContainsAll(items...) {
		return s
	}
	m := make(map[T]struct{}, len(s.items)+len(items))
	for item := range s.items {
		m[item] = struct{}{}
	}
	for _, item := range items {
		m[item] = struct{}{}
	}
	return &Set[T]{items: m}
}

// Contains checks if the given item is in the set.
func (s *Set[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

// ContainsAll checks if every given item is in the set.
func (s *Set[T]) ContainsAll(items ...T) bool {
	for _, item := range items {
		if !s.Contains(item) {
			return false
		}
	}
	return true
}

// Len returns the number of items in the set.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Items returns the items in the set as a sorted slice. It's safe for the
// caller to mutate the returned slice.
func (s *Set[T]) Items() []T {
	items := make([]T, 0, len(s.items))
	for item := range s.items {
		items = append(items, item)
	}
	slices.Sort(items)
	return items
}

// String implements Stringer.
func (s *Set[T]) String() string {
	var b strings.Builder
	b.WriteRune('{')
	for i, item := range s.Items() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, item)
	}
	b.WriteRune('}')
	return b.String()
}
