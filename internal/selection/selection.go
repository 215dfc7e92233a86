// Package selection tracks the cursor (primary index) and the multi-select
// tags over the current listing, plus the scroll window that keeps the cursor
// visible.
package selection

import (
	"sort"

	"github.com/LFroesch/odyssey/internal/errors"
)

// Selection is positional: indices refer to the listing it was last
// reloaded with. Reload must be called whenever the listing is rebuilt.
type Selection struct {
	primary int
	tags    map[int]struct{}
	offset  int
	height  int
	count   int
}

// New creates an empty selection with a visible window of height rows.
func New(height int) *Selection {
	s := &Selection{tags: make(map[int]struct{})}
	s.Resize(height)
	return s
}

// Reload adopts a new listing length. Tags are dropped because positions no
// longer name the same entries; the primary is clamped.
func (s *Selection) Reload(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	s.ClearTags()
	s.clamp()
	s.follow()
}

// Resize sets the number of visible rows.
func (s *Selection) Resize(height int) {
	if height < 1 {
		height = 1
	}
	s.height = height
	s.follow()
}

// Primary returns the cursor index.
func (s *Selection) Primary() int { return s.primary }

// Count returns the listing length the selection was reloaded with.
func (s *Selection) Count() int { return s.count }

// Offset returns the index of the first visible row.
func (s *Selection) Offset() int { return s.offset }

// Height returns the number of visible rows.
func (s *Selection) Height() int { return s.height }

// Move shifts the primary by delta, clamped to the listing.
func (s *Selection) Move(delta int) {
	s.primary += delta
	s.clamp()
	s.follow()
}

// Jump places the primary at index i (0-based), clamped to the listing.
func (s *Selection) Jump(i int) {
	s.primary = i
	s.clamp()
	s.follow()
}

// Set places the primary at the 1-based position n. Positions outside the
// listing are rejected and leave the primary unchanged.
func (s *Selection) Set(n int) error {
	if n < 1 || n > s.count {
		return errors.New(errors.OutOfBounds, "set", "", "\"%d\" is not in bounds", n)
	}
	s.Jump(n - 1)
	return nil
}

// ToggleTag tags the primary, or untags it when already tagged.
func (s *Selection) ToggleTag() {
	if s.count == 0 {
		return
	}
	if _, ok := s.tags[s.primary]; ok {
		delete(s.tags, s.primary)
		return
	}
	s.tags[s.primary] = struct{}{}
}

// Tag adds index i to the tags if it is inside the listing.
func (s *Selection) Tag(i int) {
	if i >= 0 && i < s.count {
		s.tags[i] = struct{}{}
	}
}

// Tagged reports whether index i is tagged.
func (s *Selection) Tagged(i int) bool {
	_, ok := s.tags[i]
	return ok
}

// HasTags reports whether any entry is tagged.
func (s *Selection) HasTags() bool { return len(s.tags) > 0 }

// ClearTags drops every tag.
func (s *Selection) ClearTags() {
	s.tags = make(map[int]struct{})
}

// Targets returns the tagged indices for multi-target commands: the primary
// first when it is tagged, then the rest in ascending order.
func (s *Selection) Targets() []int {
	targets := make([]int, 0, len(s.tags))
	for i := range s.tags {
		if i != s.primary {
			targets = append(targets, i)
		}
	}
	sort.Ints(targets)
	if s.Tagged(s.primary) {
		targets = append([]int{s.primary}, targets...)
	}
	return targets
}

func (s *Selection) clamp() {
	switch {
	case s.count == 0:
		s.primary = 0
	case s.primary < 0:
		s.primary = 0
	case s.primary > s.count-1:
		s.primary = s.count - 1
	}
}

// follow keeps the primary inside the window. Single steps scroll by one row;
// larger jumps snap the window to the primary.
func (s *Selection) follow() {
	if s.primary < s.offset {
		s.offset--
	} else if s.primary >= s.offset+s.height {
		s.offset++
	}

	if s.primary < s.offset {
		s.offset = s.primary
	}
	if s.primary >= s.offset+s.height {
		s.offset = s.primary - s.height + 1
	}

	maxOffset := s.count - s.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
