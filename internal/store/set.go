package store

// Set is an unordered collection of unique string members (spec.md §3
// "Set"). Not thread-safe; concurrency is managed by the caller.
type Set struct {
	members map[string]struct{}
}

// NewSet creates a new empty Set.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add adds members. Returns the number actually added (not already
// present).
func (s *Set) Add(members ...string) int {
	added := 0
	for _, m := range members {
		if _, exists := s.members[m]; !exists {
			s.members[m] = struct{}{}
			added++
		}
	}
	return added
}

// Rem removes members. Returns the number actually removed.
func (s *Set) Rem(members ...string) int {
	removed := 0
	for _, m := range members {
		if _, exists := s.members[m]; exists {
			delete(s.members, m)
			removed++
		}
	}
	return removed
}

// IsMember reports whether member is in the set.
func (s *Set) IsMember(member string) bool {
	_, exists := s.members[member]
	return exists
}

// Card returns the number of members.
func (s *Set) Card() int {
	return len(s.members)
}

// Members returns all members, in unspecified order.
func (s *Set) Members() []string {
	result := make([]string, 0, len(s.members))
	for m := range s.members {
		result = append(result, m)
	}
	return result
}

// Inter returns the members present in both s and other.
func (s *Set) Inter(other *Set) []string {
	result := make([]string, 0)
	for m := range s.members {
		if other.IsMember(m) {
			result = append(result, m)
		}
	}
	return result
}

// Union returns members of the union of s and other, following the
// source's two-pass walk (spec.md §4.4/§9): it emits members of s not
// present in other, then emits every member of other unconditionally.
// A member present in both sets is skipped by the first pass, so it is
// emitted once, from other's side; no member appears twice.
func (s *Set) Union(other *Set) []string {
	result := make([]string, 0, len(s.members)+len(other.members))
	for m := range s.members {
		if !other.IsMember(m) {
			result = append(result, m)
		}
	}
	for m := range other.members {
		result = append(result, m)
	}
	return result
}

// Diff returns members of s that are not in other.
func (s *Set) Diff(other *Set) []string {
	result := make([]string, 0)
	for m := range s.members {
		if !other.IsMember(m) {
			result = append(result, m)
		}
	}
	return result
}
