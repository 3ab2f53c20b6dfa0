package store

import "fmt"

// FormatScore renders a score the way ZSCORE/ZRANGE WITHSCORES/ZINCRBY
// present it: plain decimal if the score is exactly an integer, else a
// fixed six-decimal rendering, mirroring Scalar's own DOUBLE
// presentation after an update.
func FormatScore(score float64) string {
	if asInt := int64(score); float64(asInt) == score {
		return fmt.Sprintf("%d", asInt)
	}
	return fmt.Sprintf("%f", score)
}

// ScoredMember pairs a member with its score, the unit SortedSet reads
// and writes in bulk (spec.md §3 "SortedSet").
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedSet pairs a skipList index, ordered by the composite
// (score, member) key, with a member→score lookup map, kept in
// lock-step (spec.md §4.3): every write touches both, and membership
// lookup never has to walk the index.
type SortedSet struct {
	index  *skipList
	lookup map[string]float64
}

// NewSortedSet creates a new empty sorted set.
func NewSortedSet() *SortedSet {
	return &SortedSet{
		index:  newSkipList(),
		lookup: make(map[string]float64),
	}
}

// Add adds or repositions members. If a member already exists, its
// stale index entry is removed before the new (score, member) pair is
// inserted, so the index never holds two entries for one member.
// Returns the number of members that were new (not previously present).
func (z *SortedSet) Add(members ...ScoredMember) int {
	added := 0
	for _, m := range members {
		if old, exists := z.lookup[m.Member]; exists {
			z.index.Erase(m.Member, old)
		} else {
			added++
		}
		z.index.Insert(m.Member, m.Score)
		z.lookup[m.Member] = m.Score
	}
	return added
}

// Score returns the score of a member.
func (z *SortedSet) Score(member string) (float64, bool) {
	score, exists := z.lookup[member]
	return score, exists
}

// IncrBy increments the score of an existing member and returns the
// new score. The member must already be present — callers create it
// with Add first (spec.md §4.3: "incr_by ... requires m present").
func (z *SortedSet) IncrBy(member string, delta float64) (float64, bool) {
	old, exists := z.lookup[member]
	if !exists {
		return 0, false
	}
	newScore := old + delta
	z.Add(ScoredMember{Member: member, Score: newScore})
	return newScore, true
}

// Remove removes a member. Returns whether it was present.
func (z *SortedSet) Remove(member string) bool {
	score, exists := z.lookup[member]
	if !exists {
		return false
	}
	z.index.Erase(member, score)
	delete(z.lookup, member)
	return true
}

// Card returns the number of members.
func (z *SortedSet) Card() int {
	return len(z.lookup)
}

// Rank returns the 0-based rank of a member in ascending (score,
// member) order, or -1 if the member is absent.
func (z *SortedSet) Rank(member string) int {
	score, exists := z.lookup[member]
	if !exists {
		return -1
	}
	return z.index.Rank(member, score)
}

// Count returns the number of members whose score lies in [min, max].
func (z *SortedSet) Count(min, max float64) int {
	return len(z.index.RangeByScore(min, false, max, false))
}

// Range returns members by rank range, inclusive and 0-based, with
// negative indices resolved from the end (spec.md §4.2's RangeByRank
// plus the List-style clamping the skip list itself doesn't do).
func (z *SortedSet) Range(start, stop int) []ScoredMember {
	n := z.Card()
	if n == 0 {
		return nil
	}
	start, stop = resolveRange(start, stop, n)
	if start > stop {
		return nil
	}
	nodes := z.index.RangeByRank(start, stop)
	result := make([]ScoredMember, len(nodes))
	for i, node := range nodes {
		result[i] = ScoredMember{Member: node.member, Score: node.score}
	}
	return result
}

// RangeByScore returns members with min (op minExclusive) score (op
// maxExclusive) max, in ascending (score, member) order.
func (z *SortedSet) RangeByScore(min float64, minExclusive bool, max float64, maxExclusive bool) []ScoredMember {
	nodes := z.index.RangeByScore(min, minExclusive, max, maxExclusive)
	result := make([]ScoredMember, len(nodes))
	for i, node := range nodes {
		result[i] = ScoredMember{Member: node.member, Score: node.score}
	}
	return result
}

// Inter returns lines for the intersection of z with other: the
// smaller of the two lookup maps is iterated and scores of members
// common to both are summed (spec.md §4.3).
func (z *SortedSet) Inter(other *SortedSet) []ScoredMember {
	small, big := z, other
	if len(other.lookup) < len(z.lookup) {
		small, big = other, z
	}
	var result []ScoredMember
	for member, score := range small.lookup {
		if otherScore, ok := big.lookup[member]; ok {
			result = append(result, ScoredMember{Member: member, Score: score + otherScore})
		}
	}
	return result
}

// Union returns lines for every member of z, summing in other's score
// for members the two sets share. Members present only in other never
// appear (spec.md §4.3): this iterates z's lookup alone, never other's.
func (z *SortedSet) Union(other *SortedSet) []ScoredMember {
	result := make([]ScoredMember, 0, len(z.lookup))
	for member, score := range z.lookup {
		if otherScore, ok := other.lookup[member]; ok {
			score += otherScore
		}
		result = append(result, ScoredMember{Member: member, Score: score})
	}
	return result
}

// resolveRange applies List-style negative-index resolution and
// clamping to a pair of bounds over a sequence of length n.
func resolveRange(start, stop, n int) (int, int) {
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop
}
