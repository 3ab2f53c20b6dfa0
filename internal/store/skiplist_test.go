package store

import (
	"strconv"
	"testing"
)

func TestSkipList_InsertRank(t *testing.T) {
	sl := newSkipList()
	members := []struct {
		member string
		score  float64
	}{
		{"c", 3}, {"a", 1}, {"b", 2}, {"d", 2},
	}
	for _, m := range members {
		sl.Insert(m.member, m.score)
	}
	if sl.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", sl.Len())
	}
	// ascending order: a(1) b(2) d(2) c(3) -- ties broken lexicographically
	want := []string{"a", "b", "d", "c"}
	for i, member := range want {
		if rank := sl.Rank(member, scoreOf(members, member)); rank != i {
			t.Errorf("Rank(%q) = %d, want %d", member, rank, i)
		}
	}
}

func scoreOf(members []struct {
	member string
	score  float64
}, name string) float64 {
	for _, m := range members {
		if m.member == name {
			return m.score
		}
	}
	return 0
}

func TestSkipList_Erase(t *testing.T) {
	sl := newSkipList()
	sl.Insert("a", 1)
	sl.Insert("b", 2)
	if !sl.Erase("a", 1) {
		t.Fatal("Erase(a) = false, want true")
	}
	if sl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", sl.Len())
	}
	if sl.Erase("a", 1) {
		t.Fatal("Erase(a) again = true, want false")
	}
	if sl.Rank("a", 1) != -1 {
		t.Error("Rank(a) after erase should be -1")
	}
	if rank := sl.Rank("b", 2); rank != 0 {
		t.Errorf("Rank(b) = %d, want 0", rank)
	}
}

func TestSkipList_RangeByRank(t *testing.T) {
	sl := newSkipList()
	for i, m := range []string{"a", "b", "c", "d", "e"} {
		sl.Insert(m, float64(i))
	}
	nodes := sl.RangeByRank(1, 3)
	if len(nodes) != 3 {
		t.Fatalf("RangeByRank(1,3) len = %d, want 3", len(nodes))
	}
	got := []string{nodes[0].member, nodes[1].member, nodes[2].member}
	want := []string{"b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RangeByRank[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if nodes := sl.RangeByRank(0, 4); len(nodes) != 5 {
		t.Errorf("RangeByRank(0,4) len = %d, want 5", len(nodes))
	}
	if nodes := sl.RangeByRank(3, 10); len(nodes) != 2 {
		t.Errorf("RangeByRank(3,10) len = %d, want 2 (clamped by availability, not rejected)", len(nodes))
	}
	if nodes := sl.RangeByRank(-1, 2); nodes != nil {
		t.Errorf("RangeByRank(-1,2) should be rejected, got %v", nodes)
	}
}

func TestSkipList_RangeByScore(t *testing.T) {
	sl := newSkipList()
	for i, m := range []string{"a", "b", "c", "d", "e"} {
		sl.Insert(m, float64(i))
	}
	nodes := sl.RangeByScore(1, false, 3, false)
	if len(nodes) != 3 {
		t.Fatalf("RangeByScore(1,3 inclusive) len = %d, want 3", len(nodes))
	}
	nodes = sl.RangeByScore(1, true, 3, true)
	if len(nodes) != 1 {
		t.Fatalf("RangeByScore(1,3 exclusive) len = %d, want 1 (just c)", len(nodes))
	}
	if nodes[0].member != "c" {
		t.Errorf("RangeByScore exclusive got %q, want c", nodes[0].member)
	}
}

func TestSkipList_InsertDuplicateIsNoop(t *testing.T) {
	sl := newSkipList()
	sl.Insert("a", 1)
	sl.Insert("a", 1)
	if sl.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after duplicate insert", sl.Len())
	}
}

func TestSkipList_ManyInsertsPreserveRankInvariant(t *testing.T) {
	sl := newSkipList()
	n := 200
	for i := 0; i < n; i++ {
		sl.Insert(string(rune('a'+i%26))+strconv.Itoa(i), float64(n-i))
	}
	if sl.Len() != n {
		t.Fatalf("Len() = %d, want %d", sl.Len(), n)
	}
	nodes := sl.RangeByRank(0, n-1)
	if len(nodes) != n {
		t.Fatalf("RangeByRank full range len = %d, want %d", len(nodes), n)
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].score > nodes[i].score {
			t.Fatalf("rank order violated at %d: %v > %v", i, nodes[i-1].score, nodes[i].score)
		}
	}
}
