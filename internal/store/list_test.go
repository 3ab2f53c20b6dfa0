package store

import (
	"bytes"
	"testing"
)

func TestList_LPushOrder(t *testing.T) {
	l := NewList()
	l.LPush([]byte("a"), []byte("b"), []byte("c"))
	got := l.Range(0, -1)
	want := [][]byte{[]byte("c"), []byte("b"), []byte("a")}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("Range[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestList_RPushOrder(t *testing.T) {
	l := NewList()
	l.RPush([]byte("a"), []byte("b"), []byte("c"))
	got := l.Range(0, -1)
	want := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("Range[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestList_PopEmpty(t *testing.T) {
	l := NewList()
	if _, ok := l.LPop(); ok {
		t.Error("LPop on empty list should fail")
	}
	if _, ok := l.RPop(); ok {
		t.Error("RPop on empty list should fail")
	}
}

func TestList_PushPopRoundTrip(t *testing.T) {
	l := NewList()
	l.RPush([]byte("a"), []byte("b"))
	v, ok := l.LPop()
	if !ok || string(v) != "a" {
		t.Errorf("LPop = %q,%v want a,true", v, ok)
	}
	v, ok = l.RPop()
	if !ok || string(v) != "b" {
		t.Errorf("RPop = %q,%v want b,true", v, ok)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestList_RangeNegativeIndices(t *testing.T) {
	l := NewList()
	l.RPush([]byte("a"), []byte("b"), []byte("c"), []byte("d"))
	got := l.Range(-2, -1)
	if len(got) != 2 || string(got[0]) != "c" || string(got[1]) != "d" {
		t.Errorf("Range(-2,-1) = %v, want [c d]", got)
	}
}

func TestList_RangeOutOfBounds(t *testing.T) {
	l := NewList()
	l.RPush([]byte("a"))
	if got := l.Range(5, 10); got != nil {
		t.Errorf("Range(5,10) = %v, want nil", got)
	}
}
