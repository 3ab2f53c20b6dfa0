package store

import "errors"

// ErrTypeMismatch is returned by every TypedValue accessor when the
// caller asks for a view the value's fixed Kind doesn't support
// (spec.md §4.4: "mismatch returns a fixed type error and mutates
// nothing").
var ErrTypeMismatch = errors.New("store: type error")

// Kind discriminates the five value kinds a keyspace entry can hold.
type Kind int

const (
	KindString Kind = iota
	KindList
	KindHash
	KindSet
	KindSortedSet
)

// TypedValue is the per-key tagged container described in spec.md
// §4.4: a sum over {Scalar, List, Hash, Set, SortedSet} whose active
// arm is fixed at construction. Every accessor checks the tag before
// handing back the concrete container, so a type-mismatched operation
// fails before it ever reaches container state — it is a usage error
// (and a Go programming error) to call a setter on the wrong field
// directly instead of going through the matching As* accessor first.
type TypedValue struct {
	kind   Kind
	scalar *Scalar
	list   *List
	hash   *Hash
	set    *Set
	zset   *SortedSet
}

// NewStringValue creates a TypedValue of kind String holding the
// Scalar parsed from text.
func NewStringValue(text string) *TypedValue {
	return &TypedValue{kind: KindString, scalar: NewScalar(text)}
}

// NewListValue creates a TypedValue of kind List.
func NewListValue() *TypedValue {
	return &TypedValue{kind: KindList, list: NewList()}
}

// NewHashValue creates a TypedValue of kind Hash.
func NewHashValue() *TypedValue {
	return &TypedValue{kind: KindHash, hash: NewHash()}
}

// NewSetValue creates a TypedValue of kind Set.
func NewSetValue() *TypedValue {
	return &TypedValue{kind: KindSet, set: NewSet()}
}

// NewSortedSetValue creates a TypedValue of kind SortedSet.
func NewSortedSetValue() *TypedValue {
	return &TypedValue{kind: KindSortedSet, zset: NewSortedSet()}
}

// Kind reports the value's fixed tag.
func (v *TypedValue) Kind() Kind {
	return v.kind
}

// AsScalar returns the value's Scalar, or ErrTypeMismatch if the value
// isn't a String.
func (v *TypedValue) AsScalar() (*Scalar, error) {
	if v.kind != KindString {
		return nil, ErrTypeMismatch
	}
	return v.scalar, nil
}

// AsList returns the value's List, or ErrTypeMismatch if the value
// isn't a List.
func (v *TypedValue) AsList() (*List, error) {
	if v.kind != KindList {
		return nil, ErrTypeMismatch
	}
	return v.list, nil
}

// AsHash returns the value's Hash, or ErrTypeMismatch if the value
// isn't a Hash.
func (v *TypedValue) AsHash() (*Hash, error) {
	if v.kind != KindHash {
		return nil, ErrTypeMismatch
	}
	return v.hash, nil
}

// AsSet returns the value's Set, or ErrTypeMismatch if the value isn't
// a Set.
func (v *TypedValue) AsSet() (*Set, error) {
	if v.kind != KindSet {
		return nil, ErrTypeMismatch
	}
	return v.set, nil
}

// AsSortedSet returns the value's SortedSet, or ErrTypeMismatch if the
// value isn't a SortedSet.
func (v *TypedValue) AsSortedSet() (*SortedSet, error) {
	if v.kind != KindSortedSet {
		return nil, ErrTypeMismatch
	}
	return v.zset, nil
}
