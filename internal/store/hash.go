package store

// Hash maps field names to Scalar values under a single key (spec.md
// §3 "Hash"). Field order is insertion-irrelevant; enumeration order is
// unspecified, backed by a Go map. Not thread-safe; concurrency is
// managed by the caller.
type Hash struct {
	fields map[string]*Scalar
}

// NewHash creates a new empty Hash.
func NewHash() *Hash {
	return &Hash{fields: make(map[string]*Scalar)}
}

// Set sets field to value, parsing value with NewScalar. Returns true
// if the field is new.
func (h *Hash) Set(field, value string) bool {
	_, existed := h.fields[field]
	h.fields[field] = NewScalar(value)
	return !existed
}

// SetNX sets field to value only if it doesn't already exist. Returns
// whether it was set.
func (h *Hash) SetNX(field, value string) bool {
	if _, exists := h.fields[field]; exists {
		return false
	}
	h.fields[field] = NewScalar(value)
	return true
}

// Get returns the presentation text of a field's Scalar.
func (h *Hash) Get(field string) (string, bool) {
	sc, exists := h.fields[field]
	if !exists {
		return "", false
	}
	return sc.Text(), true
}

// Len returns the number of fields.
func (h *Hash) Len() int {
	return len(h.fields)
}

// GetAll returns every field and its Scalar presentation text.
func (h *Hash) GetAll() []HashFieldValue {
	result := make([]HashFieldValue, 0, len(h.fields))
	for field, sc := range h.fields {
		result = append(result, HashFieldValue{Field: field, Value: sc.Text()})
	}
	return result
}

// Keys returns all field names.
func (h *Hash) Keys() []string {
	keys := make([]string, 0, len(h.fields))
	for field := range h.fields {
		keys = append(keys, field)
	}
	return keys
}

// Vals returns all field values in presentation form.
func (h *Hash) Vals() []string {
	vals := make([]string, 0, len(h.fields))
	for _, sc := range h.fields {
		vals = append(vals, sc.Text())
	}
	return vals
}

// IncrBy increments the integer value of field by delta and returns
// its regenerated presentation text. A missing field reports
// !exists and is left untouched (no auto-vivify, matching the
// top-level INCR-on-missing-key contract). The field's Scalar must be
// EncInt; if it exists with any other encoding this returns
// ErrNotNumeric and leaves the field untouched (spec.md §4.4).
func (h *Hash) IncrBy(field string, delta int64) (text string, exists bool, err error) {
	sc, exists := h.fields[field]
	if !exists {
		return "", false, nil
	}
	if err := sc.UpdateInt(delta); err != nil {
		return "", true, err
	}
	return sc.Text(), true, nil
}

// IncrByFloat increments the float value of field by delta and returns
// its regenerated presentation text. A missing field reports !exists
// and is left untouched. The field's Scalar must be EncInt or
// EncDouble and may downgrade to INT after the update, exactly like
// Scalar.UpdateFloat.
func (h *Hash) IncrByFloat(field string, delta float64) (text string, exists bool, err error) {
	sc, exists := h.fields[field]
	if !exists {
		return "", false, nil
	}
	if err := sc.UpdateFloat(delta); err != nil {
		return "", true, err
	}
	return sc.Text(), true, nil
}

// HashFieldValue is a field/value pair, the unit HGetAll reads in bulk.
type HashFieldValue struct {
	Field string
	Value string
}
