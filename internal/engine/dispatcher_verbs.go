package engine

import (
	"strconv"
	"strings"

	"github.com/flashkv/flashkv/internal/store"
)

// numberedLines joins entries with each prefixed by its 1-based
// ordinal and ") ", the enumeration format spec.md §6 mandates for
// every multi-entry reader.
func numberedLines(entries []string) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = strconv.Itoa(i+1) + ") " + e
	}
	return strings.Join(lines, "\n")
}

func parseStrictInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func parseStrictFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseStrictBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// --- String verbs ---

func (d *Dispatcher) cmdGet(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	sc, err := v.AsScalar()
	if err != nil {
		return replyTypeError
	}
	return sc.Text()
}

func (d *Dispatcher) cmdSet(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewStringValue(tokens[2]) })
	sc, err := v.AsScalar()
	if err != nil {
		return replyTypeError
	}
	sc.Reset(tokens[2])
	return replyOK
}

func (d *Dispatcher) cmdSetNX(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	key, value := tokens[1], tokens[2]
	if d.lookup(key) != nil {
		return replyNil
	}
	d.keyspace[key] = store.NewStringValue(value)
	return replyOK
}

func (d *Dispatcher) cmdIncr(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	sc, err := v.AsScalar()
	if err != nil {
		return replyTypeError
	}
	if err := sc.UpdateInt(1); err != nil {
		return "Redis string can not be recognized as an integer"
	}
	return sc.Text()
}

func (d *Dispatcher) cmdIncrBy(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	n, ok := parseStrictInt64(tokens[2])
	if !ok {
		return replyIntIncr
	}
	sc, err := v.AsScalar()
	if err != nil {
		return replyTypeError
	}
	if err := sc.UpdateInt(n); err != nil {
		return "Redis string can not be recognized as an integer"
	}
	return sc.Text()
}

func (d *Dispatcher) cmdIncrByFloat(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	delta, ok := parseStrictFloat64(tokens[2])
	if !ok {
		return replyFloatIncr
	}
	sc, err := v.AsScalar()
	if err != nil {
		return replyTypeError
	}
	if err := sc.UpdateFloat(delta); err != nil {
		return "Redis string can not be recognized as a number"
	}
	return sc.Text()
}

func (d *Dispatcher) cmdExists(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	if d.lookup(tokens[1]) != nil {
		return replyTrue
	}
	return replyFalse
}

func (d *Dispatcher) cmdDel(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	if d.lookup(tokens[1]) == nil {
		return replyNil
	}
	delete(d.keyspace, tokens[1])
	return replyOK
}

// --- List verbs ---

func (d *Dispatcher) cmdLPush(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewListValue() })
	list, err := v.AsList()
	if err != nil {
		return replyTypeError
	}
	list.LPush([]byte(tokens[2]))
	return replyOK
}

func (d *Dispatcher) cmdLPop(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	list, err := v.AsList()
	if err != nil {
		return replyTypeError
	}
	val, ok := list.LPop()
	if !ok {
		return replyNil
	}
	return string(val)
}

func (d *Dispatcher) cmdRPush(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewListValue() })
	list, err := v.AsList()
	if err != nil {
		return replyTypeError
	}
	list.RPush([]byte(tokens[2]))
	return replyOK
}

func (d *Dispatcher) cmdRPop(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	list, err := v.AsList()
	if err != nil {
		return replyTypeError
	}
	val, ok := list.RPop()
	if !ok {
		return replyNil
	}
	return string(val)
}

func (d *Dispatcher) cmdLRange(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	startN, err1 := strconv.Atoi(tokens[2])
	stopN, err2 := strconv.Atoi(tokens[3])
	if err1 != nil || err2 != nil {
		return replyIntIndex
	}
	list, err := v.AsList()
	if err != nil {
		return replyTypeError
	}
	items := list.Range(startN, stopN)
	if len(items) == 0 {
		return replyEmptyArray
	}
	entries := make([]string, len(items))
	for i, it := range items {
		entries[i] = string(it)
	}
	return numberedLines(entries)
}

func (d *Dispatcher) cmdLLen(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	list, err := v.AsList()
	if err != nil {
		return replyTypeError
	}
	return strconv.Itoa(list.Len())
}

// --- Hash verbs ---

func (d *Dispatcher) cmdHSet(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewHashValue() })
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	hash.Set(tokens[2], tokens[3])
	return replyOK
}

func (d *Dispatcher) cmdHSetNX(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewHashValue() })
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	if hash.SetNX(tokens[2], tokens[3]) {
		return replyOK
	}
	return replyNil
}

func (d *Dispatcher) cmdHGet(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	val, ok := hash.Get(tokens[2])
	if !ok {
		return replyNil
	}
	return val
}

func (d *Dispatcher) cmdHGetAll(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	fields := hash.GetAll()
	if len(fields) == 0 {
		return ""
	}
	entries := make([]string, len(fields))
	for i, f := range fields {
		entries[i] = f.Field + ": " + f.Value
	}
	return numberedLines(entries)
}

func (d *Dispatcher) cmdHKeys(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	keys := hash.Keys()
	if len(keys) == 0 {
		return ""
	}
	return numberedLines(keys)
}

func (d *Dispatcher) cmdHVals(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	vals := hash.Vals()
	if len(vals) == 0 {
		return ""
	}
	return numberedLines(vals)
}

func (d *Dispatcher) cmdHIncrBy(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	delta, ok := parseStrictInt64(tokens[3])
	if !ok {
		return replyIntIncr
	}
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	text, exists, err := hash.IncrBy(tokens[2], delta)
	if !exists {
		return replyNil
	}
	if err != nil {
		return "Hash value can not be recognized as an integer"
	}
	return text
}

func (d *Dispatcher) cmdHIncrByFloat(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	delta, ok := parseStrictFloat64(tokens[3])
	if !ok {
		return replyFloatIncr
	}
	hash, err := v.AsHash()
	if err != nil {
		return replyTypeError
	}
	text, exists, err := hash.IncrByFloat(tokens[2], delta)
	if !exists {
		return replyNil
	}
	if err != nil {
		return "Hash value can not be recognized as a float number"
	}
	return text
}

// --- Set verbs ---

func (d *Dispatcher) cmdSAdd(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewSetValue() })
	set, err := v.AsSet()
	if err != nil {
		return replyTypeError
	}
	set.Add(tokens[2])
	return replyOK
}

func (d *Dispatcher) cmdSRem(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	set, err := v.AsSet()
	if err != nil {
		return replyTypeError
	}
	if set.Rem(tokens[2]) == 0 {
		return replyNil
	}
	return replyOK
}

func (d *Dispatcher) cmdSCard(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	set, err := v.AsSet()
	if err != nil {
		return replyTypeError
	}
	return strconv.Itoa(set.Card())
}

func (d *Dispatcher) cmdSIsMember(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	set, err := v.AsSet()
	if err != nil {
		return replyTypeError
	}
	if set.IsMember(tokens[2]) {
		return replyTrue
	}
	return replyFalse
}

func (d *Dispatcher) cmdSMembers(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	set, err := v.AsSet()
	if err != nil {
		return replyTypeError
	}
	members := set.Members()
	if len(members) == 0 {
		return replyEmptyArray
	}
	return numberedLines(members)
}

// setOrEmpty returns the Set stored at key, or a fresh empty Set if
// the key is absent — the treat-missing-as-empty-set rule spec.md
// §4.5 gives to the binary set-algebra verbs.
func (d *Dispatcher) setOrEmpty(key string) (*store.Set, error) {
	v := d.lookup(key)
	if v == nil {
		return store.NewSet(), nil
	}
	return v.AsSet()
}

func (d *Dispatcher) cmdSInter(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	a, err := d.setOrEmpty(tokens[1])
	if err != nil {
		return replyTypeError
	}
	b, err := d.setOrEmpty(tokens[2])
	if err != nil {
		return replyTypeError
	}
	result := a.Inter(b)
	if len(result) == 0 {
		return replyEmptyArray
	}
	return numberedLines(result)
}

func (d *Dispatcher) cmdSUnion(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	a, err := d.setOrEmpty(tokens[1])
	if err != nil {
		return replyTypeError
	}
	b, err := d.setOrEmpty(tokens[2])
	if err != nil {
		return replyTypeError
	}
	result := a.Union(b)
	if len(result) == 0 {
		return replyEmptyArray
	}
	return numberedLines(result)
}

func (d *Dispatcher) cmdSDiff(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	a, err := d.setOrEmpty(tokens[1])
	if err != nil {
		return replyTypeError
	}
	b, err := d.setOrEmpty(tokens[2])
	if err != nil {
		return replyTypeError
	}
	result := a.Diff(b)
	if len(result) == 0 {
		return replyEmptyArray
	}
	return numberedLines(result)
}

// --- SortedSet verbs ---

func (d *Dispatcher) cmdZAdd(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	score, ok := parseStrictFloat64(tokens[2])
	if !ok {
		return replyFloatIncr
	}
	v := d.getOrCreate(tokens[1], func() *store.TypedValue { return store.NewSortedSetValue() })
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	zset.Add(store.ScoredMember{Member: tokens[3], Score: score})
	return replyOK
}

func (d *Dispatcher) cmdZRem(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	if !zset.Remove(tokens[2]) {
		return replyNil
	}
	return replyOK
}

func (d *Dispatcher) cmdZScore(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	score, ok := zset.Score(tokens[2])
	if !ok {
		return replyNil
	}
	return store.FormatScore(score)
}

func (d *Dispatcher) cmdZRank(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	rank := zset.Rank(tokens[2])
	if rank < 0 {
		return replyNil
	}
	return strconv.Itoa(rank)
}

func (d *Dispatcher) cmdZCard(tokens []string) string {
	if len(tokens) != 2 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	return strconv.Itoa(zset.Card())
}

func (d *Dispatcher) cmdZCount(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	min, ok1 := parseStrictFloat64(tokens[2])
	max, ok2 := parseStrictFloat64(tokens[3])
	if !ok1 || !ok2 {
		return replyFloatIncr
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	return strconv.Itoa(zset.Count(min, max))
}

func (d *Dispatcher) cmdZIncrBy(tokens []string) string {
	if len(tokens) != 4 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	delta, ok := parseStrictFloat64(tokens[2])
	if !ok {
		return replyFloatIncr
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	newScore, exists := zset.IncrBy(tokens[3], delta)
	if !exists {
		return replyNil
	}
	return store.FormatScore(newScore)
}

func (d *Dispatcher) cmdZRange(tokens []string) string {
	if len(tokens) != 5 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	start, err1 := strconv.Atoi(tokens[2])
	stop, err2 := strconv.Atoi(tokens[3])
	if err1 != nil || err2 != nil {
		return replyIntIndex
	}
	withScores, ok := parseStrictBool(tokens[4])
	if !ok {
		return replyArity
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	members := zset.Range(start, stop)
	if len(members) == 0 {
		return replyEmptyArray
	}
	return formatScoredMembers(members, withScores)
}

func (d *Dispatcher) cmdZRangeByScore(tokens []string) string {
	if len(tokens) != 7 {
		return replyArity
	}
	v := d.lookup(tokens[1])
	if v == nil {
		return replyNil
	}
	min, ok1 := parseStrictFloat64(tokens[2])
	minExclusive, ok2 := parseStrictBool(tokens[3])
	max, ok3 := parseStrictFloat64(tokens[4])
	maxExclusive, ok4 := parseStrictBool(tokens[5])
	withScores, ok5 := parseStrictBool(tokens[6])
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return replyFloatIncr
	}
	zset, err := v.AsSortedSet()
	if err != nil {
		return replyTypeError
	}
	members := zset.RangeByScore(min, minExclusive, max, maxExclusive)
	if len(members) == 0 {
		return replyEmptyArray
	}
	return formatScoredMembers(members, withScores)
}

// formatScoredMembers renders ZRANGE/ZRANGEBYSCORE output. Grounded on
// original_source's z_range: each line is "N) member" with the score
// text appended directly, with no separating space, when withScores
// is set.
func formatScoredMembers(members []store.ScoredMember, withScores bool) string {
	entries := make([]string, len(members))
	for i, m := range members {
		if withScores {
			entries[i] = m.Member + store.FormatScore(m.Score)
		} else {
			entries[i] = m.Member
		}
	}
	return numberedLines(entries)
}

// formatSetAlgebraMembers renders ZINTER/ZUNION output. Grounded on
// original_source's z_inter/z_union, a separate code path from
// z_range: each line joins member and score with a space.
func formatSetAlgebraMembers(members []store.ScoredMember) string {
	entries := make([]string, len(members))
	for i, m := range members {
		entries[i] = m.Member + " " + store.FormatScore(m.Score)
	}
	return numberedLines(entries)
}

func (d *Dispatcher) cmdZInter(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	a, err := d.zsetOrEmpty(tokens[1])
	if err != nil {
		return replyTypeError
	}
	b, err := d.zsetOrEmpty(tokens[2])
	if err != nil {
		return replyTypeError
	}
	result := a.Inter(b)
	if len(result) == 0 {
		return replyEmptyArray
	}
	return formatSetAlgebraMembers(result)
}

func (d *Dispatcher) cmdZUnion(tokens []string) string {
	if len(tokens) != 3 {
		return replyArity
	}
	a, err := d.zsetOrEmpty(tokens[1])
	if err != nil {
		return replyTypeError
	}
	b, err := d.zsetOrEmpty(tokens[2])
	if err != nil {
		return replyTypeError
	}
	result := a.Union(b)
	if len(result) == 0 {
		return replyEmptyArray
	}
	return formatSetAlgebraMembers(result)
}

// zsetOrEmpty returns the SortedSet stored at key, or a fresh empty
// one if key is absent, mirroring setOrEmpty for ZINTER/ZUNION.
func (d *Dispatcher) zsetOrEmpty(key string) (*store.SortedSet, error) {
	v := d.lookup(key)
	if v == nil {
		return store.NewSortedSet(), nil
	}
	return v.AsSortedSet()
}
