// Package engine implements the KeyspaceDispatcher: it owns the
// key→TypedValue mapping, tokenises each request line, routes to the
// matching store operation, and formats the textual reply.
package engine

import (
	"strings"
	"sync"

	"github.com/flashkv/flashkv/internal/store"
)

// Dispatcher owns the keyspace and serializes access to it, the Go
// rendition of the single-reactor-thread serialization the source
// relies on (no operation on store.TypedValue is safe for concurrent
// mutation on its own).
type Dispatcher struct {
	mu       sync.Mutex
	keyspace map[string]*store.TypedValue
}

// NewDispatcher creates a Dispatcher with an empty keyspace.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{keyspace: make(map[string]*store.TypedValue)}
}

// verbHandler handles one verb's already-tokenised request line
// (tokens[0] is the verb itself) and returns the reply text.
type verbHandler func(d *Dispatcher, tokens []string) string

var verbTable = map[string]verbHandler{
	"GET":            (*Dispatcher).cmdGet,
	"SET":            (*Dispatcher).cmdSet,
	"SETNX":          (*Dispatcher).cmdSetNX,
	"INCR":           (*Dispatcher).cmdIncr,
	"INCRBY":         (*Dispatcher).cmdIncrBy,
	"INCRBYFLOAT":    (*Dispatcher).cmdIncrByFloat,
	"EXISTS":         (*Dispatcher).cmdExists,
	"DEL":            (*Dispatcher).cmdDel,
	"LPUSH":          (*Dispatcher).cmdLPush,
	"LPOP":           (*Dispatcher).cmdLPop,
	"RPUSH":          (*Dispatcher).cmdRPush,
	"RPOP":           (*Dispatcher).cmdRPop,
	"LRANGE":         (*Dispatcher).cmdLRange,
	"LLEN":           (*Dispatcher).cmdLLen,
	"HSET":           (*Dispatcher).cmdHSet,
	"HGET":           (*Dispatcher).cmdHGet,
	"HGETALL":        (*Dispatcher).cmdHGetAll,
	"HKEYS":          (*Dispatcher).cmdHKeys,
	"HVALS":          (*Dispatcher).cmdHVals,
	"HSETNX":         (*Dispatcher).cmdHSetNX,
	"HINCRBY":        (*Dispatcher).cmdHIncrBy,
	"HINCRBYFLOAT":   (*Dispatcher).cmdHIncrByFloat,
	"SADD":           (*Dispatcher).cmdSAdd,
	"SREM":           (*Dispatcher).cmdSRem,
	"SCARD":          (*Dispatcher).cmdSCard,
	"SISMEMBER":      (*Dispatcher).cmdSIsMember,
	"SMEMBERS":       (*Dispatcher).cmdSMembers,
	"SINTER":         (*Dispatcher).cmdSInter,
	"SUNION":         (*Dispatcher).cmdSUnion,
	"SDIFF":          (*Dispatcher).cmdSDiff,
	"ZADD":           (*Dispatcher).cmdZAdd,
	"ZREM":           (*Dispatcher).cmdZRem,
	"ZSCORE":         (*Dispatcher).cmdZScore,
	"ZRANK":          (*Dispatcher).cmdZRank,
	"ZCARD":          (*Dispatcher).cmdZCard,
	"ZCOUNT":         (*Dispatcher).cmdZCount,
	"ZINCRBY":        (*Dispatcher).cmdZIncrBy,
	"ZRANGE":         (*Dispatcher).cmdZRange,
	"ZRANGEBYSCORE":  (*Dispatcher).cmdZRangeByScore,
	"ZINTER":         (*Dispatcher).cmdZInter,
	"ZUNION":         (*Dispatcher).cmdZUnion,
}

// Dispatch tokenises line, routes it to the matching verb handler, and
// returns the reply text. The second return value reports whether a
// reply should be sent at all — a blank or whitespace-only line
// produces no tokens and, matching the source, draws no reply.
func (d *Dispatcher) Dispatch(line string) (string, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", false
	}

	verb := strings.ToUpper(tokens[0])
	handler, known := verbTable[verb]
	if !known {
		return "Unknown command " + verb, true
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return handler(d, tokens), true
}

const (
	replyOK          = "OK"
	replyNil         = "(nil)"
	replyTrue        = "true"
	replyFalse       = "false"
	replyEmptyArray  = "(empty array)"
	replyTypeError   = "Redis object type error"
	replyArity       = "Incorrect argument number"
	replyIntIncr     = "Increment should be an integer"
	replyFloatIncr   = "Increment should be a float number"
	replyIntIndex    = "Index should be an integer"
)

// lookup returns the keyspace entry for key, or nil if absent.
func (d *Dispatcher) lookup(key string) *store.TypedValue {
	return d.keyspace[key]
}

// Keys returns every key currently in the keyspace, for tests and
// introspection; it is not reachable from any verb (spec.md §4.5's
// verb table is exhaustive and closed).
func (d *Dispatcher) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]string, 0, len(d.keyspace))
	for k := range d.keyspace {
		keys = append(keys, k)
	}
	return keys
}

// Size returns the number of keys in the keyspace.
func (d *Dispatcher) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keyspace)
}

// KeyType returns the Kind of the value stored at key, and whether
// the key exists at all.
func (d *Dispatcher) KeyType(key string) (store.Kind, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.keyspace[key]
	if !ok {
		return 0, false
	}
	return v.Kind(), true
}

// getOrCreate returns the existing entry for key, or builds a fresh
// one with newValue and inserts it (the auto-create-on-write path,
// spec.md §4.5).
func (d *Dispatcher) getOrCreate(key string, newValue func() *store.TypedValue) *store.TypedValue {
	if v, ok := d.keyspace[key]; ok {
		return v
	}
	v := newValue()
	d.keyspace[key] = v
	return v
}
