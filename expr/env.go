package expr

import (
	"fmt"
	"sort"
	"strings"
)

// Env is a variable environment used as both the local and global state
// of the executor: a mapping from name to integer value, with absent
// names reading as zero. Env is a persistent value — Set returns a new
// Env and never mutates the receiver, the same convention sparsevec.Vector
// and semilinear.LinearSet follow.
type Env struct {
	vars map[string]int64
}

// NewEnv returns the empty environment.
func NewEnv() Env {
	return Env{}
}

// Get reads a variable's value, defaulting to zero when absent.
func (e Env) Get(name string) int64 {
	if e.vars == nil {
		return 0
	}
	return e.vars[name]
}

// Set returns a copy of e with name bound to value.
func (e Env) Set(name string, value int64) Env {
	out := make(map[string]int64, len(e.vars)+1)
	for k, v := range e.vars {
		out[k] = v
	}
	out[name] = value
	return Env{vars: out}
}

// Key returns a canonical string encoding of e, sorted by variable name,
// suitable for use as a map key or as part of a "seen state" dedup key
// (the executor's worklist needs (local, global) identity, and Go maps
// can't use Env directly as a key since it embeds a map).
func (e Env) Key() string {
	if len(e.vars) == 0 {
		return "{}"
	}
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%d", k, e.vars[k])
	}
	b.WriteByte('}')
	return b.String()
}

// String renders e the way the original engine's Display impl does:
// "{k1=v1,k2=v2}" sorted by key.
func (e Env) String() string {
	return e.Key()
}
