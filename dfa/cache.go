package dfa

import (
	"github.com/coregx/regexcore/internal/rangeset"
	"github.com/coregx/regexcore/prog"
)

// Cache holds everything a run builds up across calls: every state
// interned so far, the map used to find an existing state by key, and
// scratch sets reused call to call so searching never allocates once warm.
type Cache struct {
	states     states
	stateCache map[stateKey]StatePtr
	currInsts  *rangeset.Set
	nextInsts  *rangeset.Set
	addStack   []prog.InstPtr
}

// NewCache allocates a Cache sized for p. A Cache is tied to the Prog it was
// created for and must not be reused across different programs.
func NewCache(p *prog.Prog) *Cache {
	n := len(p.Insts)
	return &Cache{
		stateCache: make(map[stateKey]StatePtr),
		currInsts:  rangeset.NewSet(n),
		nextInsts:  rangeset.NewSet(n),
	}
}
