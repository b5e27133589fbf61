package engine

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
)

const lockStripes = 64

// processLocks serializes stage transitions per process. Locks are striped
// by process ID: two goroutines advancing the same process always contend
// on the same mutex, while distinct processes almost always proceed
// independently.
type processLocks struct {
	stripes [lockStripes]sync.Mutex
}

func (l *processLocks) lock(id uuid.UUID) func() {
	m := &l.stripes[stripe(id)]
	m.Lock()
	return m.Unlock
}

func stripe(id uuid.UUID) int {
	h := fnv.New32a()
	h.Write(id[:])
	return int(h.Sum32() % lockStripes)
}
