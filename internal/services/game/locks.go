package game

import (
	"sync"

	"github.com/mcoot/othello/internal/model"
)

// lockTable hands out one mutex per game so a game is only ever mutated by
// one request at a time. Entries are dropped once nobody holds or waits on them.
type lockTable struct {
	mu    sync.Mutex
	locks map[model.GameID]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[model.GameID]*gameLock)}
}

// lock blocks until the game is free and returns the matching unlock func
func (t *lockTable) lock(id model.GameID) func() {
	t.mu.Lock()
	l, ok := t.locks[id]
	if !ok {
		l = &gameLock{}
		t.locks[id] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		t.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(t.locks, id)
		}
		t.mu.Unlock()
	}
}

// size returns the number of live entries
func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}
