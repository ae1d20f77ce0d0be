package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"numberplater/internal/plate"
)

type memoKey struct {
	word     plate.Word
	families plate.FamilySet
}

// Memo remembers the renderings of recently seen words so repeated words
// across word lists are rendered once.
type Memo struct {
	lru *lru.Cache[memoKey, []string]
}

// NewMemo returns a memo holding at most size words. A non-positive size
// yields a disabled memo.
func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		return &Memo{}, nil
	}
	c, err := lru.New[memoKey, []string](size)
	if err != nil {
		return nil, err
	}
	return &Memo{lru: c}, nil
}

// Get returns the renderings recorded for w under families.
func (m *Memo) Get(w plate.Word, families plate.FamilySet) ([]string, bool) {
	if m == nil || m.lru == nil {
		return nil, false
	}
	return m.lru.Get(memoKey{word: w, families: families})
}

// Add records renderings for w under families.
func (m *Memo) Add(w plate.Word, families plate.FamilySet, renderings []string) {
	if m == nil || m.lru == nil {
		return
	}
	m.lru.Add(memoKey{word: w, families: families}, renderings)
}

// Len returns the number of memoised words.
func (m *Memo) Len() int {
	if m == nil || m.lru == nil {
		return 0
	}
	return m.lru.Len()
}
