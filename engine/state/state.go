// Package state builds a fresh session state and provides read-only lookups
// over it. Mutation lives in progression and quest.
package state

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/epicquest/types"
)

// NewState creates a fresh session for the named hero. The offer pool starts
// empty; the engine fills it.
func NewState(name string, b *types.Balance) *types.State {
	return &types.State{
		Player: types.Player{
			Name:      name,
			Level:     b.StartLevel,
			XP:        0,
			XPToNext:  b.StartXPToNext,
			Gold:      b.StartGold,
			Inventory: map[string]int{},
			Quests:    []*types.Quest{},
		},
		Pool:      types.Pool{Offers: []*types.Quest{}},
		TurnCount: 0,
	}
}

// ItemCount returns how many of an item kind the player holds.
func ItemCount(s *types.State, kind string) int {
	return s.Player.Inventory[kind]
}

// HeldItems returns the item kinds with a positive count, sorted.
func HeldItems(s *types.State) []string {
	var kinds []string
	for k, n := range s.Player.Inventory {
		if n > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// FindOffer resolves a reference to an offered quest. A reference is either
// a 1-based slot number or a prefix of the quest id that matches exactly one
// offer. A short number that names no slot is tried as a prefix.
func FindOffer(s *types.State, ref string) (*types.Quest, bool) {
	ref = strings.TrimSpace(strings.ToLower(ref))
	if ref == "" {
		return nil, false
	}
	offers := s.Pool.Offers

	if n, err := strconv.Atoi(ref); err == nil && len(ref) <= 2 {
		if n >= 1 && n <= len(offers) {
			return offers[n-1], true
		}
	}

	var match *types.Quest
	for _, q := range offers {
		if strings.HasPrefix(strings.ToLower(q.ID), ref) {
			if match != nil {
				return nil, false // ambiguous
			}
			match = q
		}
	}
	return match, match != nil
}
