// Package progression applies XP, level, gold and item deltas to the player.
// Every mutation of the player's stats goes through here.
package progression

import (
	"errors"
	"fmt"
	"math"

	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/engine/events"
	"github.com/nathoo/epicquest/types"
)

// ErrInvalidItemKind is returned by AddItem for kinds not in the balance table.
var ErrInvalidItemKind = errors.New("invalid item kind")

// ApplyXP adds amount to the player's XP and levels up as many times as the
// total allows. Overflow carries into the next level. Always emits an XP
// event, then one level-up event per level gained.
func ApplyXP(p *types.Player, amount int, b *types.Balance) []types.Event {
	evts := []types.Event{events.XPGained(amount)}
	p.XP += amount

	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		p.XPToNext = NextThreshold(p.XPToNext, b.LevelFactor)
		evts = append(evts, events.LevelUp(p.Level))
	}
	return evts
}

// NextThreshold returns floor(current × factor).
func NextThreshold(current int, factor float64) int {
	return int(math.Floor(float64(current) * factor))
}

// AddGold adds amount to the player's purse.
func AddGold(p *types.Player, amount int) {
	p.Gold += amount
}

// AddItem increments the player's count of an item kind.
func AddItem(p *types.Player, kind string, count int, b *types.Balance) error {
	if !balance.IsItem(b, kind) {
		return fmt.Errorf("%w: %q", ErrInvalidItemKind, kind)
	}
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	p.Inventory[kind] += count
	return nil
}
