// Package balance holds the default tuning table and its validation.
package balance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nathoo/epicquest/types"
)

// Enemy and item kinds.
const (
	EnemyGoblin   = "goblin"
	EnemyOrc      = "orc"
	EnemySkeleton = "skeleton"
	EnemyDragon   = "dragon"

	ItemPotion   = "potion"
	ItemSword    = "sword"
	ItemShield   = "shield"
	ItemGoldCoin = "gold_coin" // collectible; not the Gold currency
)

// DefaultHeroName is used when no name is given.
const DefaultHeroName = "Brave Adventurer"

var validate = validator.New()

// Default returns the stock balance table.
func Default() *types.Balance {
	return &types.Balance{
		StartLevel:    1,
		StartXPToNext: 100,
		StartGold:     20,
		LevelFactor:   1.5,
		FightXP:       20,
		FightGold:     10,
		PoolSize:      3,
		Enemies:       []string{EnemyGoblin, EnemyOrc, EnemySkeleton, EnemyDragon},
		Items:         []string{ItemPotion, ItemSword, ItemShield, ItemGoldCoin},
		Hunt: types.QuestTemplate{
			MinCount: 2, MaxCount: 4,
			XPBase: 30, XPPerLevel: 10,
			GoldBase: 15, GoldPerLevel: 5,
		},
		Collect: types.QuestTemplate{
			MinCount: 2, MaxCount: 5,
			XPBase: 20, XPPerLevel: 10,
			GoldBase: 10, GoldPerLevel: 5,
		},
	}
}

// Validate checks a balance table. All violations are reported together.
func Validate(b *types.Balance) error {
	problems, err := Problems(b)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid balance:\n  %s", strings.Join(problems, "\n  "))
}

// Problems lists every rule the table violates, one line per field.
func Problems(b *types.Balance) ([]string, error) {
	err := validate.Struct(b)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validating balance: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (%v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return msgs, nil
}

// Template returns the quest template for a kind.
func Template(b *types.Balance, kind types.QuestKind) types.QuestTemplate {
	if kind == types.QuestCollect {
		return b.Collect
	}
	return b.Hunt
}

// Targets returns the kinds a quest of the given kind can target.
func Targets(b *types.Balance, kind types.QuestKind) []string {
	if kind == types.QuestCollect {
		return b.Items
	}
	return b.Enemies
}

// IsItem reports whether kind is a known item kind.
func IsItem(b *types.Balance, kind string) bool {
	for _, it := range b.Items {
		if it == kind {
			return true
		}
	}
	return false
}
