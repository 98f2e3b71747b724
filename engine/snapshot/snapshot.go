// Package snapshot takes immutable copies of session state and encodes them
// as JSON for state dumps.
package snapshot

import (
	"encoding/json"

	"github.com/nathoo/epicquest/types"
)

// Take copies the session state. The copy shares nothing with s.
func Take(s *types.State) types.Snapshot {
	p := s.Player
	inv := make(map[string]int, len(p.Inventory))
	for k, v := range p.Inventory {
		inv[k] = v
	}
	return types.Snapshot{
		Name:      p.Name,
		Level:     p.Level,
		XP:        p.XP,
		XPToNext:  p.XPToNext,
		Gold:      p.Gold,
		Inventory: inv,
		Quests:    copyQuests(p.Quests),
		Offers:    copyQuests(s.Pool.Offers),
		Turn:      s.TurnCount,
	}
}

// Marshal encodes a snapshot as indented JSON.
func Marshal(snap types.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Unmarshal decodes a snapshot. Nil collections come back empty.
func Unmarshal(data []byte) (types.Snapshot, error) {
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Inventory == nil {
		snap.Inventory = map[string]int{}
	}
	if snap.Quests == nil {
		snap.Quests = []types.Quest{}
	}
	if snap.Offers == nil {
		snap.Offers = []types.Quest{}
	}
	return snap, nil
}

func copyQuests(qs []*types.Quest) []types.Quest {
	out := make([]types.Quest, 0, len(qs))
	for _, q := range qs {
		out = append(out, *q)
	}
	return out
}
