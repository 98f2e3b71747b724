package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/engine/state"
	"github.com/nathoo/epicquest/types"
)

func testState() *types.State {
	s := state.NewState("Aria", balance.Default())
	s.Player.XP = 15
	s.Player.Gold = 42
	s.Player.Inventory["potion"] = 2
	s.Player.Quests = append(s.Player.Quests, &types.Quest{
		ID: "q1", Title: "Hunt 2 goblin(s)", Kind: types.QuestHunt, Target: "goblin",
		Required: 2, Progress: 1, XP: 40, Gold: 20, Status: types.QuestActive,
	})
	s.Pool.Offers = append(s.Pool.Offers, &types.Quest{ID: "o1", Title: "Collect 3 potion(s)", Status: types.QuestOffered})
	s.TurnCount = 7
	return s
}

func TestTake_CopiesFields(t *testing.T) {
	snap := Take(testState())

	if snap.Name != "Aria" || snap.XP != 15 || snap.Gold != 42 || snap.Turn != 7 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Inventory["potion"] != 2 {
		t.Errorf("expected 2 potions, got %d", snap.Inventory["potion"])
	}
	if len(snap.Quests) != 1 || snap.Quests[0].Progress != 1 {
		t.Errorf("unexpected quests: %+v", snap.Quests)
	}
	if len(snap.Offers) != 1 || snap.Offers[0].ID != "o1" {
		t.Errorf("unexpected offers: %+v", snap.Offers)
	}
}

func TestTake_IsIsolated(t *testing.T) {
	s := testState()
	snap := Take(s)

	s.Player.Inventory["potion"] = 99
	s.Player.Quests[0].Progress = 2
	s.Pool.Offers[0].Status = types.QuestActive
	s.Player.Gold = 0

	if snap.Inventory["potion"] != 2 {
		t.Error("snapshot inventory changed with state")
	}
	if snap.Quests[0].Progress != 1 {
		t.Error("snapshot quest changed with state")
	}
	if snap.Offers[0].Status != types.QuestOffered {
		t.Error("snapshot offer changed with state")
	}
	if snap.Gold != 42 {
		t.Error("snapshot gold changed with state")
	}
}

func TestMarshal_ProducesValidJSON(t *testing.T) {
	data, err := Marshal(Take(testState()))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("Marshal output is not valid JSON")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["name"] != "Aria" {
		t.Errorf("expected name Aria, got %v", raw["name"])
	}
	if raw["xp_to_next"] != float64(100) {
		t.Errorf("expected xp_to_next 100, got %v", raw["xp_to_next"])
	}
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	orig := Take(testState())
	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Name != orig.Name || got.Level != orig.Level || got.Quests[0].Title != orig.Quests[0].Title {
		t.Errorf("round trip mismatch: %+v vs %+v", got, orig)
	}
}

func TestUnmarshal_MissingCollections(t *testing.T) {
	got, err := Unmarshal([]byte(`{"name":"x","level":1}`))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Inventory == nil || got.Quests == nil || got.Offers == nil {
		t.Errorf("expected non-nil collections, got %+v", got)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
