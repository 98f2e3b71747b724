package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/epicquest/engine"
	"github.com/nathoo/epicquest/engine/balance"
)

func testStarter(name string) (*engine.Engine, error) {
	return engine.New(name, balance.Default(), engine.NewRNG(1))
}

// startedModel returns a model whose session has already begun.
func startedModel(t *testing.T) Model {
	t.Helper()
	m := New(testStarter, Options{FightDelay: time.Millisecond, ExploreDelay: time.Millisecond})
	next, _ := m.startSession("Aria")
	return next.(Model)
}

// submit types input and presses enter.
func submit(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func rawText(m Model) string {
	parts := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		parts[i] = rl.text
	}
	return strings.Join(parts, "\n")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"goblin", "Goblin"},
		{"gold_coin", "Gold Coin"},
		{"skeleton", "Skeleton"},
		{"magic_ring_of_doom", "Magic Ring Of Doom"},
	}
	for _, tt := range tests {
		if got := displayName(tt.kind); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"[trace] Events: 2", kindTrace},
		{"[Trace output enabled.]", kindSystem},
		{"What is your name, hero?", kindInfo},
		{"", kindInfo},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWrapKeepsWidth(t *testing.T) {
	text := "Quest Completed: Hunt 4 skeleton(s)! +40 XP, +20 Gold"
	got := wordwrap.String(text, 20)
	for _, line := range strings.Split(got, "\n") {
		if len(strings.TrimSpace(line)) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != text {
		t.Errorf("wrapping changed the words: %q", got)
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("fight")
	h.Push("explore")
	h.Push("quests")

	for _, want := range []string{"quests", "explore", "fight", "fight"} {
		prev, ok := h.Prev("")
		if !ok || prev != want {
			t.Errorf("expected %q, got %q (ok=%v)", want, prev, ok)
		}
	}
}

func TestHistory_NextRestoresDraft(t *testing.T) {
	h := NewHistory(5)
	h.Push("fight")
	h.Push("explore")

	h.Prev("acc")
	h.Prev("")

	next, ok := h.Next()
	if !ok || next != "explore" {
		t.Errorf("expected 'explore', got %q (ok=%v)", next, ok)
	}
	next, ok = h.Next()
	if !ok || next != "acc" {
		t.Errorf("expected draft 'acc', got %q (ok=%v)", next, ok)
	}
	if _, ok := h.Next(); ok {
		t.Error("expected Next to report false once navigation ended")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(""); ok {
		t.Error("expected Prev on empty history to fail")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected Next on empty history to fail")
	}
}

func TestHistory_MaxSizeAndDuplicates(t *testing.T) {
	h := NewHistory(3)
	for _, cmd := range []string{"a", "b", "b", "c", "d"} {
		h.Push(cmd)
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", h.Len())
	}
	prev, _ := h.Prev("")
	if prev != "d" {
		t.Errorf("expected newest 'd', got %q", prev)
	}
	h.Prev("")
	prev, _ = h.Prev("")
	if prev != "b" {
		t.Errorf("expected oldest 'b', got %q", prev)
	}
}

func TestNaming_DefaultName(t *testing.T) {
	m := New(testStarter, Options{})
	m, _ = submit(t, m, "   ")

	if m.engine == nil {
		t.Fatal("expected session to start")
	}
	if m.engine.State.Player.Name != balance.DefaultHeroName {
		t.Errorf("expected default name, got %q", m.engine.State.Player.Name)
	}
	if !strings.Contains(rawText(m), "Welcome Brave Adventurer!") {
		t.Error("expected intro after naming")
	}
	if m.input.Prompt != "> " {
		t.Errorf("expected command prompt, got %q", m.input.Prompt)
	}
}

func TestNaming_PresetName(t *testing.T) {
	m := New(testStarter, Options{Name: "Bram"})
	next, _ := m.Update(nameMsg("Bram"))
	m = next.(Model)

	if m.engine == nil || m.engine.State.Player.Name != "Bram" {
		t.Fatal("expected session for Bram")
	}
	if !strings.Contains(rawText(m), "Available quests:") {
		t.Error("expected the quest board after the intro")
	}
}

func TestNaming_StartFailure(t *testing.T) {
	failing := func(string) (*engine.Engine, error) { return nil, errors.New("bad balance") }
	m := New(failing, Options{})
	m, _ = submit(t, m, "Aria")

	if m.engine != nil {
		t.Error("expected no session")
	}
	if !strings.Contains(rawText(m), "Could not start: bad balance") {
		t.Error("expected start failure message")
	}
}

func TestFight_BeginsThenResolvesOnTick(t *testing.T) {
	m := startedModel(t)

	m, cmd := submit(t, m, "fight")
	if cmd == nil {
		t.Fatal("expected a tick command")
	}
	if !m.busy || !m.engine.Pending() {
		t.Fatal("expected a pending fight")
	}
	if m.engine.State.Player.XP != 0 {
		t.Error("XP must not change before the fight resolves")
	}
	if !strings.Contains(rawText(m), "Fighting ") {
		t.Error("expected fight start line")
	}

	// A second action is refused while busy.
	m, _ = submit(t, m, "explore")
	if !strings.Contains(rawText(m), "You are busy.") {
		t.Error("expected busy message")
	}

	next, _ := m.Update(resolveMsg{})
	m = next.(Model)
	if m.busy || m.engine.Pending() {
		t.Error("expected the fight to be resolved")
	}
	if m.engine.State.Player.XP != 20 || m.engine.State.Player.Gold != 30 {
		t.Errorf("unexpected stats after fight: %+v", m.engine.State.Player)
	}
	if !strings.Contains(rawText(m), "Defeated ") {
		t.Error("expected fight result line")
	}
}

func TestReadOnlyCommandsWhileBusy(t *testing.T) {
	m := startedModel(t)
	m, _ = submit(t, m, "explore")
	m, _ = submit(t, m, "status")

	if !strings.Contains(rawText(m), "Aria | Level 1 | XP 0/100 | Gold 20") {
		t.Error("expected status while exploring")
	}
}

func TestAgainRepeatsLastCommand(t *testing.T) {
	m := startedModel(t)
	m, _ = submit(t, m, "status")
	m, _ = submit(t, m, "/trace")
	m, _ = submit(t, m, "g")

	if got := strings.Count(rawText(m), "Aria | Level 1"); got != 2 {
		t.Errorf("expected status twice, got %d", got)
	}
}

func TestStatusBar(t *testing.T) {
	m := startedModel(t)
	m.width = 120
	m.engine.State.Player.Inventory["gold_coin"] = 2
	m.engine.State.Player.Inventory["potion"] = 1

	bar := m.renderStatusBar()
	for _, want := range []string{"Aria", "Lv 1", "Gold 20", "2 Gold Coin", "1 Potion", "Quests: 0", "T:0"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %s", want, bar)
		}
	}

	m.width = 60
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Inv: 3") {
		t.Errorf("expected item count on a narrow bar: %s", bar)
	}
}

func TestStatusBar_BeforeNaming(t *testing.T) {
	m := New(testStarter, Options{})
	m.width = 60
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Name your hero") {
		t.Errorf("unexpected bar: %s", bar)
	}
}

func TestHandleMeta(t *testing.T) {
	m := startedModel(t)

	if _, quit := m.handleMeta("/quit"); !quit {
		t.Error("expected quit=true for /quit")
	}
	if _, quit := m.handleMeta("/exit"); !quit {
		t.Error("expected quit=true for /exit")
	}

	output, _ := m.handleMeta("/help")
	joined := strings.Join(output, "\n")
	for _, want := range []string{"/state", "fight", "PgUp/PgDn"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in help output", want)
		}
	}

	output, _ = m.handleMeta("/state")
	if !strings.Contains(strings.Join(output, "\n"), `"name": "Aria"`) {
		t.Errorf("expected JSON state dump, got %v", output)
	}

	output, _ = m.handleMeta("/bogus")
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := startedModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected trace enabled, got %v", output)
	}
	output, _ = m.handleMeta("/trace")
	if m.trace || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected trace disabled, got %v", output)
	}
}
