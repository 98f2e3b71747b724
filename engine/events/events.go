// Package events builds categorized events and fans them out to listeners.
// Listeners observe events; they never produce new ones.
package events

import (
	"fmt"

	"github.com/nathoo/epicquest/types"
)

// Listener receives every event emitted by a step.
type Listener func(types.Event)

// Dispatch delivers each event to every listener, in order. Single pass.
func Dispatch(evts []types.Event, listeners []Listener) {
	for _, ev := range evts {
		for _, l := range listeners {
			l(ev)
		}
	}
}

// New builds an event with formatted text.
func New(cat types.Category, format string, args ...any) types.Event {
	return types.Event{Category: cat, Text: fmt.Sprintf(format, args...)}
}

// With returns a copy of ev carrying an extra data key.
func With(ev types.Event, key string, value any) types.Event {
	data := make(map[string]any, len(ev.Data)+1)
	for k, v := range ev.Data {
		data[k] = v
	}
	data[key] = value
	ev.Data = data
	return ev
}

// XPGained reports an XP award.
func XPGained(amount int) types.Event {
	return With(New(types.CategoryXP, "Gained %d XP!", amount), "amount", amount)
}

// LevelUp reports reaching a new level.
func LevelUp(level int) types.Event {
	return With(New(types.CategoryLevelUp, "LEVEL UP! You are now level %d!", level), "level", level)
}

// Error reports a failed command.
func Error(err error) types.Event {
	return New(types.CategoryError, "%s", err.Error())
}
