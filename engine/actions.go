package engine

import (
	"github.com/nathoo/epicquest/engine/events"
	"github.com/nathoo/epicquest/engine/progression"
	"github.com/nathoo/epicquest/engine/quest"
	"github.com/nathoo/epicquest/types"
)

// actionKind names the timed actions a session can begin.
type actionKind string

const (
	actionFight   actionKind = "fight"
	actionExplore actionKind = "explore"
)

// pendingAction is an action whose random outcome is already drawn but not
// yet applied to the player.
type pendingAction struct {
	kind   actionKind
	target string
}

// BeginFight picks an enemy and starts a fight. The outcome is applied by
// Resolve; the caller decides how long to wait in between.
func (e *Engine) BeginFight() (types.Result, error) {
	if e.pending != nil {
		return types.Result{}, ErrActionPending
	}
	enemy := e.Balance.Enemies[e.RNG.Intn(len(e.Balance.Enemies))]
	e.pending = &pendingAction{kind: actionFight, target: enemy}

	ev := events.With(events.New(types.CategoryCombat, "Fighting %s...", DisplayName(enemy)), "enemy", enemy)
	return e.result([]types.Event{ev}), nil
}

// BeginExplore picks the item to be found and starts exploring.
func (e *Engine) BeginExplore() (types.Result, error) {
	if e.pending != nil {
		return types.Result{}, ErrActionPending
	}
	item := e.Balance.Items[e.RNG.Intn(len(e.Balance.Items))]
	e.pending = &pendingAction{kind: actionExplore, target: item}

	return e.result([]types.Event{events.New(types.CategoryInfo, "Exploring...")}), nil
}

// Resolve applies the pending action's outcome and turns in any quests it
// completed.
func (e *Engine) Resolve() (types.Result, error) {
	act := e.pending
	if act == nil {
		return types.Result{}, ErrNoPendingAction
	}

	var evts []types.Event
	var err error
	switch act.kind {
	case actionFight:
		evts = e.resolveFight(act.target)
	case actionExplore:
		evts, err = e.resolveExplore(act.target)
	}
	e.pending = nil
	if err != nil {
		return types.Result{}, err
	}

	e.State.TurnCount++
	e.Logger.Info("action resolved", "action", string(act.kind), "target", act.target, "turn", e.State.TurnCount)
	return e.result(evts), nil
}

// Fight begins and immediately resolves a fight.
func (e *Engine) Fight() (types.Result, error) {
	return e.beginAndResolve(e.BeginFight)
}

// Explore begins and immediately resolves an exploration.
func (e *Engine) Explore() (types.Result, error) {
	return e.beginAndResolve(e.BeginExplore)
}

func (e *Engine) beginAndResolve(begin func() (types.Result, error)) (types.Result, error) {
	started, err := begin()
	if err != nil {
		return types.Result{}, err
	}
	done, err := e.Resolve()
	if err != nil {
		return types.Result{}, err
	}
	done.Events = append(started.Events, done.Events...)
	return done, nil
}

func (e *Engine) resolveFight(enemy string) []types.Event {
	p := &e.State.Player
	xp, gold := e.Balance.FightXP, e.Balance.FightGold

	ev := events.New(types.CategoryCombat, "Defeated %s! +%d XP, +%d Gold", DisplayName(enemy), xp, gold)
	ev = events.With(ev, "enemy", enemy)
	evts := []types.Event{ev}

	evts = append(evts, progression.ApplyXP(p, xp, e.Balance)...)
	progression.AddGold(p, gold)

	return append(evts, e.turnIn(quest.RecordProgress(p, types.QuestHunt, enemy))...)
}

func (e *Engine) resolveExplore(item string) ([]types.Event, error) {
	p := &e.State.Player
	if err := progression.AddItem(p, item, 1, e.Balance); err != nil {
		return nil, err
	}

	ev := events.With(events.New(types.CategoryLoot, "Found %s!", DisplayName(item)), "item", item)
	evts := []types.Event{ev}

	return append(evts, e.turnIn(quest.RecordProgress(p, types.QuestCollect, item))...), nil
}

// turnIn completes each quest in acceptance order. Failures are logged and skipped.
func (e *Engine) turnIn(done []*types.Quest) []types.Event {
	var evts []types.Event
	for _, q := range done {
		out, err := quest.Complete(&e.State.Player, q, e.Balance)
		if err != nil {
			e.Logger.Error("quest turn-in failed", "quest", q.ID, "error", err)
			continue
		}
		evts = append(evts, out...)
	}
	return evts
}
