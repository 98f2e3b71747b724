// Package engine provides the session object and the Step() orchestrator that
// wires parsing, progression, quests and events into a single turn.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/engine/events"
	"github.com/nathoo/epicquest/engine/parser"
	"github.com/nathoo/epicquest/engine/quest"
	"github.com/nathoo/epicquest/engine/snapshot"
	"github.com/nathoo/epicquest/engine/state"
	"github.com/nathoo/epicquest/types"
)

var (
	ErrActionPending   = errors.New("an action is already under way")
	ErrNoPendingAction = errors.New("no action to resolve")
)

// Engine holds one game session: the balance table, the mutable state and
// the random source. It is not safe for concurrent use.
type Engine struct {
	Balance *types.Balance
	State   *types.State
	RNG     Source
	Logger  *slog.Logger

	listeners []events.Listener
	pending   *pendingAction
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithListener registers a listener for every emitted event.
func WithListener(l events.Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// New creates a session for the named hero and fills the offer pool.
func New(name string, b *types.Balance, src Source, opts ...Option) (*Engine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = balance.DefaultHeroName
	}

	e := &Engine{
		Balance: b,
		State:   state.NewState(name, b),
		RNG:     src,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.listeners = append([]events.Listener{e.logEvent}, e.listeners...)

	if r, ok := src.(*RNG); ok {
		e.State.RNGSeed = r.Seed()
	}
	e.State.Pool.Seed = e.State.RNGSeed
	if err := quest.Refill(&e.State.Pool, e.State.Player.Level, e.RNG, e.Balance); err != nil {
		return nil, fmt.Errorf("filling quest pool: %w", err)
	}

	e.Logger.Info("session started", "hero", name, "seed", e.State.RNGSeed)
	return e, nil
}

// Intro returns the welcome message.
func (e *Engine) Intro() types.Result {
	return e.result([]types.Event{
		events.New(types.CategoryInfo, "Welcome %s! Your epic adventure begins!", e.State.Player.Name),
	})
}

// Snapshot returns an immutable copy of the current state.
func (e *Engine) Snapshot() types.Snapshot {
	return snapshot.Take(e.State)
}

// Pending reports whether an action has begun and awaits Resolve.
func (e *Engine) Pending() bool {
	return e.pending != nil
}

// Step processes one player command and returns the result. Failures are
// reported as error events rather than returned.
func (e *Engine) Step(input string) types.Result {
	intent := parser.Parse(input)

	if intent.Verb == "" {
		return e.result([]types.Event{events.New(types.CategoryInfo, "What do you want to do?")})
	}

	var res types.Result
	var err error

	switch intent.Verb {
	case parser.VerbFight:
		res, err = e.Fight()
	case parser.VerbExplore:
		res, err = e.Explore()
	case parser.VerbAccept:
		if intent.Object == "" {
			return e.result([]types.Event{events.New(types.CategoryInfo, "Accept which quest? Type 'offers' to see the board.")})
		}
		res, err = e.AcceptQuest(intent.Object)
	case parser.VerbOffers:
		res = e.Offers()
	case parser.VerbQuests:
		res, err = e.Quests()
	case parser.VerbInventory:
		res = e.Inventory()
	case parser.VerbStatus:
		res = e.Status()
	default:
		return e.result([]types.Event{events.New(types.CategoryError,
			"I don't understand %q. Try fight, explore, quests, offers or accept <n>.", input)})
	}

	if err != nil {
		e.Logger.Warn("command failed", "input", input, "error", err)
		return e.result([]types.Event{events.Error(err)})
	}
	return res
}

// AcceptQuest accepts the offer named by ref: a 1-based slot number, a quest
// id, or an unambiguous id prefix.
func (e *Engine) AcceptQuest(ref string) (types.Result, error) {
	q, ok := state.FindOffer(e.State, ref)
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %q", quest.ErrQuestNotInPool, ref)
	}
	return e.AcceptOffer(q)
}

// AcceptSlot accepts the n-th offer on the board (1-based).
func (e *Engine) AcceptSlot(n int) (types.Result, error) {
	offers := e.State.Pool.Offers
	if n < 1 || n > len(offers) {
		return types.Result{}, fmt.Errorf("%w: slot %d", quest.ErrQuestNotInPool, n)
	}
	return e.AcceptOffer(offers[n-1])
}

// AcceptOffer accepts a quest by identity. It must be one of the current offers.
func (e *Engine) AcceptOffer(q *types.Quest) (types.Result, error) {
	if e.pending != nil {
		return types.Result{}, ErrActionPending
	}
	p := &e.State.Player
	if err := quest.Accept(p, &e.State.Pool, q, e.RNG, e.Balance); err != nil {
		return types.Result{}, err
	}
	ev := events.With(events.New(types.CategoryQuestAccepted, "Accepted quest: %s", q.Title), "quest", q.ID)
	return e.result([]types.Event{ev}), nil
}

// Offers lists the quests currently on the board.
func (e *Engine) Offers() types.Result {
	evts := []types.Event{events.New(types.CategoryInfo, "Available quests:")}
	for i, q := range e.State.Pool.Offers {
		evts = append(evts, events.New(types.CategoryInfo, "%d. %s (Rewards: %d XP, %d Gold) [%s]",
			i+1, q.Title, q.XP, q.Gold, shortID(q.ID)))
	}
	return e.result(evts)
}

// Quests turns in any completed quests, then lists the active ones.
func (e *Engine) Quests() (types.Result, error) {
	if e.pending != nil {
		return types.Result{}, ErrActionPending
	}
	evts := quest.Sweep(&e.State.Player, e.Balance)

	if len(e.State.Player.Quests) == 0 {
		evts = append(evts, events.New(types.CategoryInfo, "No active quests."))
		return e.result(evts), nil
	}
	evts = append(evts, events.New(types.CategoryInfo, "Active quests:"))
	for _, q := range e.State.Player.Quests {
		evts = append(evts, events.New(types.CategoryInfo, "%s: %d/%d (Rewards: %d XP, %d Gold)",
			q.Title, q.Progress, q.Required, q.XP, q.Gold))
	}
	return e.result(evts), nil
}

// Inventory lists the items the hero carries.
func (e *Engine) Inventory() types.Result {
	held := state.HeldItems(e.State)
	if len(held) == 0 {
		return e.result([]types.Event{events.New(types.CategoryInfo, "You are carrying nothing.")})
	}
	parts := make([]string, 0, len(held))
	for _, kind := range held {
		parts = append(parts, fmt.Sprintf("%d %s", state.ItemCount(e.State, kind), DisplayName(kind)))
	}
	return e.result([]types.Event{events.New(types.CategoryInfo, "You are carrying: %s.", strings.Join(parts, ", "))})
}

// Status summarizes the hero's stats.
func (e *Engine) Status() types.Result {
	p := e.State.Player
	return e.result([]types.Event{events.New(types.CategoryInfo, "%s | Level %d | XP %d/%d | Gold %d",
		p.Name, p.Level, p.XP, p.XPToNext, p.Gold)})
}

// DisplayName turns a kind identifier into display text: "gold_coin" → "gold coin".
func DisplayName(kind string) string {
	return strings.ReplaceAll(kind, "_", " ")
}

// result dispatches events to listeners and attaches a fresh snapshot.
func (e *Engine) result(evts []types.Event) types.Result {
	if pos, ok := e.RNG.(interface{ Position() int64 }); ok {
		e.State.RNGPosition = pos.Position()
	}
	events.Dispatch(evts, e.listeners)
	return types.Result{
		Events:   evts,
		Snapshot: e.Snapshot(),
		Pending:  e.pending != nil,
	}
}

func (e *Engine) logEvent(ev types.Event) {
	e.Logger.Debug("event", "category", string(ev.Category), "text", ev.Text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
