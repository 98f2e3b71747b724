// Package quest generates quest offers and drives each quest through
// offered → active → completed → turned in.
package quest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/engine/events"
	"github.com/nathoo/epicquest/engine/progression"
	"github.com/nathoo/epicquest/types"
)

var (
	ErrQuestNotInPool   = errors.New("quest is not on offer")
	ErrQuestNotActive   = errors.New("quest is not active")
	ErrAlreadyCompleted = errors.New("quest already completed")
	ErrQuestIncomplete  = errors.New("quest objectives not met")
	ErrEmptyPool        = errors.New("quest pool has no free slots")
)

// Source is the random source quests draw from.
type Source = types.Source

var (
	kinds   = []types.QuestKind{types.QuestHunt, types.QuestCollect}
	idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("epicquest/quest"))
)

// Generate creates one offered quest scaled to level. The quest has no id
// until a pool issues it. Draw order is fixed: kind, target, count.
func Generate(level int, src Source, b *types.Balance) *types.Quest {
	kind := kinds[src.Intn(len(kinds))]
	targets := balance.Targets(b, kind)
	target := targets[src.Intn(len(targets))]
	tpl := balance.Template(b, kind)
	need := tpl.MinCount + src.Intn(tpl.MaxCount-tpl.MinCount+1)

	return &types.Quest{
		Title:    Title(kind, need, target),
		Kind:     kind,
		Target:   target,
		Required: need,
		XP:       tpl.XPBase + tpl.XPPerLevel*level,
		Gold:     tpl.GoldBase + tpl.GoldPerLevel*level,
		Status:   types.QuestOffered,
	}
}

// Title derives a quest's display title.
func Title(kind types.QuestKind, need int, target string) string {
	verb := "Hunt"
	if kind == types.QuestCollect {
		verb = "Collect"
	}
	return fmt.Sprintf("%s %d %s(s)", verb, need, strings.ReplaceAll(target, "_", " "))
}

// Refill tops the pool up to the balance's pool size.
func Refill(pool *types.Pool, level int, src Source, b *types.Balance) error {
	if len(pool.Offers) > b.PoolSize {
		return fmt.Errorf("%w: %d offers for %d slots", ErrEmptyPool, len(pool.Offers), b.PoolSize)
	}
	for len(pool.Offers) < b.PoolSize {
		pool.Offers = append(pool.Offers, issue(pool, Generate(level, src, b)))
	}
	return nil
}

// issue stamps q with the pool's next offer id.
func issue(pool *types.Pool, q *types.Quest) *types.Quest {
	pool.Issued++
	name := strconv.FormatInt(pool.Seed, 10) + "/" + strconv.Itoa(pool.Issued)
	q.ID = uuid.NewSHA1(idSpace, []byte(name)).String()
	return q
}

// Accept moves an offered quest onto the player's quest list and replaces
// its pool slot with a fresh offer. The pool is untouched on error.
func Accept(p *types.Player, pool *types.Pool, q *types.Quest, src Source, b *types.Balance) error {
	idx := indexOf(pool.Offers, q)
	if idx < 0 || q.Status != types.QuestOffered {
		return fmt.Errorf("%w: %s", ErrQuestNotInPool, describe(q))
	}

	q.Status = types.QuestActive
	p.Quests = append(p.Quests, q)
	pool.Offers[idx] = issue(pool, Generate(p.Level, src, b))
	return nil
}

// RecordProgress advances every active quest of the given kind and target by
// one. It returns the quests that became completed, in acceptance order.
func RecordProgress(p *types.Player, kind types.QuestKind, target string) []*types.Quest {
	var done []*types.Quest
	for _, q := range p.Quests {
		if q.Status != types.QuestActive || q.Kind != kind || q.Target != target {
			continue
		}
		q.Progress++
		if q.Progress >= q.Required {
			q.Progress = q.Required
			q.Status = types.QuestCompleted
			done = append(done, q)
		}
	}
	return done
}

// Complete pays out a completed quest and removes it from the player's list.
// A quest that is not in completed status within the player's list fails
// with ErrQuestNotActive; a second completion also wraps ErrAlreadyCompleted.
func Complete(p *types.Player, q *types.Quest, b *types.Balance) ([]types.Event, error) {
	idx := indexOf(p.Quests, q)
	if idx < 0 {
		if q != nil && q.Status == types.QuestCompleted {
			return nil, fmt.Errorf("%w: %w: %s", ErrQuestNotActive, ErrAlreadyCompleted, describe(q))
		}
		return nil, fmt.Errorf("%w: %s", ErrQuestNotActive, describe(q))
	}
	if q.Status != types.QuestCompleted {
		return nil, fmt.Errorf("%w: %w: %s (%d/%d)", ErrQuestNotActive, ErrQuestIncomplete, q.Title, q.Progress, q.Required)
	}

	evts := []types.Event{completedEvent(q)}
	evts = append(evts, progression.ApplyXP(p, q.XP, b)...)
	progression.AddGold(p, q.Gold)
	p.Quests = append(p.Quests[:idx], p.Quests[idx+1:]...)
	return evts, nil
}

// Sweep turns in every quest left in completed status.
func Sweep(p *types.Player, b *types.Balance) []types.Event {
	var ready []*types.Quest
	for _, q := range p.Quests {
		if q.Status == types.QuestCompleted {
			ready = append(ready, q)
		}
	}
	var evts []types.Event
	for _, q := range ready {
		out, err := Complete(p, q, b)
		if err != nil {
			continue
		}
		evts = append(evts, out...)
	}
	return evts
}

func completedEvent(q *types.Quest) types.Event {
	ev := events.New(types.CategoryQuestCompleted, "Quest Completed: %s! +%d XP, +%d Gold", q.Title, q.XP, q.Gold)
	ev = events.With(ev, "quest", q.ID)
	ev = events.With(ev, "xp", q.XP)
	return events.With(ev, "gold", q.Gold)
}

func indexOf(list []*types.Quest, q *types.Quest) int {
	if q == nil {
		return -1
	}
	for i, candidate := range list {
		if candidate == q {
			return i
		}
	}
	return -1
}

func describe(q *types.Quest) string {
	if q == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s [%s]", q.Title, q.ID)
}
