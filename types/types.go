// Package types defines the shared data structures for the epicquest engine.
// This package contains only type definitions. No logic, no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
}

// QuestKind is what a quest counts toward.
type QuestKind string

const (
	QuestHunt    QuestKind = "hunt"    // defeated enemies
	QuestCollect QuestKind = "collect" // found items
)

// QuestStatus moves strictly forward: offered → active → completed.
type QuestStatus string

const (
	QuestOffered   QuestStatus = "offered"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
)

// Quest is a single hunt or collect objective with its rewards.
type Quest struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Kind     QuestKind   `json:"kind"`
	Target   string      `json:"target"`
	Required int         `json:"required"`
	Progress int         `json:"progress"`
	XP       int         `json:"xp"`
	Gold     int         `json:"gold"`
	Status   QuestStatus `json:"status"`
}

// Player holds the hero's runtime record.
type Player struct {
	Name      string
	Level     int
	XP        int
	XPToNext  int
	Gold      int
	Inventory map[string]int
	Quests    []*Quest // acceptance order
}

// Pool holds the quests currently on offer. Offer ids are derived from Seed
// and Issued, so a replayed session issues the same ids.
type Pool struct {
	Offers []*Quest
	Seed   int64
	Issued int
}

// Source supplies uniform random draws. Intn returns a value in [0, n).
type Source interface {
	Intn(n int) int
}

// State is the complete mutable session state.
type State struct {
	Player      Player
	Pool        Pool
	TurnCount   int
	RNGSeed     int64
	RNGPosition int64
}

// Category tags an event so the view can style it.
type Category string

const (
	CategoryCombat         Category = "combat"
	CategoryLoot           Category = "loot"
	CategoryXP             Category = "xp"
	CategoryLevelUp        Category = "level_up"
	CategoryQuestAccepted  Category = "quest_accepted"
	CategoryQuestCompleted Category = "quest_completed"
	CategoryInfo           Category = "info"
	CategoryError          Category = "error"
)

// Event is a human-readable, categorized record of something that happened.
type Event struct {
	Category Category       `json:"category"`
	Text     string         `json:"text"`
	Data     map[string]any `json:"data,omitempty"`
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Name      string         `json:"name"`
	Level     int            `json:"level"`
	XP        int            `json:"xp"`
	XPToNext  int            `json:"xp_to_next"`
	Gold      int            `json:"gold"`
	Inventory map[string]int `json:"inventory"`
	Quests    []Quest        `json:"quests"`
	Offers    []Quest        `json:"offers"`
	Turn      int            `json:"turn"`
}

// Result is the output of a single game step.
type Result struct {
	Events   []Event
	Snapshot Snapshot
	Pending  bool // an action was begun and awaits Resolve
}

// QuestTemplate holds the generation range and reward formula for one quest kind.
// Rewards are Base + PerLevel*level.
type QuestTemplate struct {
	MinCount     int `validate:"gte=1"`
	MaxCount     int `validate:"gtefield=MinCount"`
	XPBase       int `validate:"gte=0"`
	XPPerLevel   int `validate:"gte=0"`
	GoldBase     int `validate:"gte=0"`
	GoldPerLevel int `validate:"gte=0"`
}

// Balance is the numeric tuning table for a session.
type Balance struct {
	StartLevel    int      `validate:"gte=1"`
	StartXPToNext int      `validate:"gt=0"`
	StartGold     int      `validate:"gte=0"`
	LevelFactor   float64  `validate:"gte=1"`
	FightXP       int      `validate:"gte=0"`
	FightGold     int      `validate:"gte=0"`
	PoolSize      int      `validate:"gte=1"`
	Enemies       []string `validate:"min=1,unique,dive,required"`
	Items         []string `validate:"min=1,unique,dive,required"`
	Hunt          QuestTemplate
	Collect       QuestTemplate
}
