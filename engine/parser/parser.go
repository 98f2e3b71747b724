// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/epicquest/types"
)

// Canonical verbs.
const (
	VerbFight     = "fight"
	VerbExplore   = "explore"
	VerbQuests    = "quests"
	VerbOffers    = "offers"
	VerbAccept    = "accept"
	VerbInventory = "inventory"
	VerbStatus    = "status"
)

var verbAliases = map[string]string{
	// Fight
	"f":      VerbFight,
	"attack": VerbFight,
	"battle": VerbFight,
	"hunt":   VerbFight,
	"kill":   VerbFight,
	"hit":    VerbFight,

	// Explore
	"e":      VerbExplore,
	"x":      VerbExplore,
	"search": VerbExplore,
	"scout":  VerbExplore,
	"wander": VerbExplore,
	"loot":   VerbExplore,

	// Quest log
	"q":       VerbQuests,
	"quest":   VerbQuests,
	"journal": VerbQuests,
	"log":     VerbQuests,

	// Offer board
	"o":     VerbOffers,
	"board": VerbOffers,
	"new":   VerbOffers,
	"offer": VerbOffers,

	// Accept
	"a":    VerbAccept,
	"take": VerbAccept,

	// Miscellaneous
	"i":     VerbInventory,
	"inv":   VerbInventory,
	"bag":   VerbInventory,
	"s":     VerbStatus,
	"stats": VerbStatus,
	"me":    VerbStatus,
	"look":  VerbStatus,
	"l":     VerbStatus,
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"quest": true, "offer": true, "number": true, "no": true, "#": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripFillers(words[1:])

	return types.Intent{
		Verb:   verb,
		Object: strings.Join(rest, " "),
	}
}

// expandMultiWordVerbs handles "new quest", "look around", "accept quest" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "new", "show", "list":
		if words[1] == "quest" || words[1] == "quests" || words[1] == "offers" {
			if words[0] == "list" && words[1] == "quests" {
				return append([]string{VerbQuests}, words[2:]...)
			}
			return append([]string{VerbOffers}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return append([]string{VerbExplore}, words[2:]...)
		}
	case "quest":
		if words[1] == "board" {
			return append([]string{VerbOffers}, words[2:]...)
		}
		if words[1] == "log" {
			return append([]string{VerbQuests}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{VerbAccept}, words[2:]...)
		}
	}

	return words
}

// stripFillers removes articles and filler nouns from the argument words.
// A leading '#' on a slot number is dropped too.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if fillers[w] {
			continue
		}
		result = append(result, strings.TrimPrefix(w, "#"))
	}
	return result
}
