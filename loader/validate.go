package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled balance. Warnings are printed to stderr and
// do not fail the load.
func validate(b *types.Balance) error {
	ve := checkBalance(b)

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func checkBalance(b *types.Balance) *ValidationError {
	ve := &ValidationError{}

	problems, err := balance.Problems(b)
	if err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	ve.Errors = append(ve.Errors, problems...)

	for _, enemy := range b.Enemies {
		for _, item := range b.Items {
			if enemy == item {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%q is both an enemy and an item", enemy))
			}
		}
	}

	if b.LevelFactor == 1 {
		ve.Warnings = append(ve.Warnings, "level_factor is 1: the XP threshold never grows")
	}
	if b.FightXP == 0 {
		ve.Warnings = append(ve.Warnings, "fight.xp is 0: fights award no XP")
	}
	for _, kind := range append(append([]string(nil), b.Enemies...), b.Items...) {
		if strings.ContainsAny(kind, " \t") {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("kind %q contains whitespace; use underscores", kind))
		}
	}

	return ve
}
