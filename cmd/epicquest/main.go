// epicquest is a small terminal RPG: fight, explore, take quests, level up.
// Usage: epicquest [--version] [--plain] [--script <file>] [--trace]
//
//	[--config <file>] [--balance <file|dir>] [--seed <n>] [--name <hero>]
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/epicquest/cli"
	"github.com/nathoo/epicquest/config"
	"github.com/nathoo/epicquest/engine"
	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/loader"
	"github.com/nathoo/epicquest/logger"
	"github.com/nathoo/epicquest/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: epicquest [--version] [--plain] [--script <file>] [--trace] " +
	"[--config <file>] [--balance <file|dir>] [--seed <n>] [--name <hero>]\n"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and plays one session. Every failure is returned so that
// deferred cleanup runs before the process exits.
func run(args []string, stdout io.Writer) error {
	plain := false
	trace := false
	configFile := "epicquest.yaml"
	var scriptFile, balanceFile, name, seedArg string

	for i := 0; i < len(args); i++ {
		// Flags taking a value.
		var dst *string
		switch args[i] {
		case "--version":
			fmt.Fprintf(stdout, "epicquest %s (commit %s, built %s)\n", version, commit, date)
			return nil
		case "--plain":
			plain = true
			continue
		case "--trace":
			trace = true
			continue
		case "--script":
			dst = &scriptFile
		case "--config":
			dst = &configFile
		case "--balance":
			dst = &balanceFile
		case "--seed":
			dst = &seedArg
		case "--name":
			dst = &name
		default:
			return fmt.Errorf("unknown argument %q\n%s", args[i], usage)
		}
		if i+1 >= len(args) {
			return fmt.Errorf("%s requires a value", args[i])
		}
		i++
		*dst = args[i]
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Flags override config.
	if balanceFile != "" {
		cfg.BalanceFile = balanceFile
	}
	if name != "" {
		cfg.Hero.Name = name
	}
	if seedArg != "" {
		seed, err := strconv.ParseInt(seedArg, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	log, closeLog := logger.Setup(cfg.Logging)
	defer closeLog()

	b := balance.Default()
	if cfg.BalanceFile != "" {
		b, err = loader.Load(cfg.BalanceFile)
		if err != nil {
			log.Error("balance rejected", "path", cfg.BalanceFile, "err", err)
			return fmt.Errorf("loading balance: %w", err)
		}
		log.Info("balance loaded", "path", cfg.BalanceFile)
	}

	start := func(hero string) (*engine.Engine, error) {
		return engine.New(hero, b, engine.NewRNG(cfg.Seed), engine.WithLogger(log))
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c, err := newCLI(start, cfg.Hero.Name, trace, stdout)
		if err != nil {
			return err
		}
		c.In = f
		c.EchoInput = true
		c.Run()
		return nil
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c, err := newCLI(start, cfg.Hero.Name, trace, stdout)
		if err != nil {
			return err
		}
		c.Run()
		return nil
	}

	return tui.Run(tui.Starter(start), tui.Options{
		Name:         cfg.Hero.Name,
		FightDelay:   cfg.FightDelay(),
		ExploreDelay: cfg.ExploreDelay(),
	})
}

// newCLI starts a session for the plain view. Plain mode never prompts for
// a name; an empty name falls back to the default hero.
func newCLI(start func(string) (*engine.Engine, error), hero string, trace bool, out io.Writer) (*cli.CLI, error) {
	eng, err := start(hero)
	if err != nil {
		return nil, fmt.Errorf("starting game: %w", err)
	}
	fmt.Fprintf(out, "epicquest %s (seed %d)\n\n", version, eng.State.RNGSeed)
	c := cli.New(eng)
	c.Out = out
	c.Trace = trace
	return c, nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
