// Package cli provides plain terminal I/O, output formatting, and
// meta-command dispatch for epicquest.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/epicquest/engine"
	"github.com/nathoo/epicquest/engine/snapshot"
	"github.com/nathoo/epicquest/types"
)

// CLI handles line-based interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro and the quest board, then
// loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printResult(c.Engine.Intro())
	c.printResult(c.Engine.Offers())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Farewell, " + c.Engine.State.Player.Name + ".")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// HelpLines is the command reference shared by both views.
var HelpLines = []string{
	"System:",
	"  /quit         — Exit game",
	"  /help         — Show this help",
	"  /state        — Debug: dump current state as JSON",
	"  /trace        — Toggle debug trace output",
	"",
	"Game commands:",
	"  fight (f)             — Battle a random enemy",
	"  explore (e)           — Search for loot",
	"  offers (o)            — Show the quest board",
	"  accept <n|id> (a)     — Take a quest from the board",
	"  quests (q)            — Show active quests",
	"  inventory (i)         — Check what you're carrying",
	"  status (s)            — Show level, XP and gold",
	"  again (g)             — Repeat your last command",
}

func (c *CLI) cmdHelp() {
	for _, line := range HelpLines {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	data, err := snapshot.Marshal(c.Engine.Snapshot())
	if err != nil {
		c.printSystem(fmt.Sprintf("State dump failed: %v", err))
		return
	}
	c.printLine(string(data))
}

func (c *CLI) printTrace(result types.Result) {
	c.printSystem(fmt.Sprintf("[trace] Events: %d, turn %d, pending %t",
		len(result.Events), result.Snapshot.Turn, result.Pending))
	for _, ev := range result.Events {
		c.printSystem(fmt.Sprintf("[trace]   %s%s", ev.Category, formatData(ev.Data)))
	}
}

// formatData renders event data as " k=v ..." in key order.
func formatData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, data[k])
	}
	return b.String()
}

func (c *CLI) printResult(result types.Result) {
	for _, ev := range result.Events {
		c.printLine(FormatEvent(ev))
	}
}

// FormatEvent renders an event as a plain-text line.
func FormatEvent(ev types.Event) string {
	switch ev.Category {
	case types.CategoryLevelUp:
		return "*** " + ev.Text + " ***"
	case types.CategoryQuestCompleted:
		return "!! " + ev.Text
	case types.CategoryError:
		return "Error: " + ev.Text
	default:
		return ev.Text
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
