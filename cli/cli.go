// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the world explorer.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/nathoo/apworld/engine"
	"github.com/nathoo/apworld/engine/save"
	"github.com/nathoo/apworld/types"
	"golang.org/x/term"
)

var (
	styleTitle  = color.Style{color.FgWhite, color.OpBold}
	styleSystem = color.Style{color.FgCyan}
	styleTrace  = color.Style{color.FgGray}
	styleWarn   = color.Style{color.FgYellow, color.OpBold}
)

// CLI handles terminal interaction with the user.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Log       *slog.Logger
	SaveDir   string
	Trace     bool
	Color     bool   // colour system and trace lines
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine. Colour is on when stdout is
// a terminal.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".apworld", "saves")
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		Log:     slog.Default(),
		SaveDir: saveDir,
		Color:   term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Run starts the explorer loop. It prints the goal summary, then loops:
// prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printHeader(c.Engine.World)
	c.printResult(c.Engine.Step("goal"))

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

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

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

// handleMeta dispatches meta-commands. Returns true if the explorer should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

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

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	e := c.Engine
	data, err := save.Save(e.Options, e.World.RunID, e.Inventory, e.Log)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Session saved to %s.", name))
}

// cmdLoad regenerates the saved world from its options, then restores the
// inventory. The same options and seed always rebuild the same world.
func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if !strings.EqualFold(sd.Game, c.Engine.Defs.Game.Title) && !strings.EqualFold(sd.Game, c.Engine.Options.Game) {
		c.printSystem(fmt.Sprintf("Load failed: save is for %q, not %q.", sd.Game, c.Engine.Defs.Game.Title))
		return
	}

	eng, err := engine.New(c.Engine.Defs, sd.Options, c.Log)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	eng.Restore(sd.Inventory, sd.CommandLog)
	c.Engine = eng
	c.printSystem(fmt.Sprintf("Session loaded from %s (%d commands).", name, len(sd.CommandLog)))

	c.printResult(c.Engine.Step("goal"))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  Save session (default: quicksave)",
		"  /load [name]  Load session (default: quicksave)",
		"  /quit         Exit",
		"  /help         Show this help",
		"  /state        Dump options and selection",
		"  /trace        Toggle trace output",
		"",
		"Explorer commands:",
		"  regions (ls)             List regions, * marks reachable",
		"  region <name> (l)        Exits, locations and their rules",
		"  rule <name> (why)        Rule of an entrance or location",
		"  give <item> [n]          Add items to the inventory",
		"  take <item> [n]          Remove items",
		"  inventory (i)            Show the inventory",
		"  reset                    Back to the starting items",
		"  reach                    Reachable regions and location count",
		"  checks (c)               Accessible locations",
		"  path [<a> to] <b>        Route between regions",
		"  goal                     Objective and whether it is reachable",
		"  ids                      Location identifiers",
		"  again (g)                Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	sel := e.World.Selection
	c.printSystem(fmt.Sprintf("Run: %s", e.World.RunID))
	c.printSystem(fmt.Sprintf("Options: %+v", e.Options))
	c.printSystem(fmt.Sprintf("Seed: %d  Branch: %d  Objective: %s", sel.Seed, sel.Branch, sel.Objective))
	c.printSystem(fmt.Sprintf("Selected: %s", strings.Join(sel.Selected, ", ")))
	c.printSystem(fmt.Sprintf("Required: %s", strings.Join(sel.Required, ", ")))
	c.printSystem(fmt.Sprintf("Inventory: %v", map[string]int(e.Inventory)))
	c.printSystem(fmt.Sprintf("Commands: %d  RNG draws: %d", len(e.Log), e.RNG.Position()))
}

func (c *CLI) printHeader(w *types.World) {
	title := fmt.Sprintf("%s (seed %d)", w.Game, w.Selection.Seed)
	if c.Color {
		title = styleTitle.Sprint(title)
	}
	c.printLine(title)
	c.printLine("")
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range result.Trace {
		if c.Color {
			line = styleTrace.Sprint(line)
		}
		c.printLine(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		if c.Color && strings.HasPrefix(line, "warning: ") {
			line = styleWarn.Sprint(line)
		}
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	text = fmt.Sprintf("[%s]", text)
	if c.Color {
		text = styleSystem.Sprint(text)
	}
	fmt.Fprintln(c.Out, text)
}
