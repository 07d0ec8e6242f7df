// apworld generates and explores multiworld content for Elder Scrolls
// Online and Duck Life 4.
//
// Usage: apworld [--version] [--plain] [--script <file>] [--trace]
//
//	[--options <file>] [--world <dir>] [--seed <n>]
//	[--spoiler <file>] [--watch [<file>]] <game>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/nathoo/apworld/cli"
	"github.com/nathoo/apworld/client"
	"github.com/nathoo/apworld/engine"
	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/engine/save"
	"github.com/nathoo/apworld/internal/config"
	"github.com/nathoo/apworld/internal/logger"
	"github.com/nathoo/apworld/loader"
	"github.com/nathoo/apworld/options"
	"github.com/nathoo/apworld/tui"
	"github.com/nathoo/apworld/types"
	"github.com/nathoo/apworld/worlds"
	"golang.org/x/term"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: apworld [--version] [--plain] [--script <file>] [--trace] [--options <file>] [--world <dir>] [--seed <n>] [--spoiler <file>] [--watch [<file>]] <game>"

type flags struct {
	plain       bool
	trace       bool
	script      string
	optionsFile string
	worldDir    string
	seed        *int64
	spoiler     string
	watch       bool
	watchPath   string
	game        string
}

func main() {
	f, ok := parseArgs(os.Args[1:])
	if !ok {
		return
	}

	cfg := config.Load()
	log := logger.Setup(cfg, os.Stderr)
	if f.worldDir == "" {
		f.worldDir = cfg.WorldDir
	}

	defs, err := loadWorld(f)
	if err != nil {
		fail("Error loading world: %v", err)
	}

	opts, err := buildOptions(f, defs)
	if err != nil {
		fail("Error reading options: %v", err)
	}

	eng, err := engine.New(defs, opts, log)
	if err != nil {
		if engine.IsConfigError(err) {
			fail("Invalid options: %v", err)
		}
		fail("Error generating world: %v", err)
	}

	switch {
	case f.spoiler != "":
		if err := writeSpoiler(eng, f.spoiler); err != nil {
			fail("Error writing spoiler: %v", err)
		}
		fmt.Printf("Spoiler written to %s.\n", f.spoiler)

	case f.watch:
		if err := watch(eng, f.watchPath, log); err != nil {
			fail("Error: %v", err)
		}

	case f.script != "":
		in, err := os.Open(f.script)
		if err != nil {
			fail("Error opening script: %v", err)
		}
		defer in.Close()
		c := cli.New(eng)
		c.In = in
		c.Log = log
		c.EchoInput = true
		c.Trace = f.trace
		c.Color = false
		c.Run()

	case f.plain || !term.IsTerminal(int(os.Stdout.Fd())):
		c := cli.New(eng)
		c.Log = log
		c.Trace = f.trace
		c.Run()

	default:
		if err := tui.Run(eng, log); err != nil {
			fail("Error: %v", err)
		}
	}
}

// parseArgs reads the command line by hand. It returns false when the
// program should exit without doing anything else.
func parseArgs(args []string) (flags, bool) {
	var f flags
	value := func(i *int, name string) string {
		if *i+1 >= len(args) {
			fail("%s requires a value", name)
		}
		*i++
		return args[*i]
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("apworld %s (commit %s, built %s)\n", version, commit, date)
			return f, false
		case "--help", "-h":
			fmt.Println(usage)
			fmt.Printf("Built-in worlds: %s\n", strings.Join(worlds.Names(), ", "))
			return f, false
		case "--plain":
			f.plain = true
		case "--trace":
			f.trace = true
		case "--script":
			f.script = value(&i, "--script")
		case "--options":
			f.optionsFile = value(&i, "--options")
		case "--world":
			f.worldDir = value(&i, "--world")
		case "--spoiler":
			f.spoiler = value(&i, "--spoiler")
		case "--seed":
			n, err := strconv.ParseInt(value(&i, "--seed"), 10, 64)
			if err != nil {
				fail("--seed: %v", err)
			}
			f.seed = &n
		case "--watch":
			f.watch = true
			if i+1 < len(args) && strings.HasSuffix(args[i+1], ".lua") {
				i++
				f.watchPath = args[i]
			}
		default:
			if strings.HasPrefix(args[i], "--") {
				fail("unknown flag %s\n%s", args[i], usage)
			}
			if f.game == "" {
				f.game = args[i]
			}
		}
	}

	if f.game == "" && f.worldDir == "" && f.optionsFile == "" {
		fail("%s", usage)
	}
	return f, true
}

// loadWorld prefers a Lua world directory, then the game named on the
// command line, then the game named in the options file.
func loadWorld(f flags) (*graph.Defs, error) {
	if f.worldDir != "" {
		return loader.Load(f.worldDir)
	}
	name := f.game
	if name == "" {
		opts, err := options.Load(f.optionsFile)
		if err != nil {
			return nil, err
		}
		name = opts.Game
	}
	return worlds.Lookup(name)
}

func buildOptions(f flags, defs *graph.Defs) (types.Options, error) {
	opts := options.Default(defs.Game.Title)
	if f.optionsFile != "" {
		loaded, err := options.Load(f.optionsFile)
		if err != nil {
			return types.Options{}, err
		}
		opts = loaded
	}
	if opts.Game == "" {
		opts.Game = defs.Game.Title
	}
	if f.seed != nil {
		opts.Seed = *f.seed
	}
	return opts, nil
}

func writeSpoiler(eng *engine.Engine, path string) error {
	data, err := save.Export(eng.World)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// watch follows the add-on's SavedVariables and prints every new check
// until interrupted. The received items file is cleared first so the add-on
// starts from an empty list.
func watch(eng *engine.Engine, path string, log *slog.Logger) error {
	live, err := client.LiveDir()
	if err != nil {
		return err
	}
	if path == "" {
		path = filepath.Join(live, client.SavedVariablesFile)
	}
	items := client.NewItemsWriter(filepath.Join(live, client.ItemsFile))
	if err := items.Reset(); err != nil {
		log.Warn("could not reset received items", "path", items.Path, "error", err)
	}

	names := make(map[int]string, len(eng.World.LocationIDs))
	for name, id := range eng.World.LocationIDs {
		names[id] = name
	}
	sink := client.SinkFunc(func(_ context.Context, ids []int) error {
		for _, id := range ids {
			name, ok := names[id]
			if !ok {
				name = "(not in this world)"
			}
			fmt.Printf("checked %d %s\n", id, name)
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl+C to stop).\n", path)
	err = client.NewPoller(path, sink, log).Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
