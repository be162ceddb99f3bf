// Package main provides optree, the command-line front end for lowering bound
// tree snapshots into operation trees. It dumps and verifies trees, keeps
// golden recordings of dumps and re-dumps snapshots as they change.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/orizon-lang/optree/internal/cli"
)

const tool = "optree"

var commands = []cli.CommandInfo{
	{
		Name:        "dump",
		Usage:       "optree dump [OPTIONS] <snapshot.json>...",
		Description: "Print the operation tree of every region",
		Examples:    []string{"optree dump --region Main testdata/program.json"},
		Flags:       append(commonFlags, regionFlag),
	},
	{
		Name:        "verify",
		Usage:       "optree verify [OPTIONS] <snapshot.json>...",
		Description: "Check operation trees against the structural invariants",
		Flags:       append(commonFlags, regionFlag),
	},
	{
		Name:        "watch",
		Usage:       "optree watch [OPTIONS] <snapshot.json>...",
		Description: "Re-dump snapshots whenever they change",
		Flags: append(commonFlags, regionFlag, cli.FlagInfo{
			Name: "debounce", Usage: "Quiet period before a change is processed", Default: "100ms",
		}),
	},
	{
		Name:        "golden",
		Usage:       "optree golden record|check [OPTIONS] <snapshot.json>...",
		Description: "Record dumps as references or check dumps against them",
		Examples: []string{
			"optree golden record testdata/*.json",
			"OPTREE_GOLDEN_DB=ci.db optree golden check testdata/*.json",
		},
		Flags: append(commonFlags, regionFlag, cli.FlagInfo{
			Name: "db", Usage: "Golden store path", Default: "optree-golden.db",
		}),
	},
	{
		Name:        "version",
		Usage:       "optree version [--json]",
		Description: "Show version information",
	},
}

var commonFlags = []cli.FlagInfo{
	{Name: "config", Usage: "Configuration file"},
	{Name: "verbose", Short: "v", Usage: "Verbose output"},
	{Name: "debug", Usage: "Debug output"},
	{Name: "jobs", Short: "j", Usage: "Snapshots processed concurrently"},
	{Name: "color", Usage: "auto, always or never", Default: "auto"},
}

var regionFlag = cli.FlagInfo{Name: "region", Usage: "Only the named region"}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch sub {
	case "help", "-h", "--help":
		if len(args) > 0 {
			if cmd, ok := lookupCommand(args[0]); ok {
				cli.PrintCommandUsage(os.Stdout, tool, cmd)
				return
			}
		}
		usage(os.Stdout)
		return
	case "version", "-V", "--version":
		cli.PrintVersion(os.Stdout, tool, hasFlag(args, "--json", "-json"))
		return
	case "dump":
		err = runDump(ctx, os.Stdout, args)
	case "verify":
		err = runVerify(ctx, os.Stdout, args)
	case "watch":
		err = runWatch(ctx, os.Stdout, args)
	case "golden":
		err = runGolden(ctx, os.Stdout, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", sub)
		usage(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	cli.PrintUsage(w, tool, commands)
}

func lookupCommand(name string) (cli.CommandInfo, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
	}
	return cli.CommandInfo{}, false
}

func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		for _, n := range names {
			if a == n {
				return true
			}
		}
	}
	return false
}

// options are the settings shared by every snapshot command.
type options struct {
	cfg    *cli.Config
	log    *cli.Logger
	region string
	files  []string
}

// parseOptions parses the common flags plus any registered by extra. The
// configuration file is read first, then environment overrides, then the
// flags that were given explicitly.
func parseOptions(name string, args []string, extra func(*flag.FlagSet)) (*options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file")
	verbose := fs.Bool("verbose", false, "verbose output")
	fs.BoolVar(verbose, "v", false, "verbose output")
	debug := fs.Bool("debug", false, "debug output")
	jobs := fs.Int("jobs", 0, "snapshots processed concurrently")
	fs.IntVar(jobs, "j", 0, "snapshots processed concurrently")
	color := fs.String("color", "", "auto, always or never")
	region := fs.String("region", "", "only the named region")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose", "v":
			cfg.Verbose = *verbose
		case "debug":
			cfg.Debug = *debug
		case "jobs", "j":
			cfg.Jobs = *jobs
		case "color":
			cfg.Color = *color
		}
	})
	if cfg.Jobs < 1 {
		return nil, fmt.Errorf("--jobs must be positive, got %d", cfg.Jobs)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("--color must be auto, always or never, got %q", cfg.Color)
	}

	if err := cli.ValidateArgs(fs.Args(), 1, commandUsage(name)); err != nil {
		return nil, err
	}

	log := cli.NewLogger(cfg.Verbose, cfg.Debug)
	log.Out = os.Stderr

	return &options{
		cfg:    cfg,
		log:    log,
		region: *region,
		files:  fs.Args(),
	}, nil
}

func commandUsage(name string) string {
	if cmd, ok := lookupCommand(name); ok {
		return cmd.Usage
	}
	return tool + " " + name
}
