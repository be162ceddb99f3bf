package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/golden"
	"github.com/orizon-lang/optree/internal/watch"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// printer writes command output, optionally colored.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, mode string) printer {
	color := mode == "always"
	if mode == "auto" && os.Getenv("NO_COLOR") == "" {
		if f, ok := w.(*os.File); ok {
			color = isTerminal(f.Fd())
		}
	}
	return printer{w: w, color: color}
}

func (p printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p printer) header(path, region string) {
	fmt.Fprintln(p.w, p.paint(ansiBold+ansiCyan, fmt.Sprintf("== %s :: %s", path, region)))
}

// dump prints a tree dump, highlighting invalid nodes.
func (p printer) dump(text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if strings.Contains(line, "IsInvalid") {
			line = p.paint(ansiRed, strings.TrimSuffix(line, "\n")) + "\n"
		}
		io.WriteString(p.w, line)
	}
}

func (p printer) status(ok bool, format string, args ...interface{}) {
	tag, code := "ok  ", ansiGreen
	if !ok {
		tag, code = "FAIL", ansiRed
	}
	fmt.Fprintf(p.w, "%s %s\n", p.paint(code, tag), fmt.Sprintf(format, args...))
}

func runDump(ctx context.Context, w io.Writer, args []string) error {
	opts, err := parseOptions("dump", args, nil)
	if err != nil {
		return err
	}
	s := newSession(opts)
	results, err := s.process(ctx, opts.files)
	if err != nil {
		return err
	}
	return printDumps(newPrinter(w, opts.cfg.Color), results)
}

func printDumps(p printer, results []fileResult) error {
	failed := 0
	for _, f := range results {
		if f.err != nil {
			p.status(false, "%s: %v", f.path, f.err)
			failed++
			continue
		}
		for _, r := range f.regions {
			p.header(f.path, r.name)
			if r.err != nil {
				p.status(false, "%v", r.err)
				continue
			}
			p.dump(r.dump())
		}
		if f.failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
	}
	return nil
}

func runVerify(ctx context.Context, w io.Writer, args []string) error {
	opts, err := parseOptions("verify", args, nil)
	if err != nil {
		return err
	}
	results, err := newSession(opts).process(ctx, opts.files)
	if err != nil {
		return err
	}

	p := newPrinter(w, opts.cfg.Color)
	bad := 0
	for _, f := range results {
		if f.err != nil {
			p.status(false, "%s: %v", f.path, f.err)
			bad++
			continue
		}
		for _, r := range f.regions {
			switch {
			case r.err != nil:
				p.status(false, "%s :: %s: %v", f.path, r.name, r.err)
				bad++
			case len(r.violations) > 0:
				p.status(false, "%s :: %s (%d violations)", f.path, r.name, len(r.violations))
				for _, v := range r.violations {
					fmt.Fprintf(w, "    %s\n", v.Error())
					if f.source != nil {
						printIndented(w, f.source.Highlight(v.Node.Syntax().Span, 0), "    ")
					}
				}
				bad++
			default:
				p.status(true, "%s :: %s", f.path, r.name)
			}
		}
	}
	if bad > 0 {
		return errors.VerificationFailed(fmt.Sprintf("%d regions", bad), bad)
	}
	return nil
}

func printIndented(w io.Writer, text, indent string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line != "" {
			io.WriteString(w, indent+line)
		}
	}
}

func runGolden(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 || (args[0] != "record" && args[0] != "check") {
		return fmt.Errorf("usage: %s", commandUsage("golden"))
	}
	mode := args[0]

	var dbPath string
	opts, err := parseOptions("golden", args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&dbPath, "db", "", "golden store path")
	})
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = opts.cfg.GoldenDB
	}

	results, err := newSession(opts).process(ctx, opts.files)
	if err != nil {
		return err
	}

	store, err := golden.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	opts.log.Info("golden store %s", dbPath)

	p := newPrinter(w, opts.cfg.Color)
	if mode == "record" {
		return recordGolden(p, store, results)
	}
	return checkGolden(p, store, results)
}

func recordGolden(p printer, store *golden.Store, results []fileResult) error {
	failed := 0
	for _, f := range results {
		if f.failed() {
			p.status(false, "%s: not recorded, lowering failed", f.path)
			failed++
			continue
		}
		for _, r := range f.regions {
			if err := store.Record(f.fingerprint, r.name, r.dump()); err != nil {
				return err
			}
			p.status(true, "recorded %s :: %s (%s)", f.path, r.name, f.fingerprint.Short())
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d snapshots were not recorded", failed)
	}
	return nil
}

func checkGolden(p printer, store *golden.Store, results []fileResult) error {
	bad := 0
	for _, f := range results {
		if f.err != nil {
			p.status(false, "%s: %v", f.path, f.err)
			bad++
			continue
		}
		for _, r := range f.regions {
			if r.err != nil {
				p.status(false, "%s :: %s: %v", f.path, r.name, r.err)
				bad++
				continue
			}
			diff, err := store.Check(f.fingerprint, r.name, r.dump())
			if err != nil && !errors.HasCategory(err, errors.CategoryValidation) {
				return err
			}
			if err != nil {
				p.status(false, "%s :: %s: %v", f.path, r.name, err)
				for _, d := range diff {
					fmt.Fprintf(p.w, "    %s\n", d)
				}
				bad++
				continue
			}
			p.status(true, "%s :: %s", f.path, r.name)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d golden checks failed", bad)
	}
	return nil
}

func runWatch(ctx context.Context, w io.Writer, args []string) error {
	debounce := 100 * time.Millisecond
	opts, err := parseOptions("watch", args, func(fs *flag.FlagSet) {
		fs.DurationVar(&debounce, "debounce", debounce, "quiet period before a change is processed")
	})
	if err != nil {
		return err
	}

	s := newSession(opts)
	p := newPrinter(w, opts.cfg.Color)

	// events carry absolute paths; report them as they were given.
	given := make(map[string]string, len(opts.files))
	for _, f := range opts.files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		given[abs] = f
	}

	watcher, err := watch.New(opts.files, debounce)
	if err != nil {
		return err
	}
	defer watcher.Close()

	redump := func(files []string) error {
		results, err := s.process(ctx, files)
		if err != nil {
			return err
		}
		if err := printDumps(p, results); err != nil {
			opts.log.Warn("%v", err)
		}
		return nil
	}
	if err := redump(opts.files); err != nil {
		return err
	}
	opts.log.Info("watching %d snapshots", len(opts.files))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			path, ok := given[ev.Path]
			if !ok {
				continue
			}
			opts.log.Info("%s changed (%s)", path, ev.Op)
			s.reload(path)
			if ev.Op&(watch.OpRemove|watch.OpRename) != 0 {
				if _, err := os.Stat(path); err != nil {
					opts.log.Warn("%s is gone", path)
					continue
				}
			}
			if err := redump([]string{path}); err != nil {
				return err
			}
		case err := <-watcher.Errors():
			opts.log.Warn("watch: %v", err)
		}
	}
}
