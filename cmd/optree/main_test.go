package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const program = "testdata/program.json"

func TestDumpPrintsEveryRegion(t *testing.T) {
	var out bytes.Buffer
	if err := runDump(context.Background(), &out, []string{"--color", "never", program}); err != nil {
		t.Fatalf("dump: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"== testdata/program.json :: Main",
		"== testdata/program.json :: Broken",
		"VariableDeclarationGroup",
		"CompoundAssignment",
		"Invocation",
		"IsInvalid",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dump lacks %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("colored output with --color never")
	}
}

func TestDumpSingleRegion(t *testing.T) {
	var out bytes.Buffer
	if err := runDump(context.Background(), &out, []string{"--color", "never", "--region", "Broken", program}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Contains(out.String(), ":: Main") {
		t.Errorf("unselected region dumped:\n%s", out.String())
	}

	err := runDump(context.Background(), &out, []string{"--region", "Nowhere", program})
	if err == nil {
		t.Error("dump of a missing region succeeded")
	}
}

func TestColorAlways(t *testing.T) {
	var out bytes.Buffer
	if err := runDump(context.Background(), &out, []string{"--color", "always", "--region", "Broken", program}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out.String(), ansiRed) {
		t.Errorf("invalid node not highlighted:\n%q", out.String())
	}
}

func TestVerify(t *testing.T) {
	var out bytes.Buffer
	if err := runVerify(context.Background(), &out, []string{"--color", "never", program}); err != nil {
		t.Fatalf("verify: %v\n%s", err, out.String())
	}
	if n := strings.Count(out.String(), "ok  "); n != 2 {
		t.Errorf("verify reported %d passing regions, want 2:\n%s", n, out.String())
	}
}

func TestUnreadableSnapshot(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"format": "3.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := runDump(context.Background(), &out, []string{"--color", "never", program, bad})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %v, want one failed snapshot", err)
	}
	if !strings.Contains(out.String(), "UNSUPPORTED_FORMAT") {
		t.Errorf("format failure not reported:\n%s", out.String())
	}
}

func TestGoldenRecordThenCheck(t *testing.T) {
	db := filepath.Join(t.TempDir(), "golden.db")
	snap := filepath.Join(t.TempDir(), "program.json")
	data, err := os.ReadFile(program)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(snap, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runGolden(context.Background(), &out, []string{"check", "--db", db, snap}); err == nil {
		t.Fatal("check before record succeeded")
	}

	out.Reset()
	if err := runGolden(context.Background(), &out, []string{"record", "--db", db, snap}); err != nil {
		t.Fatalf("record: %v\n%s", err, out.String())
	}
	if err := runGolden(context.Background(), &out, []string{"check", "--db", db, snap}); err != nil {
		t.Fatalf("check: %v\n%s", err, out.String())
	}

	// a different snapshot has a different fingerprint and no recording.
	edited := bytes.Replace(data, []byte(`"constant": 2`), []byte(`"constant": 3`), 1)
	if err := os.WriteFile(snap, edited, 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := runGolden(context.Background(), &out, []string{"check", "--db", db, snap}); err == nil {
		t.Errorf("check of an edited snapshot succeeded:\n%s", out.String())
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		ok   bool
	}{
		{"defaults", []string{"a.json"}, true},
		{"jobs", []string{"-j", "3", "a.json"}, true},
		{"zero jobs", []string{"--jobs", "0", "a.json"}, false},
		{"bad color", []string{"--color", "sometimes", "a.json"}, false},
		{"no files", []string{"--verbose"}, false},
		{"unknown flag", []string{"--frobnicate", "a.json"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions("dump", tt.args, nil)
			if (err == nil) != tt.ok {
				t.Fatalf("parseOptions(%v) error = %v", tt.args, err)
			}
			if tt.name == "jobs" && opts.cfg.Jobs != 3 {
				t.Errorf("jobs = %d, want 3", opts.cfg.Jobs)
			}
		})
	}
}

func TestGoldenRequiresMode(t *testing.T) {
	var out bytes.Buffer
	if err := runGolden(context.Background(), &out, []string{"replay", program}); err == nil {
		t.Error("unknown golden mode accepted")
	}
}
