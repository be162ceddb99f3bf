package golden

import (
	"path/filepath"
	"testing"

	"github.com/orizon-lang/optree/internal/errors"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "golden", "dumps.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

const dump = "Block (Type: null) (Syntax: '{ }')\n  Literal (Type: System.Int32, Constant: 1) (Syntax: '1')\n"

func TestRecordAndCheck(t *testing.T) {
	s := openStore(t)
	fp := FingerprintOf([]byte(`{"format": "1.0.0"}`))

	if err := s.Record(fp, "Main", dump); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if diff, err := s.Check(fp, "Main", dump); err != nil || diff != nil {
		t.Errorf("Check of identical dump = %v, %v", diff, err)
	}

	changed := "Block (Type: null) (Syntax: '{ }')\n  Literal (Type: System.Int32, Constant: 2) (Syntax: '2')\n"
	diff, err := s.Check(fp, "Main", changed)
	if se, ok := err.(*errors.StandardError); !ok || se.Code != "GOLDEN_MISMATCH" {
		t.Fatalf("Check of changed dump: %v", err)
	}
	if len(diff) != 1 {
		t.Errorf("diff = %q, want one line", diff)
	}
}

func TestCheckMissing(t *testing.T) {
	s := openStore(t)
	recorded := FingerprintOf([]byte("a"))
	other := FingerprintOf([]byte("b"))
	if err := s.Record(recorded, "Main", dump); err != nil {
		t.Fatalf("Record: %v", err)
	}

	for _, tt := range []struct {
		fp     Fingerprint
		region string
	}{
		{recorded, "Other"},
		{other, "Main"},
	} {
		_, err := s.Check(tt.fp, tt.region, dump)
		if se, ok := err.(*errors.StandardError); !ok || se.Code != "GOLDEN_MISSING" {
			t.Errorf("Check(%s, %s) = %v, want GOLDEN_MISSING", tt.fp.Short(), tt.region, err)
		}
	}
}

func TestRegionsAndForget(t *testing.T) {
	s := openStore(t)
	fp := FingerprintOf([]byte("snapshot"))
	for _, r := range []string{"b", "a", "c"} {
		if err := s.Record(fp, r, dump); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	names, err := s.Regions(fp)
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Errorf("Regions = %v", names)
	}

	if err := s.Forget(fp); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := s.Forget(fp); err != nil {
		t.Errorf("second Forget: %v", err)
	}
	if _, ok, _ := s.Lookup(fp, "a"); ok {
		t.Error("recording survived Forget")
	}
}

func TestFingerprint(t *testing.T) {
	a := FingerprintOf([]byte("x"))
	if a != FingerprintOf([]byte("x")) || a == FingerprintOf([]byte("y")) {
		t.Error("fingerprints are not content addressed")
	}
	if len(a.String()) != 64 || len(a.Short()) != 12 {
		t.Errorf("fingerprint text = %s", a)
	}
}
