// Package golden keeps reference dumps of operation trees. Recordings are
// keyed by the fingerprint of the snapshot they were produced from and the
// region name, so a changed snapshot never matches a stale recording.
package golden

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kr/pretty"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/blake2b"

	"github.com/orizon-lang/optree/internal/errors"
)

const (
	perm        = 0600
	openTimeout = 3 * time.Second
)

var dumpsBucket = []byte("dumps")

// Fingerprint identifies snapshot contents.
type Fingerprint [blake2b.Size256]byte

// FingerprintOf hashes snapshot bytes.
func FingerprintOf(data []byte) Fingerprint {
	return blake2b.Sum256(data)
}

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// Short is the abbreviated form used in messages.
func (f Fingerprint) Short() string { return f.String()[:12] }

// Store is a bbolt file holding one bucket per snapshot fingerprint.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Storage("open", err)
		}
	}
	db, err := bolt.Open(path, perm, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, errors.Storage("open", fmt.Errorf("%s: %w", path, err))
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dumpsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Storage("open", err)
	}
	return &Store{db: db}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Storage("close", err)
	}
	return nil
}

// Record stores dump as the reference for region, replacing any earlier
// recording.
func (s *Store) Record(fp Fingerprint, region, dump string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(dumpsBucket).CreateBucketIfNotExists(fp[:])
		if err != nil {
			return err
		}
		return b.Put([]byte(region), []byte(dump))
	})
	if err != nil {
		return errors.Storage("record", err)
	}
	return nil
}

// Lookup returns the recorded dump of region.
func (s *Store) Lookup(fp Fingerprint, region string) (dump string, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(dumpsBucket).Bucket(fp[:])
		if b == nil {
			return nil
		}
		// values are only valid inside the transaction.
		if v := b.Get([]byte(region)); v != nil {
			dump, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, errors.Storage("lookup", err)
	}
	return dump, ok, nil
}

// Regions lists the regions recorded for a snapshot in key order.
func (s *Store) Regions(fp Fingerprint) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(dumpsBucket).Bucket(fp[:])
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Storage("list", err)
	}
	return names, nil
}

// Check compares dump with the recording of region. On a mismatch it
// returns the differing lines as reported by pretty.Diff together with a
// GOLDEN_MISMATCH error.
func (s *Store) Check(fp Fingerprint, region, dump string) ([]string, error) {
	want, ok, err := s.Lookup(fp, region)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.GoldenMissing(fp.Short(), region)
	}
	if want == dump {
		return nil, nil
	}
	diff := pretty.Diff(lines(want), lines(dump))
	return diff, errors.GoldenMismatch(region, len(diff))
}

// Forget drops every recording of a snapshot.
func (s *Store) Forget(fp Fingerprint) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket(dumpsBucket).DeleteBucket(fp[:])
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return errors.Storage("forget", err)
	}
	return nil
}

func lines(dump string) []string {
	return strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
}
