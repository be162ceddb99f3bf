package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/golden"
	"github.com/orizon-lang/optree/internal/lowering"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/semantics"
)

// snapshot is a decoded snapshot file with the fingerprint of its bytes.
type snapshot struct {
	*bound.Snapshot
	fingerprint golden.Fingerprint
}

// snapshotBinder serves regions out of snapshot files. Files are decoded on
// first use and kept until forgotten.
type snapshotBinder struct {
	mu    sync.Mutex
	files map[string]*snapshot
}

func newSnapshotBinder() *snapshotBinder {
	return &snapshotBinder{files: make(map[string]*snapshot)}
}

func (b *snapshotBinder) load(path string) (*snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.files[path]; ok {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := bound.DecodeSnapshot(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s := &snapshot{Snapshot: decoded, fingerprint: golden.FingerprintOf(data)}
	b.files[path] = s
	return s, nil
}

func (b *snapshotBinder) forget(path string) {
	b.mu.Lock()
	delete(b.files, path)
	b.mu.Unlock()
}

func (b *snapshotBinder) Bind(_ context.Context, r semantics.Region) (bound.Node, error) {
	s, err := b.load(r.File)
	if err != nil {
		return nil, err
	}
	region := s.Region(r.Name)
	if region == nil {
		return nil, fmt.Errorf("snapshot %s has no region %q", r.File, r.Name)
	}
	return region.Root, nil
}

// session lowers snapshot regions through a shared model.
type session struct {
	opts   *options
	binder *snapshotBinder
	model  *semantics.Model
}

func newSession(opts *options) *session {
	b := newSnapshotBinder()
	return &session{
		opts:   opts,
		binder: b,
		model: semantics.NewModel(b,
			semantics.WithLogger(opts.log),
			semantics.WithLowerer(lowering.New())),
	}
}

// regionResult is the outcome of lowering one region.
type regionResult struct {
	name       string
	tree       operations.Operation
	violations []operations.VerificationError
	err        error
}

func (r regionResult) dump() string {
	if r.tree == nil {
		return ""
	}
	return operations.Dump(r.tree)
}

// fileResult is the outcome of one snapshot file. err is set when the file
// could not be decoded at all.
type fileResult struct {
	path        string
	fingerprint golden.Fingerprint
	source      *position.SourceFile
	regions     []regionResult
	err         error
}

// failed reports whether any part of the file failed to lower.
func (f fileResult) failed() bool {
	if f.err != nil {
		return true
	}
	for _, r := range f.regions {
		if r.err != nil {
			return true
		}
	}
	return false
}

// process lowers every selected region of files, at most cfg.Jobs files at
// a time. Results keep the order of files.
func (s *session) process(ctx context.Context, files []string) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(s.opts.cfg.Jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.processFile(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *session) processFile(ctx context.Context, path string) fileResult {
	res := fileResult{path: path}

	snap, err := s.binder.load(path)
	if err != nil {
		s.opts.log.Warn("%s: %v", path, err)
		res.err = err
		return res
	}
	res.fingerprint = snap.fingerprint
	res.source = snap.Source
	s.opts.log.Info("%s: format %s, %d regions, fingerprint %s",
		path, snap.Format, len(snap.Regions), snap.fingerprint.Short())

	for _, r := range snap.Regions {
		if s.opts.region != "" && r.Name != s.opts.region {
			continue
		}
		rr := regionResult{name: r.Name}
		rr.tree, rr.err = s.model.Operation(ctx, semantics.Region{File: path, Name: r.Name})
		if rr.err == nil {
			rr.violations = operations.Verify(rr.tree)
		}
		res.regions = append(res.regions, rr)
	}
	if s.opts.region != "" && len(res.regions) == 0 {
		res.err = fmt.Errorf("no region %q", s.opts.region)
	}
	return res
}

// reload drops everything cached for path.
func (s *session) reload(path string) {
	s.binder.forget(path)
	n := s.model.InvalidateFile(path)
	s.opts.log.Debug("%s: dropped %d cached trees", path, n)
}
