package semantics

import (
	"context"
	stderrors "errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/operators"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

var source = position.NewSourceFile("a.cs", "int x = 1 + 2;")

func literal(start int, v int64) *bound.Literal {
	return &bound.Literal{Header: bound.Header{
		Syntax:   source.RefFromOffsets(start, start+1),
		Type:     symbols.Int32,
		Constant: symbols.NewInt(v),
	}}
}

// sum binds `1 + 2`.
func sum() bound.Node {
	return &bound.Binary{
		Header:   bound.Header{Syntax: source.RefFromOffsets(8, 13), Type: symbols.Int32},
		Operator: operators.Add,
		Left:     literal(8, 1),
		Right:    literal(12, 2),
	}
}

func region(file string, start, end int) Region {
	return Region{File: file, Span: source.SpanFromOffsets(start, end)}
}

func TestOperationIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	r := region("a.cs", 0, 14)
	binder.EXPECT().Bind(gomock.Any(), r).Return(sum(), nil).Times(1)

	m := NewModel(binder)
	first, err := m.Operation(context.Background(), r)
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	second, err := m.Operation(context.Background(), r)
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	if first != second {
		t.Error("second request lowered again")
	}
	if first.Kind() != operations.KindBinary || first.Parent() != nil {
		t.Errorf("root = %s", operations.Header(first))
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestInvalidateRebinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	r := region("a.cs", 0, 14)
	binder.EXPECT().Bind(gomock.Any(), r).DoAndReturn(func(context.Context, Region) (bound.Node, error) {
		return sum(), nil
	}).Times(2)

	m := NewModel(binder)
	first, err := m.Operation(context.Background(), r)
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	m.Invalidate(r)
	second, err := m.Operation(context.Background(), r)
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	if first == second {
		t.Error("invalidated tree was served again")
	}
}

func TestConcurrentRequestsBindOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	r := region("a.cs", 0, 14)
	binder.EXPECT().Bind(gomock.Any(), r).Return(sum(), nil).Times(1)

	m := NewModel(binder)
	results := make([]operations.Operation, 16)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			op, err := m.Operation(context.Background(), r)
			results[i] = op
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Operation: %v", err)
	}
	for i, op := range results {
		if op != results[0] {
			t.Fatalf("request %d got a different tree", i)
		}
	}
}

func TestBinderFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	broken := region("b.cs", 0, 3)
	empty := region("c.cs", 0, 3)
	errBind := stderrors.New("no such member")
	binder.EXPECT().Bind(gomock.Any(), broken).Return(nil, errBind)
	binder.EXPECT().Bind(gomock.Any(), empty).Return((*bound.Block)(nil), nil)

	m := NewModel(binder)
	if _, err := m.Operation(context.Background(), broken); !stderrors.Is(err, errBind) {
		t.Errorf("error = %v, want the binder's error", err)
	}
	if _, err := m.Operation(context.Background(), empty); !errors.HasCategory(err, errors.CategoryContract) {
		t.Errorf("error = %v, want a contract error", err)
	}
	if m.Len() != 0 {
		t.Errorf("failures were cached: Len = %d", m.Len())
	}
}

func TestCanceledRequestDoesNotBind(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewModel(NewMockBinder(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Operation(ctx, region("a.cs", 0, 14)); !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEnclosing(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	r := region("a.cs", 0, 14)
	binder.EXPECT().Bind(gomock.Any(), r).Return(sum(), nil)

	m := NewModel(binder)
	tests := []struct {
		start, end int
		want       string
	}{
		{12, 13, "2"},
		{8, 13, "1 + 2"},
		{9, 11, "1 + 2"},
	}
	for _, tt := range tests {
		op, err := m.Enclosing(context.Background(), r, source.SpanFromOffsets(tt.start, tt.end))
		if err != nil {
			t.Fatalf("Enclosing: %v", err)
		}
		if op == nil || op.Syntax().Text != tt.want {
			t.Errorf("Enclosing(%d, %d) = %v, want %q", tt.start, tt.end, op, tt.want)
		}
	}

	op, err := m.Enclosing(context.Background(), r, source.SpanFromOffsets(0, 3))
	if err != nil || op != nil {
		t.Errorf("Enclosing outside the tree = %v, %v", op, err)
	}
}

func TestInvalidateFileAndReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	binder.EXPECT().Bind(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, Region) (bound.Node, error) {
		return sum(), nil
	}).AnyTimes()

	m := NewModel(binder)
	for _, r := range []Region{region("a.cs", 0, 5), region("a.cs", 6, 14), region("b.cs", 0, 14)} {
		if _, err := m.Operation(context.Background(), r); err != nil {
			t.Fatalf("Operation: %v", err)
		}
	}

	if n := m.InvalidateFile("a.cs"); n != 2 {
		t.Errorf("InvalidateFile dropped %d regions, want 2", n)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Len after Reset = %d", m.Len())
	}
}

func TestResetDetachesInFlightLowering(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := NewMockBinder(ctrl)
	r := region("a.cs", 0, 14)

	entered := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		binder.EXPECT().Bind(gomock.Any(), r).DoAndReturn(func(context.Context, Region) (bound.Node, error) {
			close(entered)
			<-release
			return sum(), nil
		}),
		binder.EXPECT().Bind(gomock.Any(), r).Return(sum(), nil),
	)

	m := NewModel(binder)
	stale := make(chan operations.Operation, 1)
	go func() {
		op, _ := m.Operation(context.Background(), r)
		stale <- op
	}()
	<-entered

	m.Reset()
	fresh, err := m.Operation(context.Background(), r)
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	close(release)
	old := <-stale

	if old == nil || old == fresh {
		t.Error("request after Reset joined the lowering started before it")
	}
	if cached, _ := m.Operation(context.Background(), r); cached != fresh {
		t.Error("tree lowered after Reset was not cached")
	}
}
