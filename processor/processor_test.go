package processor

import (
	"errors"
	"fmt"
	"go/token"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jhump/annosynth/syntax"
)

func emit(names ...string) Processor {
	return func(_ *Context, sink Sink) error {
		for _, n := range names {
			if err := sink.AddSource(n, []byte("// "+n)); err != nil {
				return err
			}
		}
		return nil
	}
}

func fail(failure error, names ...string) Processor {
	return func(ctx *Context, sink Sink) error {
		if err := emit(names...)(ctx, sink); err != nil {
			return err
		}
		return failure
	}
}

func artifactNames(s *MemorySink) []string {
	var names []string
	for _, a := range s.Artifacts() {
		names = append(names, a.Name)
	}
	return names
}

func sameNames(a, b []string) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func TestExecuteOrdersByConfiguration(t *testing.T) {
	slow := func(ctx *Context, sink Sink) error {
		time.Sleep(20 * time.Millisecond)
		return emit("slow1.cs", "slow2.cs")(ctx, sink)
	}
	sink := NewMemorySink()
	cfg := Config{
		Processors: []Registration{
			{Name: "slow", Processor: slow},
			{Name: "fast", Processor: emit("fast.cs")},
		},
		Sink: sink,
	}
	if err := cfg.Execute(&syntax.Tree{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := artifactNames(sink), []string{"slow1.cs", "slow2.cs", "fast.cs"}; !sameNames(got, want) {
		t.Errorf("wrong order: got %v; want %v", got, want)
	}
}

func TestExecuteIsolatesFailures(t *testing.T) {
	boom := NewErrorWithPosition(token.Position{Filename: "a.cs", Line: 1, Column: 2}, ErrNoConstantValue)
	sink := NewMemorySink()
	cfg := Config{
		Processors: []Registration{
			{Name: "first", Processor: emit("first.cs")},
			{Name: "broken", Processor: fail(boom, "partial.cs")},
			{Name: "last", Processor: emit("last.cs")},
		},
		Sink: sink,
	}
	err := cfg.Execute(&syntax.Tree{}, nil)
	if !errors.Is(err, ErrNoConstantValue) {
		t.Fatalf("expecting ErrNoConstantValue; got %v", err)
	}
	if got, want := err.Error(), "broken: a.cs:1:2: initializer has no constant value"; got != want {
		t.Errorf("wrong message: %q; want %q", got, want)
	}
	var posErr *ErrorWithPosition
	if !errors.As(err, &posErr) || posErr.Pos().Line != 1 || posErr.Underlying() != ErrNoConstantValue {
		t.Errorf("expecting position to survive; got %v", err)
	}
	if got, want := artifactNames(sink), []string{"first.cs", "last.cs"}; !sameNames(got, want) {
		t.Errorf("wrong artifacts: got %v; want %v", got, want)
	}
}

func TestExecuteJoinsFailures(t *testing.T) {
	errA, errB := errors.New("a failed"), errors.New("b failed")
	cfg := Config{
		Processors: []Registration{
			{Name: "a", Processor: fail(errA)},
			{Name: "b", Processor: fail(errB)},
		},
		Sink: NewMemorySink(),
	}
	err := cfg.Execute(&syntax.Tree{}, nil)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expecting both errors; got %v", err)
	}
	if got, want := err.Error(), "a: a failed\nb: b failed"; got != want {
		t.Errorf("wrong message: %q; want %q", got, want)
	}
}

func TestExecuteDuplicateArtifact(t *testing.T) {
	sink := NewMemorySink()
	cfg := Config{
		Processors: []Registration{
			{Name: "one", Processor: emit("Same.cs", "one.cs")},
			{Name: "two", Processor: emit("Same.cs", "two.cs")},
		},
		Sink: sink,
	}
	err := cfg.Execute(&syntax.Tree{}, nil)
	if !errors.Is(err, ErrDuplicateArtifact) {
		t.Fatalf("expecting ErrDuplicateArtifact; got %v", err)
	}
	if got, want := artifactNames(sink), []string{"Same.cs", "one.cs"}; !sameNames(got, want) {
		t.Errorf("wrong artifacts: got %v; want %v", got, want)
	}
}

func TestExecuteParallelism(t *testing.T) {
	var running, peak int32
	track := func(_ *Context, _ Sink) error {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}
	var regs []Registration
	for i := 0; i < 6; i++ {
		regs = append(regs, Registration{Name: fmt.Sprintf("p%d", i), Processor: track})
	}
	cfg := Config{Processors: regs, Sink: NewMemorySink(), Parallelism: 2}
	if err := cfg.Execute(&syntax.Tree{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak > 2 {
		t.Errorf("expecting at most 2 concurrent processors; saw %d", peak)
	}
}

func TestExecuteFreshContext(t *testing.T) {
	var contexts []*Context
	record := func(ctx *Context, _ Sink) error {
		contexts = append(contexts, ctx)
		if ctx.Logger == nil {
			return errors.New("nil logger")
		}
		return nil
	}
	cfg := Config{Processors: []Registration{{Name: "rec", Processor: record}}, Sink: NewMemorySink()}
	tree := &syntax.Tree{}
	for i := 0; i < 2; i++ {
		if err := cfg.Execute(tree, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(contexts) != 2 || contexts[0] == contexts[1] {
		t.Errorf("expecting a new context for every pass")
	}
}

func TestExecuteRequiresSink(t *testing.T) {
	cfg := Config{Processors: []Registration{{Name: "x", Processor: emit("x.cs")}}}
	if err := cfg.Execute(&syntax.Tree{}, nil); err == nil {
		t.Error("expecting error without a sink")
	}
}

func TestLookupProcessors(t *testing.T) {
	if _, err := LookupProcessors("no-such-processor"); err == nil {
		t.Error("expecting error for unknown processor")
	}
	procs, err := LookupProcessors()
	if err != nil || len(procs) != 0 {
		t.Errorf("expecting no processors; got %v, %v", procs, err)
	}
}

func TestRegisterProcessorPanicsOnDuplicate(t *testing.T) {
	name := "test-duplicate"
	RegisterProcessor(name, emit())
	defer func() {
		registryLock.Lock()
		defer registryLock.Unlock()
		for i, r := range registeredPlugins {
			if r.Name == name {
				registeredPlugins = append(registeredPlugins[:i], registeredPlugins[i+1:]...)
				break
			}
		}
	}()
	defer func() {
		if recover() == nil {
			t.Error("expecting panic")
		}
	}()
	RegisterProcessor(name, emit())
}
