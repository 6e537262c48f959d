package processor

import (
	"errors"
	"fmt"
	"go/token"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhump/annosynth/syntax"
)

var (
	// ErrNoConstantValue indicates that an initializer which must be a
	// compile-time constant has no constant value.
	ErrNoConstantValue = errors.New("initializer has no constant value")
	// ErrNotInNamespace indicates that a declaration which must be declared
	// directly inside a namespace is not.
	ErrNotInNamespace = errors.New("declaration is not directly enclosed by a namespace")
	// ErrDuplicateArtifact is returned by sinks when an artifact name is
	// registered more than once in the same pass.
	ErrDuplicateArtifact = errors.New("duplicate artifact name")
)

// ErrorWithPosition is an error that has source position information associated
// with it. The position indicates the location in a source file where the error
// was encountered.
type ErrorWithPosition struct {
	err error
	pos token.Position
}

// Error implements the error interface. It includes position information in the
// returned message.
func (e *ErrorWithPosition) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.pos.Filename, e.pos.Line, e.pos.Column, e.err.Error())
}

// Underlying returns the underlying error.
func (e *ErrorWithPosition) Underlying() error {
	return e.err
}

// Unwrap returns the underlying error, for use with errors.Is and errors.As.
func (e *ErrorWithPosition) Unwrap() error {
	return e.err
}

// Pos returns the location in source where the underlying error was
// encountered.
func (e *ErrorWithPosition) Pos() token.Position {
	return e.pos
}

// NewErrorWithPosition returns the given error, but associates it with the
// given source code location.
func NewErrorWithPosition(pos token.Position, err error) *ErrorWithPosition {
	return &ErrorWithPosition{err: err, pos: pos}
}

// Processor is a function that runs one generator kind over a pass. It
// discovers candidates in ctx.Tree, resolves them with ctx.Model and
// registers every rendered artifact with the given sink.
type Processor func(ctx *Context, sink Sink) error

// Context represents the environment for one processor during one pass. A
// new context is created for every processor on every pass, so nothing
// accumulated by a processor survives into the next pass.
type Context struct {
	// Tree is the syntax tree of the whole compilation.
	Tree *syntax.Tree
	// Model answers semantic queries about nodes of Tree.
	Model Model
	// Logger is scoped to the processor being run. It is never nil.
	Logger *log.Logger
}

// NewContext creates a context for a single processor run. A nil logger is
// replaced by one that discards everything.
func NewContext(tree *syntax.Tree, model Model, logger *log.Logger) *Context {
	if logger == nil {
		logger = discardLogger()
	}
	return &Context{Tree: tree, Model: model, Logger: logger}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Config represents the configuration for running one or more Processors.
// Callers should configure all of the exported fields and then call the
// Execute method to actually invoke the processors.
type Config struct {
	// Processors are run in the given order. Their artifacts are registered
	// with Sink in that same order.
	Processors []Registration
	// Sink receives every artifact. It is typically owned by the host.
	Sink Sink
	// Logger is the parent of every processor's logger. May be nil.
	Logger *log.Logger
	// Parallelism bounds how many processors run at the same time. Zero or
	// less means no bound.
	Parallelism int
}

// Execute runs a single pass of all configured processors over the given
// tree.
//
// Processors share no state, so they run concurrently. Each one writes into a
// private buffer; once all have finished, the buffers of processors that
// succeeded are flushed into the sink in configuration order. A processor
// that fails registers nothing, but does not keep others from registering
// their artifacts. All failures are joined into the returned error.
func (cfg *Config) Execute(tree *syntax.Tree, model Model) error {
	if cfg.Sink == nil {
		return errors.New("no sink configured")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}

	buffers := make([]*bufferSink, len(cfg.Processors))
	errs := make([]error, len(cfg.Processors))

	var g errgroup.Group
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}
	for i, reg := range cfg.Processors {
		buffers[i] = &bufferSink{generator: reg.Name}
		g.Go(func() error {
			ctx := NewContext(tree, model, logger.WithPrefix(reg.Name))
			if err := reg.Processor(ctx, buffers[i]); err != nil {
				errs[i] = fmt.Errorf("%s: %w", reg.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, reg := range cfg.Processors {
		if errs[i] != nil {
			logger.Error("processor failed", "processor", reg.Name, "err", errs[i])
			continue
		}
		for _, a := range buffers[i].artifacts {
			if err := cfg.Sink.AddSource(a.Name, a.Text); err != nil {
				errs[i] = fmt.Errorf("%s: %w", reg.Name, err)
				break
			}
			logger.Debug("registered artifact", "processor", reg.Name, "name", a.Name, "bytes", len(a.Text))
		}
	}
	return errors.Join(errs...)
}

// Process runs the given processors over the tree, registering artifacts
// with the given sink. It uses a nil logger and no parallelism bound.
func Process(tree *syntax.Tree, model Model, sink Sink, procs ...Registration) error {
	cfg := Config{
		Processors: procs,
		Sink:       sink,
	}
	return cfg.Execute(tree, model)
}

// ProcessAll invokes all registered processors over the given tree.
func ProcessAll(tree *syntax.Tree, model Model, sink Sink) error {
	return Process(tree, model, sink, AllRegisteredProcessors()...)
}
