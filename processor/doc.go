// Package processor contains the runtime library used by source generators
// that react to marker annotations in a host compilation.
//
// This package defines a function type, Processor, which is implemented by
// things that generate source from annotated declarations.
//
//    func(ctx *Context, sink processor.Sink) error
//
// A processor discovers candidate declarations in the syntax tree, resolves
// them with the semantic model, renders artifacts and registers each one with
// the sink. Generation is a pure function of the tree and the model: running
// the same pass twice produces identical artifacts.
//
// If a processor returns an error, its pass has failed and the error should
// say why. Errors about particular declarations should be constructed with
// processor.NewErrorWithPosition so that they report locations in the source,
// to aid users in fixing them.
//
// The remaining APIs and types in this package can be broken into four main
// categories: Processor Registration, Processor Invocation, Discovery and
// Mirrors.
//
// Processor Registration
//
// Processor implementations are registered with this package using the
// RegisterProcessor function, usually from a package init function. All
// registered processors can later be queried with AllRegisteredProcessors, or
// selected by name with LookupProcessors. The aptsynth program (included in
// this repo) uses this to pick the generator kinds named in its
// configuration.
//
// Processor Invocation
//
// Key among the invocation types is processor.Config. It defines the
// processors that will be invoked, the sink that receives their artifacts and
// how many of them may run at once.
//
// After a processor.Config is constructed, its Execute method runs one pass.
// Every processor gets a fresh Context, so no state survives from one pass to
// the next. Processors run concurrently, but their artifacts reach the sink
// in configuration order, and a processor that fails contributes nothing
// without keeping the others from contributing.
//
// There are also two "shortcut" functions: Process and ProcessAll. They
// create a processor.Config from their arguments, using "typical" values for
// the other settings, and call its Execute method. ProcessAll invokes every
// processor registered with this package.
//
// Discovery
//
// Discover walks a syntax tree in pre-order and returns the declarations that
// an annosynth.Marker matches. Discovery is purely syntactic; a candidate
// records its enclosing namespace, its parent node and the matched marker
// annotation, so that later stages never need to walk the tree again.
//
// Mirrors
//
// An AttributeMirror combines an annotation as written in source with what
// the semantic Model knows about it, most importantly the simple name of its
// resolved type. Mirrors give access to the annotation's arguments, both
// positional and named, and ArgText returns an argument's expression text in
// a whitespace-normalized form suitable for emitting verbatim.
//
// Constant values are exposed by the model as go/constant values, which
// ConstantText converts into the text the host would produce at run time.
package processor
