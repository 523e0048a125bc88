// Package opset defines the built-in operation kinds and their typed
// constructors. Kinds are registered in the process-wide catalog at package
// load, so encoded chains referencing them always resolve.
package opset

import "github.com/zjrosen/strand/internal/op"

// Built-in kind documentation, rendered as markdown by inspection tooling.
const (
	haltDoc = `# halt

Stops the current lane. The default construction is canonical: every
` + "`Halt()`" + ` call returns the same shared instance.
`

	markDoc = `# mark

Records a checkpoint in the chain. Labels distinguish marks from each other;
a labeled mark is always a standalone instance.
`

	fenceDoc = `# fence

Synchronization barrier across lanes. The width param fixes how many lanes
the fence spans; the default width of 1 is the canonical entry.
`

	burstDoc = `# burst

Emits a batch of items. The count param sets the batch size. Bursts resolve
lookup keys from count and label, so the declared count/label combinations
are canonical alongside the default.
`

	repeatDoc = `# repeat

Composite that repeats its embedded operation. The times param sets the
repetition count. Every repeat is standalone: the embedded payload is
per-call state.
`
)

// Built-in kinds
var (
	KindHalt = op.MustDefineKind(op.Spec{
		Name: "halt",
		Doc:  haltDoc,
	})

	KindMark = op.MustDefineKind(op.Spec{
		Name: "mark",
		Doc:  markDoc,
	})

	KindFence = op.MustDefineKind(op.Spec{
		Name:   "fence",
		Doc:    fenceDoc,
		Params: []int{1},
	})

	KindBurst = op.MustDefineKind(op.Spec{
		Name:     "burst",
		Doc:      burstDoc,
		Params:   []int{0},
		Resolver: op.ArgsKey,
		Additional: []op.Args{
			{Params: []int{1}},
			{Params: []int{2}, Label: "double"},
		},
	})

	KindRepeat = op.MustDefineKind(op.Spec{
		Name:            "repeat",
		Doc:             repeatDoc,
		Params:          []int{1},
		SuppressDefault: true,
	})
)

// Halt constructs a halt operation.
func Halt(opts ...op.Option) *op.Op {
	return KindHalt.New(opts...)
}

// Mark constructs a mark operation.
func Mark(opts ...op.Option) *op.Op {
	return KindMark.New(opts...)
}

// Fence constructs a fence spanning width lanes.
func Fence(width int, opts ...op.Option) *op.Op {
	combined := append([]op.Option{op.WithParams(width)}, opts...)
	return KindFence.New(combined...)
}

// Burst constructs a burst of count items.
func Burst(count int, opts ...op.Option) *op.Op {
	combined := append([]op.Option{op.WithParams(count)}, opts...)
	return KindBurst.New(combined...)
}

// Repeat wraps inner in a composite repeating it the given number of times.
// The embedded operation is an independent standalone copy of inner.
func Repeat(inner *op.Op, times int, opts ...op.Option) *op.Op {
	combined := append([]op.Option{op.WithParams(times)}, opts...)
	return op.Wrap(KindRepeat, inner, combined...)
}
