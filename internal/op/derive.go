package op

// When returns a standalone copy of o guarded by the given signal condition.
// The operand is never mutated and never returned: canonical operands stay
// untouched in the registry and mutable operands keep their own state.
func When(o *Op, sig *Signal, value int64) *Op {
	derived := o.ToMutable()
	derived.cond = &Condition{signal: sig, value: value}
	return derived
}

// Wrap builds a composite operation of kind k embedding inner as its
// payload. The embedded operation is always an independent standalone copy,
// never the live reference, so mutating inner later cannot be observed
// through the composite. The copy carries the original's label. The composite
// itself is standalone: an embedded payload is per-call state and can never
// match a registered entry.
func Wrap(k *Kind, inner *Op, opts ...Option) *Op {
	args := k.defaults
	args.Params = append([]int(nil), k.defaults.Params...)
	for _, opt := range opts {
		opt(&args)
	}
	composite := newStandalone(k, args.normalized())
	if inner != nil {
		composite.inner = inner.ToMutable()
	}
	return composite
}
