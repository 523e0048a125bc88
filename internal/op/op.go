package op

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"
)

// Op is a single operation value. Canonical instances are immutable and
// shared; standalone instances are mutable and exclusively owned. The mode
// is fixed for the instance's lifetime.
type Op struct {
	kind     *Kind
	params   []int
	label    string
	duration float64
	unit     Unit
	cond     *Condition
	inner    *Op
	ext      map[string]any // standalone instances only, allocated on first write
	mutable  bool
}

// newStandalone builds a fresh mutable instance from a defaulted record.
func newStandalone(k *Kind, args Args) *Op {
	return &Op{
		kind:     k,
		params:   slices.Clone(args.Params),
		label:    args.Label,
		duration: args.Duration,
		unit:     args.Unit,
		mutable:  true,
	}
}

// Kind returns the defining kind. It is stable across mutability
// transitions: a ToMutable copy of a canonical instance reports the same
// kind.
func (o *Op) Kind() *Kind {
	return o.kind
}

// Mutable reports whether fields may be written.
func (o *Op) Mutable() bool {
	return o.mutable
}

// Params returns a copy of the construction params.
func (o *Op) Params() []int {
	return slices.Clone(o.params)
}

// Label returns the label, empty when absent.
func (o *Op) Label() string {
	return o.label
}

// Duration returns the scheduling duration, zero when absent.
func (o *Op) Duration() float64 {
	return o.duration
}

// Unit returns the duration unit.
func (o *Op) Unit() Unit {
	return o.unit
}

// Condition returns the attached condition, nil when absent.
func (o *Op) Condition() *Condition {
	return o.cond
}

// Inner returns the embedded operation of a composite, nil otherwise.
func (o *Op) Inner() *Op {
	return o.inner
}

// SetLabel writes the label on a mutable instance.
func (o *Op) SetLabel(label string) error {
	if !o.mutable {
		return fmt.Errorf("set label: %w", ErrImmutable)
	}
	o.label = label
	return nil
}

// SetDuration writes scheduling metadata on a mutable instance.
func (o *Op) SetDuration(duration float64, unit Unit) error {
	if !o.mutable {
		return fmt.Errorf("set duration: %w", ErrImmutable)
	}
	o.duration = duration
	o.unit = unit
	return nil
}

// SetCondition attaches a condition on a mutable instance.
func (o *Op) SetCondition(sig *Signal, value int64) error {
	if !o.mutable {
		return fmt.Errorf("set condition: %w", ErrImmutable)
	}
	o.cond = &Condition{signal: sig, value: value}
	return nil
}

// ClearCondition removes the condition on a mutable instance.
func (o *Op) ClearCondition() error {
	if !o.mutable {
		return fmt.Errorf("clear condition: %w", ErrImmutable)
	}
	o.cond = nil
	return nil
}

// Ext reads an extension field. Canonical instances have no extension table,
// so reads against them always observe absence.
func (o *Op) Ext(name string) (any, bool) {
	value, ok := o.ext[name]
	return value, ok
}

// ExtNames returns the extension field names, sorted.
func (o *Op) ExtNames() []string {
	names := make([]string, 0, len(o.ext))
	for name := range o.ext {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetExt writes an extension field on a mutable instance. Values that should
// survive Encode must be JSON-representable.
func (o *Op) SetExt(name string, value any) error {
	if !o.mutable {
		return fmt.Errorf("set ext %q: %w", name, ErrImmutable)
	}
	if o.ext == nil {
		o.ext = make(map[string]any)
	}
	o.ext[name] = value
	return nil
}

// DeleteExt removes an extension field on a mutable instance.
func (o *Op) DeleteExt(name string) error {
	if !o.mutable {
		return fmt.Errorf("delete ext %q: %w", name, ErrImmutable)
	}
	delete(o.ext, name)
	return nil
}

// Copy returns the receiver itself for canonical instances and a shallow
// standalone duplicate otherwise. Shallow means the extension values and the
// condition's signal are shared with the original.
func (o *Op) Copy() *Op {
	if !o.mutable {
		return o
	}
	return o.clone(false)
}

// DeepCopy returns the receiver itself for canonical instances and a
// standalone duplicate otherwise. The condition's signal is deliberately not
// duplicated: it identifies an external entity, and copying it would
// silently retarget the operation. Extension values are treated as opaque.
func (o *Op) DeepCopy() *Op {
	if !o.mutable {
		return o
	}
	return o.clone(true)
}

// ToMutable returns a newly allocated standalone duplicate with every field
// carried over. It never returns the receiver itself, even when the
// receiver is already mutable.
func (o *Op) ToMutable() *Op {
	return o.clone(false)
}

// clone duplicates the operation's own record. The condition value is
// duplicated but its signal reference is preserved either way; deep clones
// also duplicate the embedded operation.
func (o *Op) clone(deep bool) *Op {
	c := &Op{
		kind:     o.kind,
		params:   slices.Clone(o.params),
		label:    o.label,
		duration: o.duration,
		unit:     o.unit,
		mutable:  true,
	}
	if o.cond != nil {
		cond := *o.cond
		c.cond = &cond
	}
	if o.inner != nil {
		if deep {
			c.inner = o.inner.DeepCopy()
		} else {
			c.inner = o.inner
		}
	}
	if len(o.ext) > 0 {
		c.ext = maps.Clone(o.ext)
	}
	return c
}

// Equal reports value equality: same kind, params, label, scheduling
// metadata, condition target and value, embedded operation, and extension
// fields. Mutability mode is not part of equality.
func (o *Op) Equal(other *Op) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.kind != other.kind {
		return false
	}
	if !slices.Equal(o.params, other.params) {
		return false
	}
	if o.label != other.label || o.duration != other.duration || o.unit != other.unit {
		return false
	}
	if !o.cond.Equal(other.cond) {
		return false
	}
	if (o.inner == nil) != (other.inner == nil) {
		return false
	}
	if o.inner != nil && !o.inner.Equal(other.inner) {
		return false
	}
	return equalExt(o.ext, other.ext)
}

// equalExt compares extension tables value by value.
func equalExt(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for name, av := range a {
		bv, ok := b[name]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

// String renders a compact single-line form for logs and diffs.
func (o *Op) String() string {
	var b strings.Builder
	b.WriteString(o.kind.name)
	if len(o.params) > 0 {
		b.WriteByte('(')
		for i, p := range o.params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", p)
		}
		b.WriteByte(')')
	}
	if o.label != "" {
		fmt.Fprintf(&b, " label=%q", o.label)
	}
	if o.duration != 0 || o.unit != UnitTick {
		fmt.Fprintf(&b, " duration=%g%s", o.duration, o.unit)
	}
	if o.cond != nil {
		fmt.Fprintf(&b, " when %s=%d", o.cond.signal, o.cond.value)
	}
	if o.inner != nil {
		fmt.Fprintf(&b, " [%s]", o.inner)
	}
	return b.String()
}
