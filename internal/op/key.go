package op

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Key identifies one canonical entry within a kind's registry namespace.
// Keys are only meaningful per kind; two kinds may use the same key value
// without interference.
type Key string

// DefaultKey is the key the built-in resolution policy assigns to the
// default-arguments entry.
const DefaultKey Key = ""

// Unit is the unit of an operation's scheduling duration.
type Unit string

// Duration units
const (
	UnitTick Unit = "tick"
	UnitSec  Unit = "s"
)

// Args is the defaulted argument record of a single construction call.
// It is what a KeyFunc sees: conditions are not constructor arguments and
// never appear here.
type Args struct {
	Params   []int
	Label    string
	Duration float64
	Unit     Unit
}

// normalized returns the record with zero-value gaps filled in.
func (a Args) normalized() Args {
	if a.Unit == "" {
		a.Unit = UnitTick
	}
	a.Params = slices.Clone(a.Params)
	return a
}

// KeyFunc resolves an argument record to a lookup key. Returning false marks
// the construction unkeyed: the result is always a fresh standalone instance
// and is never cached.
type KeyFunc func(args Args) (Key, bool)

// KeyOf builds a deterministic key from arbitrary parts.
func KeyOf(parts ...any) Key {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%v", part)
	}
	return Key(b.String())
}

// ArgsKey is a resolver that keys an instance by its params and label,
// leaving scheduling metadata excluded: any non-default duration or unit is
// unkeyed. Kinds that want labeled canonical entries use this (or their own
// KeyFunc) instead of the default policy. The label is quoted so a label
// containing the separator cannot alias a params encoding.
func ArgsKey(args Args) (Key, bool) {
	if args.Duration != 0 || args.Unit != UnitTick {
		return "", false
	}
	parts := make([]any, 0, len(args.Params)+1)
	for _, p := range args.Params {
		parts = append(parts, p)
	}
	parts = append(parts, strconv.Quote(args.Label))
	return KeyOf(parts...), true
}

// defaultResolve implements the built-in policy: the default key if and only
// if every optional field matches the kind's declared defaults, otherwise
// unkeyed. Labels, durations and units never produce canonical entries under
// this policy.
func defaultResolve(defaults Args, args Args) (Key, bool) {
	if args.Label != "" || args.Duration != 0 || args.Unit != UnitTick {
		return "", false
	}
	if !slices.Equal(args.Params, defaults.Params) {
		return "", false
	}
	return DefaultKey, true
}

// Option adjusts the argument record of a single construction call.
type Option func(*Args)

// WithParams overrides the kind's default params.
func WithParams(params ...int) Option {
	return func(a *Args) {
		a.Params = params
	}
}

// WithLabel attaches a label.
func WithLabel(label string) Option {
	return func(a *Args) {
		a.Label = label
	}
}

// WithDuration attaches scheduling metadata.
func WithDuration(duration float64, unit Unit) Option {
	return func(a *Args) {
		a.Duration = duration
		a.Unit = unit
	}
}
