package op

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// envelope is the wire form of one encoded operation. Canonical instances
// carry how to reconstruct (kind plus construction arguments); standalone
// instances carry their full field record.
type envelope struct {
	Kind      string       `json:"kind"`
	Canonical bool         `json:"canonical,omitempty"`
	Args      *argsRecord  `json:"args,omitempty"`
	Fields    *fieldRecord `json:"fields,omitempty"`
}

// argsRecord is a construction argument record.
type argsRecord struct {
	Params   []int   `json:"params,omitempty"`
	Label    string  `json:"label,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Unit     Unit    `json:"unit,omitempty"`
}

// fieldRecord is a standalone instance's full state.
type fieldRecord struct {
	Params    []int            `json:"params,omitempty"`
	Label     string           `json:"label,omitempty"`
	Duration  float64          `json:"duration,omitempty"`
	Unit      Unit             `json:"unit,omitempty"`
	Condition *conditionRecord `json:"condition,omitempty"`
	Inner     *envelope        `json:"inner,omitempty"`
	Ext       map[string]any   `json:"ext,omitempty"`
}

// conditionRecord carries a condition's signal identity and value.
type conditionRecord struct {
	SignalID   string `json:"signal_id,omitempty"`
	SignalName string `json:"signal_name,omitempty"`
	Value      int64  `json:"value"`
}

// Encode serializes one operation to JSON.
func Encode(o *Op) ([]byte, error) {
	env, err := encodeEnvelope(o)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Decode deserializes one operation. Canonical encodings route through the
// normal constructor path, so the registry's instance comes back by
// reference; standalone encodings reconstruct an independent instance.
// Unresolvable kind names fail with ErrUnresolvedKind.
func Decode(data []byte) (*Op, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	return decodeEnvelope(&env)
}

// DecodeStrict is Decode that rejects envelopes carrying unknown fields.
func DecodeStrict(data []byte) (*Op, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	return decodeEnvelope(&env)
}

// encodeEnvelope builds the wire form, recursing into embedded operations.
func encodeEnvelope(o *Op) (*envelope, error) {
	if o == nil {
		return nil, fmt.Errorf("encode operation: %w", ErrNilOperand)
	}

	if !o.mutable {
		return &envelope{
			Kind:      o.kind.name,
			Canonical: true,
			Args: &argsRecord{
				Params:   o.params,
				Label:    o.label,
				Duration: o.duration,
				Unit:     o.unit,
			},
		}, nil
	}

	rec := &fieldRecord{
		Params:   o.params,
		Label:    o.label,
		Duration: o.duration,
		Unit:     o.unit,
	}
	if o.cond != nil {
		cr := &conditionRecord{Value: o.cond.value}
		if o.cond.signal != nil {
			cr.SignalID = o.cond.signal.id.String()
			cr.SignalName = o.cond.signal.name
		}
		rec.Condition = cr
	}
	if o.inner != nil {
		inner, err := encodeEnvelope(o.inner)
		if err != nil {
			return nil, err
		}
		rec.Inner = inner
	}
	if len(o.ext) > 0 {
		rec.Ext = o.ext
	}

	return &envelope{Kind: o.kind.name, Fields: rec}, nil
}

// decodeEnvelope rebuilds an operation from its wire form.
func decodeEnvelope(env *envelope) (*Op, error) {
	kind, err := LookupKind(env.Kind)
	if err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}

	if env.Canonical {
		args := env.Args
		if args == nil {
			args = &argsRecord{}
		}
		opts := make([]Option, 0, 3)
		if args.Params != nil {
			opts = append(opts, WithParams(args.Params...))
		}
		if args.Label != "" {
			opts = append(opts, WithLabel(args.Label))
		}
		if args.Duration != 0 || (args.Unit != "" && args.Unit != UnitTick) {
			opts = append(opts, WithDuration(args.Duration, args.Unit))
		}
		return kind.New(opts...), nil
	}

	rec := env.Fields
	if rec == nil {
		rec = &fieldRecord{}
	}
	o := newStandalone(kind, Args{
		Params:   rec.Params,
		Label:    rec.Label,
		Duration: rec.Duration,
		Unit:     rec.Unit,
	}.normalized())

	if rec.Condition != nil {
		var sig *Signal
		if rec.Condition.SignalID != "" {
			id, err := uuid.Parse(rec.Condition.SignalID)
			if err != nil {
				return nil, fmt.Errorf("decode condition: %w", err)
			}
			sig = restoreSignal(id, rec.Condition.SignalName)
		}
		o.cond = &Condition{signal: sig, value: rec.Condition.Value}
	}
	if rec.Inner != nil {
		inner, err := decodeEnvelope(rec.Inner)
		if err != nil {
			return nil, err
		}
		o.inner = inner
	}
	if len(rec.Ext) > 0 {
		o.ext = rec.Ext
	}

	return o, nil
}
