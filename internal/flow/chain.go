// Package flow provides the ordered chain container operations compose into.
// A chain stores references: canonical operations stay shared between every
// chain that uses them, standalone operations belong to the chain's holder.
package flow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zjrosen/strand/internal/op"
)

// Chain errors
var (
	ErrNilOp      = errors.New("chain operation cannot be nil")
	ErrOutOfRange = errors.New("chain index out of range")
)

// Chain is an ordered sequence of operations.
type Chain struct {
	name string
	ops  []*op.Op
}

// NewChain creates an empty chain.
func NewChain(name string) *Chain {
	return &Chain{
		name: name,
		ops:  make([]*op.Op, 0),
	}
}

// Name returns the chain name.
func (c *Chain) Name() string {
	return c.name
}

// Len returns the number of operations.
func (c *Chain) Len() int {
	return len(c.ops)
}

// Append adds operations to the end of the chain.
func (c *Chain) Append(ops ...*op.Op) error {
	for _, o := range ops {
		if o == nil {
			return ErrNilOp
		}
	}
	c.ops = append(c.ops, ops...)
	return nil
}

// At returns the operation at index i.
func (c *Chain) At(i int) (*op.Op, error) {
	if i < 0 || i >= len(c.ops) {
		return nil, fmt.Errorf("index %d: %w", i, ErrOutOfRange)
	}
	return c.ops[i], nil
}

// Ops returns the operations in order. The slice is a copy; the operations
// are the chain's own references.
func (c *Chain) Ops() []*op.Op {
	result := make([]*op.Op, len(c.ops))
	copy(result, c.ops)
	return result
}

// Guard replaces the operation at index i with a conditioned standalone
// derived from it. The original operation is never touched: a canonical
// entry stays in the registry, a standalone stays with whoever else
// holds it.
func (c *Chain) Guard(i int, sig *op.Signal, value int64) error {
	if i < 0 || i >= len(c.ops) {
		return fmt.Errorf("index %d: %w", i, ErrOutOfRange)
	}
	c.ops[i] = op.When(c.ops[i], sig, value)
	return nil
}

// Equal reports element-wise value equality between two chains.
func (c *Chain) Equal(other *Chain) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.name != other.name || len(c.ops) != len(other.ops) {
		return false
	}
	for i := range c.ops {
		if !c.ops[i].Equal(other.ops[i]) {
			return false
		}
	}
	return true
}

// chainDoc is the wire form of a chain.
type chainDoc struct {
	Name string            `json:"name,omitempty"`
	Ops  []json.RawMessage `json:"ops"`
}

// MarshalJSON encodes each operation through the identity-preserving codec.
func (c *Chain) MarshalJSON() ([]byte, error) {
	doc := chainDoc{
		Name: c.name,
		Ops:  make([]json.RawMessage, 0, len(c.ops)),
	}
	for i, o := range c.ops {
		data, err := op.Encode(o)
		if err != nil {
			return nil, fmt.Errorf("encode op %d: %w", i, err)
		}
		doc.Ops = append(doc.Ops, data)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON rebuilds the chain, re-interning canonical operations so
// they come back as the registry's shared references.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var doc chainDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode chain: %w", err)
	}
	ops := make([]*op.Op, 0, len(doc.Ops))
	for i, raw := range doc.Ops {
		o, err := op.Decode(raw)
		if err != nil {
			return fmt.Errorf("decode op %d: %w", i, err)
		}
		ops = append(ops, o)
	}
	c.name = doc.Name
	c.ops = ops
	return nil
}

// Decode rebuilds a chain from its JSON form.
func Decode(data []byte) (*Chain, error) {
	chain := NewChain("")
	if err := json.Unmarshal(data, chain); err != nil {
		return nil, err
	}
	return chain, nil
}

// DecodeStrict is Decode with the strict operation codec: unknown fields
// in the chain document or any operation envelope are rejected.
func DecodeStrict(data []byte) (*Chain, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc chainDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode chain: %w", err)
	}
	ops := make([]*op.Op, 0, len(doc.Ops))
	for i, raw := range doc.Ops {
		o, err := op.DecodeStrict(raw)
		if err != nil {
			return nil, fmt.Errorf("decode op %d: %w", i, err)
		}
		ops = append(ops, o)
	}
	chain := NewChain(doc.Name)
	chain.ops = ops
	return chain, nil
}
