package op

import "github.com/google/uuid"

// Signal is an external reference an operation's condition can target.
// Identity is carried by the ID, not the address: two Signal values with the
// same ID refer to the same external entity.
type Signal struct {
	id   uuid.UUID
	name string
}

// NewSignal creates a signal with a fresh identity.
func NewSignal(name string) *Signal {
	return &Signal{
		id:   uuid.New(),
		name: name,
	}
}

// restoreSignal rebuilds a signal with a known identity (decode path).
func restoreSignal(id uuid.UUID, name string) *Signal {
	return &Signal{
		id:   id,
		name: name,
	}
}

// ID returns the signal's identity.
func (s *Signal) ID() uuid.UUID {
	return s.id
}

// Name returns the human-readable signal name.
func (s *Signal) Name() string {
	return s.name
}

// String returns the name when set, otherwise the identity.
func (s *Signal) String() string {
	if s.name != "" {
		return s.name
	}
	return s.id.String()
}

// Condition guards an operation on an external signal holding a value.
// Conditions are never part of a constructor call; they are attached only
// through When or a mutable instance's SetCondition.
type Condition struct {
	signal *Signal
	value  int64
}

// Signal returns the condition's external reference.
func (c *Condition) Signal() *Signal {
	return c.signal
}

// Value returns the value the signal is compared against.
func (c *Condition) Value() int64 {
	return c.value
}

// Equal reports whether two conditions target the same signal identity with
// the same value. Nil conditions are equal to each other only.
func (c *Condition) Equal(other *Condition) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.value != other.value {
		return false
	}
	if c.signal == nil || other.signal == nil {
		return c.signal == other.signal
	}
	return c.signal.ID() == other.signal.ID()
}
