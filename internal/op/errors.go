package op

import "errors"

// Interning errors
var (
	ErrImmutable      = errors.New("operation is immutable")
	ErrUnresolvedKind = errors.New("kind not registered")
	ErrDuplicateKind  = errors.New("kind name already defined")
	ErrKeyCollision   = errors.New("lookup key already registered")
	ErrUnkeyedArgs    = errors.New("arguments resolve to no lookup key")
	ErrEmptyKindName  = errors.New("kind name cannot be empty")
	ErrNilOperand     = errors.New("operand cannot be nil")
)
