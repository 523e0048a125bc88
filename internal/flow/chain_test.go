package flow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/strand/internal/op"
	"github.com/zjrosen/strand/internal/opset"
)

func TestChain_Append_NilRejected(t *testing.T) {
	chain := NewChain("pipeline")

	err := chain.Append(opset.Halt(), nil)

	require.ErrorIs(t, err, ErrNilOp)
	require.Zero(t, chain.Len())
}

func TestChain_At_OutOfRange(t *testing.T) {
	chain := NewChain("pipeline")
	require.NoError(t, chain.Append(opset.Halt()))

	_, err := chain.At(1)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = chain.At(-1)
	require.ErrorIs(t, err, ErrOutOfRange)

	got, err := chain.At(0)
	require.NoError(t, err)
	require.Same(t, opset.Halt(), got)
}

func TestChain_Guard_OriginalUntouched(t *testing.T) {
	chain := NewChain("pipeline")
	require.NoError(t, chain.Append(opset.Halt()))
	sig := op.NewSignal("ready")

	require.NoError(t, chain.Guard(0, sig, 1))

	guarded, err := chain.At(0)
	require.NoError(t, err)
	require.True(t, guarded.Mutable())
	require.Same(t, sig, guarded.Condition().Signal())

	// The canonical instance is still the registry's, unconditioned.
	require.NotSame(t, opset.Halt(), guarded)
	require.Nil(t, opset.Halt().Condition())
}

func TestChain_RoundTrip_CanonicalIdentity(t *testing.T) {
	chain := NewChain("pipeline")
	labeled := opset.Mark(op.WithLabel("phase-1"))
	require.NoError(t, chain.Append(opset.Halt(), opset.Burst(1), labeled, opset.Fence(1)))
	require.NoError(t, chain.Guard(2, op.NewSignal("gate"), 1))

	data, err := json.Marshal(chain)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, "pipeline", decoded.Name())
	require.Equal(t, 4, decoded.Len())
	require.True(t, decoded.Equal(chain))

	// Canonical elements come back as the registry's shared references.
	first, _ := decoded.At(0)
	require.Same(t, opset.Halt(), first)
	second, _ := decoded.At(1)
	require.Same(t, opset.Burst(1), second)
	fourth, _ := decoded.At(3)
	require.Same(t, opset.Fence(1), fourth)

	// The standalone element is an independent, value-equal instance.
	third, _ := decoded.At(2)
	original, _ := chain.At(2)
	require.NotSame(t, original, third)
	require.True(t, third.Equal(original))
	require.True(t, third.Mutable())
}

func TestChain_RoundTrip_UnknownKindFails(t *testing.T) {
	_, err := Decode([]byte(`{"name":"x","ops":[{"kind":"ghost","canonical":true}]}`))

	require.ErrorIs(t, err, op.ErrUnresolvedKind)
}

func TestChain_DecodeStrict_RoundTrip(t *testing.T) {
	chain := NewChain("pipeline")
	require.NoError(t, chain.Append(opset.Halt(), opset.Burst(1)))

	data, err := json.Marshal(chain)
	require.NoError(t, err)

	decoded, err := DecodeStrict(data)
	require.NoError(t, err)
	require.True(t, decoded.Equal(chain))

	first, _ := decoded.At(0)
	require.Same(t, opset.Halt(), first)
}

func TestChain_DecodeStrict_UnknownOpFieldRejected(t *testing.T) {
	// The lenient codec ignores the stray field; the strict one does not.
	doc := []byte(`{"ops":[{"kind":"halt","canonical":true,"surprise":1}]}`)

	_, err := Decode(doc)
	require.NoError(t, err)

	_, err = DecodeStrict(doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "op 0")
	require.Contains(t, err.Error(), "surprise")
}

func TestChain_DecodeStrict_UnknownDocumentFieldRejected(t *testing.T) {
	_, err := DecodeStrict([]byte(`{"name":"x","revision":3,"ops":[]}`))

	require.Error(t, err)
	require.Contains(t, err.Error(), "revision")
}

func TestChain_Equal(t *testing.T) {
	a := NewChain("same")
	b := NewChain("same")
	require.NoError(t, a.Append(opset.Halt(), opset.Fence(2)))
	require.NoError(t, b.Append(opset.Halt(), opset.Fence(2)))

	require.True(t, a.Equal(b))

	require.NoError(t, b.Append(opset.Mark()))
	require.False(t, a.Equal(b))

	require.False(t, a.Equal(NewChain("other")))
	var nilChain *Chain
	require.True(t, nilChain.Equal(nil))
	require.False(t, a.Equal(nil))
}

func TestChain_Ops_ReturnsCopy(t *testing.T) {
	chain := NewChain("pipeline")
	require.NoError(t, chain.Append(opset.Halt()))

	ops := chain.Ops()
	ops[0] = nil

	got, err := chain.At(0)
	require.NoError(t, err)
	require.NotNil(t, got)
}
