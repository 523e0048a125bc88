package op

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var testKindSeq atomic.Int64

// defineTestKind defines a kind for one test scenario, generating a unique
// name when the spec leaves it empty. The kind catalog is process-wide, so
// tests never reuse names.
func defineTestKind(t *testing.T, spec Spec) *Kind {
	t.Helper()
	if spec.Name == "" {
		spec.Name = fmt.Sprintf("test-kind-%d", testKindSeq.Add(1))
	}
	k, err := DefineKind(spec)
	require.NoError(t, err)
	return k
}

func TestKind_New_CanonicalUniqueness(t *testing.T) {
	halt := defineTestKind(t, Spec{})

	first := halt.New()
	second := halt.New()

	require.Same(t, first, second)
	require.False(t, first.Mutable())
}

func TestKind_New_LabelForcesStandalone(t *testing.T) {
	halt := defineTestKind(t, Spec{})

	labeled := halt.New(WithLabel("checkpoint"))

	require.NotSame(t, halt.New(), labeled)
	require.True(t, labeled.Mutable())
	require.Equal(t, "checkpoint", labeled.Label())

	// Identical deviating arguments still never share an instance.
	require.NotSame(t, labeled, halt.New(WithLabel("checkpoint")))
}

func TestKind_New_DurationForcesStandalone(t *testing.T) {
	halt := defineTestKind(t, Spec{})

	timed := halt.New(WithDuration(3, UnitTick))

	require.NotSame(t, halt.New(), timed)
	require.True(t, timed.Mutable())
	require.Equal(t, 3.0, timed.Duration())
	require.Equal(t, UnitTick, timed.Unit())
}

func TestKind_New_ParamDeviationForcesStandalone(t *testing.T) {
	fence := defineTestKind(t, Spec{Params: []int{1}})

	canonical := fence.New()
	wide := fence.New(WithParams(4))

	require.False(t, canonical.Mutable())
	require.Equal(t, []int{1}, canonical.Params())
	require.True(t, wide.Mutable())
	require.Equal(t, []int{4}, wide.Params())
}

func TestKind_New_SuppressedDefault(t *testing.T) {
	loose := defineTestKind(t, Spec{SuppressDefault: true})

	first := loose.New()
	second := loose.New()

	require.NotSame(t, first, second)
	require.True(t, first.Mutable())
	require.True(t, second.Mutable())
	require.True(t, first.Equal(second))
}

func TestOp_SetLabel_ImmutableRejected(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	canonical := halt.New()

	err := canonical.SetLabel("nope")

	require.ErrorIs(t, err, ErrImmutable)
	require.Empty(t, canonical.Label())
}

func TestOp_Mutators_ImmutableRejected(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	canonical := halt.New()
	sig := NewSignal("done")

	require.ErrorIs(t, canonical.SetDuration(1, UnitSec), ErrImmutable)
	require.ErrorIs(t, canonical.SetCondition(sig, 1), ErrImmutable)
	require.ErrorIs(t, canonical.ClearCondition(), ErrImmutable)
	require.ErrorIs(t, canonical.SetExt("note", "x"), ErrImmutable)
	require.ErrorIs(t, canonical.DeleteExt("note"), ErrImmutable)

	// Nothing changed and the extension table still observes absence.
	require.Zero(t, canonical.Duration())
	require.Nil(t, canonical.Condition())
	_, ok := canonical.Ext("note")
	require.False(t, ok)
	require.Empty(t, canonical.ExtNames())
}

func TestOp_Mutators_StandaloneSucceed(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	m := halt.New(WithLabel("work"))
	sig := NewSignal("ready")

	require.NoError(t, m.SetLabel("renamed"))
	require.NoError(t, m.SetDuration(2.5, UnitSec))
	require.NoError(t, m.SetCondition(sig, 7))
	require.NoError(t, m.SetExt("owner", "scheduler"))

	require.Equal(t, "renamed", m.Label())
	require.Equal(t, 2.5, m.Duration())
	require.Equal(t, UnitSec, m.Unit())
	require.Equal(t, int64(7), m.Condition().Value())
	require.Same(t, sig, m.Condition().Signal())
	owner, ok := m.Ext("owner")
	require.True(t, ok)
	require.Equal(t, "scheduler", owner)
	require.Equal(t, []string{"owner"}, m.ExtNames())

	require.NoError(t, m.DeleteExt("owner"))
	_, ok = m.Ext("owner")
	require.False(t, ok)

	require.NoError(t, m.ClearCondition())
	require.Nil(t, m.Condition())
}

func TestOp_ToMutable_AlwaysNewInstance(t *testing.T) {
	halt := defineTestKind(t, Spec{})

	canonical := halt.New()
	unlocked := canonical.ToMutable()
	require.NotSame(t, canonical, unlocked)
	require.True(t, unlocked.Mutable())
	require.Same(t, canonical.Kind(), unlocked.Kind())

	// Even an already-mutable source gets a fresh instance.
	again := unlocked.ToMutable()
	require.NotSame(t, unlocked, again)
	require.True(t, again.Mutable())

	// Mutating the result never reaches the source.
	require.NoError(t, unlocked.SetLabel("local"))
	require.Empty(t, canonical.Label())
}

func TestOp_ToMutable_CarriesFields(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	sig := NewSignal("gate")

	m := halt.New(WithLabel("work"), WithDuration(4, UnitTick))
	require.NoError(t, m.SetCondition(sig, 1))
	require.NoError(t, m.SetExt("attempt", 3))

	copied := m.ToMutable()

	require.Equal(t, "work", copied.Label())
	require.Equal(t, 4.0, copied.Duration())
	require.Same(t, sig, copied.Condition().Signal())
	attempt, ok := copied.Ext("attempt")
	require.True(t, ok)
	require.Equal(t, 3, attempt)
	require.True(t, copied.Equal(m))
}

func TestOp_Copy_CanonicalReturnsSame(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	canonical := halt.New()

	require.Same(t, canonical, canonical.Copy())
	require.Same(t, canonical, canonical.DeepCopy())
}

func TestOp_Copy_StandaloneDuplicates(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	m := halt.New(WithLabel("work"))

	copied := m.Copy()

	require.NotSame(t, m, copied)
	require.True(t, copied.Mutable())
	require.True(t, copied.Equal(m))

	require.NoError(t, copied.SetLabel("changed"))
	require.Equal(t, "work", m.Label())
}

func TestOp_Copy_SharesExtValues(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	m := halt.New(WithLabel("work"))
	shared := &struct{ N int }{N: 5}
	require.NoError(t, m.SetExt("shared", shared))

	copied := m.Copy()

	// The table itself is duplicated but values stay shared.
	got, ok := copied.Ext("shared")
	require.True(t, ok)
	require.Same(t, shared, got)

	require.NoError(t, copied.SetExt("extra", 1))
	_, ok = m.Ext("extra")
	require.False(t, ok)
}

func TestOp_DeepCopy_PreservesSignalReference(t *testing.T) {
	halt := defineTestKind(t, Spec{})
	sig := NewSignal("external")

	m := halt.New(WithLabel("guarded"))
	require.NoError(t, m.SetCondition(sig, 2))

	deep := m.DeepCopy()

	require.NotSame(t, m, deep)
	require.Same(t, sig, deep.Condition().Signal())
	require.Equal(t, int64(2), deep.Condition().Value())

	// The condition record itself is independent.
	require.NoError(t, deep.ClearCondition())
	require.NotNil(t, m.Condition())
}

func TestOp_Equal_ValueSemantics(t *testing.T) {
	fence := defineTestKind(t, Spec{Params: []int{1}})
	other := defineTestKind(t, Spec{Params: []int{1}})
	sig := NewSignal("s")

	a := fence.New(WithParams(2), WithLabel("x"))
	b := fence.New(WithParams(2), WithLabel("x"))
	require.True(t, a.Equal(b))

	// Mode is not part of equality.
	require.True(t, fence.New().Equal(fence.New().ToMutable()))

	// Different kinds are never equal, even field-for-field.
	require.False(t, fence.New().Equal(other.New()))

	require.False(t, a.Equal(fence.New(WithParams(3), WithLabel("x"))))
	require.False(t, a.Equal(fence.New(WithParams(2), WithLabel("y"))))
	require.False(t, a.Equal(fence.New(WithParams(2), WithLabel("x"), WithDuration(1, UnitSec))))

	conditioned := When(a, sig, 1)
	require.False(t, a.Equal(conditioned))
	require.True(t, conditioned.Equal(When(a, sig, 1)))
	require.False(t, conditioned.Equal(When(a, sig, 2)))
	require.False(t, conditioned.Equal(When(a, NewSignal("s"), 1)))

	withExt := a.Copy()
	require.NoError(t, withExt.SetExt("note", "v"))
	require.False(t, a.Equal(withExt))

	require.False(t, a.Equal(nil))
	var nilOp *Op
	require.True(t, nilOp.Equal(nil))
}

func TestOp_Params_ReturnsCopy(t *testing.T) {
	fence := defineTestKind(t, Spec{Params: []int{2}})
	canonical := fence.New()

	params := canonical.Params()
	params[0] = 99

	require.Equal(t, []int{2}, canonical.Params())
}

func TestOp_String_Rendering(t *testing.T) {
	fence := defineTestKind(t, Spec{Name: "render-fence", Params: []int{2}})

	require.Equal(t, "render-fence(2)", fence.New().String())

	m := fence.New(WithParams(3), WithLabel("edge"))
	require.Equal(t, `render-fence(3) label="edge"`, m.String())
}
