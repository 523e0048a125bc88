package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/strand/internal/op"
	"github.com/zjrosen/strand/internal/programs/domain"
)

func TestFromKind_DefaultPolicy(t *testing.T) {
	kind, err := op.DefineKind(op.Spec{
		Name:   "pres-pulse",
		Doc:    "Pulse kind.\nSecond line.",
		Params: []int{3},
	})
	require.NoError(t, err)

	dto := FromKind(kind)

	assert.Equal(t, "pres-pulse", dto.Name)
	assert.Equal(t, "Pulse kind.\nSecond line.", dto.Doc)
	assert.Equal(t, []int{3}, dto.Params)
	assert.Empty(t, dto.Parent)
	assert.False(t, dto.SuppressDefault)
	require.Len(t, dto.Entries, 1)
	assert.Equal(t, "", dto.Entries[0].Key)
	assert.Equal(t, []int{3}, dto.Entries[0].Params)
	// Default unit is omitted
	assert.Empty(t, dto.Entries[0].Unit)
}

func TestFromKind_AdditionalEntries(t *testing.T) {
	kind, err := op.DefineKind(op.Spec{
		Name:     "pres-latch",
		Params:   []int{1},
		Resolver: op.ArgsKey,
		Additional: []op.Args{
			{Params: []int{2}},
			{Params: []int{4}, Label: "wide"},
		},
	})
	require.NoError(t, err)

	dto := FromKind(kind)

	require.Len(t, dto.Entries, 3)
	assert.Equal(t, `1|""`, dto.Entries[0].Key)
	assert.Equal(t, `2|""`, dto.Entries[1].Key)
	assert.Equal(t, `4|"wide"`, dto.Entries[2].Key)
	assert.Equal(t, "wide", dto.Entries[2].Label)
}

func TestFromKind_DerivedParent(t *testing.T) {
	parent, err := op.DefineKind(op.Spec{Name: "pres-base", Params: []int{1}})
	require.NoError(t, err)
	child, err := parent.Derive(op.Spec{Name: "pres-child"})
	require.NoError(t, err)

	dto := FromKind(child)

	assert.Equal(t, "pres-base", dto.Parent)
	assert.Equal(t, []int{1}, dto.Params)
}

func TestFromKind_SuppressedDefault(t *testing.T) {
	kind, err := op.DefineKind(op.Spec{
		Name:            "pres-raw",
		SuppressDefault: true,
	})
	require.NoError(t, err)

	dto := FromKind(kind)

	assert.True(t, dto.SuppressDefault)
	assert.Empty(t, dto.Entries)
}

func TestFromProgram_CountsOps(t *testing.T) {
	now := time.Now()
	prog := domain.ReconstituteProgram(7, "guid-7", "boot", "cold start",
		`{"name":"boot","ops":[{"kind":"a"},{"kind":"b"}]}`, now, now)

	dto := FromProgram(prog)

	assert.Equal(t, "guid-7", dto.GUID)
	assert.Equal(t, "boot", dto.Name)
	assert.Equal(t, "cold start", dto.Description)
	assert.Equal(t, 2, dto.Ops)
	assert.Equal(t, now, dto.CreatedAt)
}

func TestFromProgram_MalformedChain(t *testing.T) {
	now := time.Now()
	prog := domain.ReconstituteProgram(1, "g", "broken", "", "not json", now, now)

	assert.Equal(t, 0, FromProgram(prog).Ops)
}

func TestFormatter_FormatKinds(t *testing.T) {
	kind, err := op.DefineKind(op.Spec{Name: "pres-fmt", Params: []int{2}})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = NewFormatter(&buf).FormatKinds(FromKinds([]*op.Kind{kind}))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "pres-fmt", decoded[0]["name"])
}

func TestFormatter_FormatPrograms(t *testing.T) {
	now := time.Now()
	prog := domain.ReconstituteProgram(1, "g1", "alpha", "", `{"ops":[]}`, now, now)

	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatPrograms(FromPrograms([]*domain.Program{prog}))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "alpha", decoded[0]["name"])
	_, hasDescription := decoded[0]["description"]
	assert.False(t, hasDescription)
}
