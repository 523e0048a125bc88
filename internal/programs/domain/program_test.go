package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProgram(t *testing.T) {
	before := time.Now()
	program := NewProgram("test-guid-123", "boot-sequence", `{"name":"boot-sequence","ops":[]}`)
	after := time.Now()

	// Verify all fields are set correctly
	require.Equal(t, int64(0), program.ID(), "ID should be 0 for new programs")
	require.Equal(t, "test-guid-123", program.GUID())
	require.Equal(t, "boot-sequence", program.Name())
	require.Equal(t, `{"name":"boot-sequence","ops":[]}`, program.Chain())
	require.Empty(t, program.Description())

	// Verify timestamps are within the expected range
	require.False(t, program.CreatedAt().Before(before), "createdAt should be >= before")
	require.False(t, program.CreatedAt().After(after), "createdAt should be <= after")
	require.Equal(t, program.CreatedAt(), program.UpdatedAt(), "createdAt and updatedAt should match for new program")
}

func TestReconstituteProgram(t *testing.T) {
	createdAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 2, 15, 14, 30, 0, 0, time.UTC)

	program := ReconstituteProgram(
		42,
		"reconstituted-guid",
		"drain-cycle",
		"drains all lanes before halting",
		`{"name":"drain-cycle","ops":[]}`,
		createdAt,
		updatedAt,
	)

	require.Equal(t, int64(42), program.ID())
	require.Equal(t, "reconstituted-guid", program.GUID())
	require.Equal(t, "drain-cycle", program.Name())
	require.Equal(t, "drains all lanes before halting", program.Description())
	require.Equal(t, `{"name":"drain-cycle","ops":[]}`, program.Chain())
	require.Equal(t, createdAt, program.CreatedAt())
	require.Equal(t, updatedAt, program.UpdatedAt())
}

func TestProgram_SetName(t *testing.T) {
	program := NewProgram("guid", "old-name", "{}")
	originalUpdatedAt := program.UpdatedAt()

	time.Sleep(time.Millisecond)
	program.SetName("new-name")

	require.Equal(t, "new-name", program.Name())
	require.True(t, program.UpdatedAt().After(originalUpdatedAt), "SetName should bump updatedAt")
}

func TestProgram_SetDescription(t *testing.T) {
	program := NewProgram("guid", "name", "{}")
	originalUpdatedAt := program.UpdatedAt()

	time.Sleep(time.Millisecond)
	program.SetDescription("runs at startup")

	require.Equal(t, "runs at startup", program.Description())
	require.True(t, program.UpdatedAt().After(originalUpdatedAt), "SetDescription should bump updatedAt")
}

func TestProgram_SetChain(t *testing.T) {
	program := NewProgram("guid", "name", `{"ops":[]}`)
	originalUpdatedAt := program.UpdatedAt()

	time.Sleep(time.Millisecond)
	program.SetChain(`{"ops":[{"kind":"halt","canonical":true}]}`)

	require.Equal(t, `{"ops":[{"kind":"halt","canonical":true}]}`, program.Chain())
	require.True(t, program.UpdatedAt().After(originalUpdatedAt), "SetChain should bump updatedAt")
}

func TestProgram_SetID(t *testing.T) {
	program := NewProgram("guid", "name", "{}")
	program.SetID(7)
	require.Equal(t, int64(7), program.ID())
}

func TestProgramNotFoundError(t *testing.T) {
	byName := &ProgramNotFoundError{Name: "boot-sequence"}
	require.Equal(t, `program "boot-sequence" not found`, byName.Error())

	byGUID := &ProgramNotFoundError{GUID: "abc-123"}
	require.Equal(t, `program with guid "abc-123" not found`, byGUID.Error())

	var target *ProgramNotFoundError
	require.True(t, errors.As(error(byName), &target))
}

func TestDuplicateNameError(t *testing.T) {
	err := &DuplicateNameError{Name: "boot-sequence"}
	require.Equal(t, `program "boot-sequence" already exists`, err.Error())
}
