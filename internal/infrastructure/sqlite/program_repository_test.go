package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/strand/internal/programs/domain"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) domain.ProgramRepository {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.ProgramRepository()
}

func TestProgramRepository_Save_Insert(t *testing.T) {
	repo := setupTestRepo(t)

	program := domain.NewProgram("guid-1", "boot-sequence", `{"name":"boot-sequence","ops":[]}`)
	require.Equal(t, int64(0), program.ID(), "New program should have ID 0")

	err := repo.Save(program)
	require.NoError(t, err, "Save should succeed for new program")
	require.Greater(t, program.ID(), int64(0), "Program should have ID assigned after insert")

	// Verify data was persisted correctly
	found, err := repo.FindByName("boot-sequence")
	require.NoError(t, err, "FindByName should succeed")
	require.Equal(t, program.GUID(), found.GUID())
	require.Equal(t, program.Name(), found.Name())
	require.Equal(t, program.Chain(), found.Chain())
	require.WithinDuration(t, program.CreatedAt(), found.CreatedAt(), time.Second)
	require.WithinDuration(t, program.UpdatedAt(), found.UpdatedAt(), time.Second)
}

func TestProgramRepository_Save_Update(t *testing.T) {
	repo := setupTestRepo(t)

	// Create program
	program := domain.NewProgram("guid-1", "boot-sequence", `{"ops":[]}`)
	err := repo.Save(program)
	require.NoError(t, err)
	originalID := program.ID()
	originalCreatedAt := program.CreatedAt()

	// Sleep briefly to ensure updatedAt changes
	time.Sleep(10 * time.Millisecond)

	// Update chain and description
	program.SetChain(`{"ops":[{"kind":"halt","canonical":true}]}`)
	program.SetDescription("halts immediately")
	err = repo.Save(program)
	require.NoError(t, err, "Save should succeed for update")

	// Verify update
	found, err := repo.FindByGUID("guid-1")
	require.NoError(t, err)
	require.Equal(t, originalID, found.ID(), "ID should not change")
	require.Equal(t, `{"ops":[{"kind":"halt","canonical":true}]}`, found.Chain())
	require.Equal(t, "halts immediately", found.Description())
	require.Equal(t, originalCreatedAt.Unix(), found.CreatedAt().Unix(), "CreatedAt should not change")
}

func TestProgramRepository_Save_Rename(t *testing.T) {
	repo := setupTestRepo(t)

	program := domain.NewProgram("guid-1", "old-name", "{}")
	err := repo.Save(program)
	require.NoError(t, err)

	program.SetName("new-name")
	err = repo.Save(program)
	require.NoError(t, err)

	// Old name should be gone, new name should resolve
	_, err = repo.FindByName("old-name")
	require.Error(t, err, "old name should no longer resolve")

	found, err := repo.FindByName("new-name")
	require.NoError(t, err)
	require.Equal(t, "guid-1", found.GUID())
}

func TestProgramRepository_Save_DuplicateName(t *testing.T) {
	repo := setupTestRepo(t)

	first := domain.NewProgram("guid-1", "boot-sequence", "{}")
	err := repo.Save(first)
	require.NoError(t, err)

	// Inserting a second program with the same name fails
	second := domain.NewProgram("guid-2", "boot-sequence", "{}")
	err = repo.Save(second)
	require.Error(t, err, "Save should fail for duplicate name")

	var dup *domain.DuplicateNameError
	require.True(t, errors.As(err, &dup), "Error should be DuplicateNameError")
	require.Equal(t, "boot-sequence", dup.Name)

	// Renaming onto a taken name fails the same way
	third := domain.NewProgram("guid-3", "drain-cycle", "{}")
	err = repo.Save(third)
	require.NoError(t, err)

	third.SetName("boot-sequence")
	err = repo.Save(third)
	require.Error(t, err, "Rename onto a taken name should fail")
	require.True(t, errors.As(err, &dup), "Error should be DuplicateNameError")
}

func TestProgramRepository_FindByName_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByName("nonexistent")
	require.Error(t, err, "FindByName should return error for non-existent program")

	var notFound *domain.ProgramNotFoundError
	require.True(t, errors.As(err, &notFound), "Error should be ProgramNotFoundError")
	require.Equal(t, "nonexistent", notFound.Name)
}

func TestProgramRepository_FindByGUID(t *testing.T) {
	repo := setupTestRepo(t)

	program := domain.NewProgram("guid-1", "boot-sequence", "{}")
	err := repo.Save(program)
	require.NoError(t, err)

	found, err := repo.FindByGUID("guid-1")
	require.NoError(t, err, "FindByGUID should succeed")
	require.Equal(t, program.ID(), found.ID())
	require.Equal(t, "boot-sequence", found.Name())
}

func TestProgramRepository_FindByGUID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByGUID("nonexistent-guid")
	require.Error(t, err, "FindByGUID should return error for non-existent program")

	var notFound *domain.ProgramNotFoundError
	require.True(t, errors.As(err, &notFound), "Error should be ProgramNotFoundError")
	require.Equal(t, "nonexistent-guid", notFound.GUID)
}

func TestProgramRepository_List_OrderedByName(t *testing.T) {
	repo := setupTestRepo(t)

	// Insert out of order
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		program := domain.NewProgram("guid-"+name, name, "{}")
		err := repo.Save(program)
		require.NoError(t, err)
	}

	programs, err := repo.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, programs, 3)
	require.Equal(t, "alpha", programs[0].Name())
	require.Equal(t, "bravo", programs[1].Name())
	require.Equal(t, "charlie", programs[2].Name())
}

func TestProgramRepository_List_NamePrefix(t *testing.T) {
	repo := setupTestRepo(t)

	for _, name := range []string{"boot-fast", "boot-slow", "drain-cycle"} {
		program := domain.NewProgram("guid-"+name, name, "{}")
		err := repo.Save(program)
		require.NoError(t, err)
	}

	programs, err := repo.List(domain.ListFilter{NamePrefix: "boot-"})
	require.NoError(t, err)
	require.Len(t, programs, 2, "Should only find boot-* programs")
	require.Equal(t, "boot-fast", programs[0].Name())
	require.Equal(t, "boot-slow", programs[1].Name())
}

func TestProgramRepository_List_PrefixEscapesWildcards(t *testing.T) {
	repo := setupTestRepo(t)

	for _, name := range []string{"a_b", "axb"} {
		program := domain.NewProgram("guid-"+name, name, "{}")
		err := repo.Save(program)
		require.NoError(t, err)
	}

	// The underscore must match literally, not as a single-char wildcard
	programs, err := repo.List(domain.ListFilter{NamePrefix: "a_"})
	require.NoError(t, err)
	require.Len(t, programs, 1)
	require.Equal(t, "a_b", programs[0].Name())
}

func TestProgramRepository_List_Limit(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 5; i++ {
		program := domain.NewProgram(fmt.Sprintf("guid-%d", i), fmt.Sprintf("program-%d", i), "{}")
		err := repo.Save(program)
		require.NoError(t, err)
	}

	programs, err := repo.List(domain.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, programs, 2, "Should return only 2 programs with limit")
}

func TestProgramRepository_List_Empty(t *testing.T) {
	repo := setupTestRepo(t)

	programs, err := repo.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, programs)
}

func TestProgramRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)

	program := domain.NewProgram("guid-1", "boot-sequence", "{}")
	err := repo.Save(program)
	require.NoError(t, err)

	err = repo.Delete("boot-sequence")
	require.NoError(t, err, "Delete should succeed")

	_, err = repo.FindByName("boot-sequence")
	require.Error(t, err, "FindByName should not find deleted program")

	var notFound *domain.ProgramNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestProgramRepository_Delete_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Delete("nonexistent")
	require.Error(t, err, "Delete should return error for non-existent program")

	var notFound *domain.ProgramNotFoundError
	require.True(t, errors.As(err, &notFound), "Error should be ProgramNotFoundError")
}

func TestProgramRepository_Delete_FreesName(t *testing.T) {
	repo := setupTestRepo(t)

	program := domain.NewProgram("guid-1", "boot-sequence", "{}")
	err := repo.Save(program)
	require.NoError(t, err)

	err = repo.Delete("boot-sequence")
	require.NoError(t, err)

	// The name is free for reuse after delete
	replacement := domain.NewProgram("guid-2", "boot-sequence", "{}")
	err = repo.Save(replacement)
	require.NoError(t, err, "Deleted name should be reusable")
}

func TestProgramRepository_Close(t *testing.T) {
	repo := setupTestRepo(t)
	err := repo.Close()
	require.NoError(t, err, "Close should succeed (no-op)")
}

// TestProgramRepository_NameLookupConsistency is a property-based test using rapid.
// It verifies that names behave as a consistent unique index across save, list,
// and delete.
func TestProgramRepository_NameLookupConsistency(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		repo := setupTestRepo(t)

		// Generate random programs; names may repeat, duplicates must be rejected
		numPrograms := rapid.IntRange(1, 8).Draw(r, "numPrograms")
		expected := make(map[string]string) // name -> chain
		for i := 0; i < numPrograms; i++ {
			name := rapid.StringMatching(`prog-[a-z]{3,8}`).Draw(r, "name")
			chain := rapid.StringMatching(`chain-[a-z0-9]{4,12}`).Draw(r, "chain")

			program := domain.NewProgram(fmt.Sprintf("guid-%s-%d", name, i), name, chain)
			err := repo.Save(program)
			if _, taken := expected[name]; taken {
				var dup *domain.DuplicateNameError
				if !errors.As(err, &dup) {
					r.Fatalf("expected DuplicateNameError for taken name %q, got %v", name, err)
				}
				continue
			}
			if err != nil {
				r.Fatalf("Save failed for fresh name %q: %v", name, err)
			}
			expected[name] = chain
		}

		// Every saved name resolves to its chain
		for name, chain := range expected {
			found, err := repo.FindByName(name)
			if err != nil {
				r.Fatalf("FindByName(%q) failed: %v", name, err)
			}
			if found.Chain() != chain {
				r.Fatalf("FindByName(%q) returned wrong chain: got %q want %q", name, found.Chain(), chain)
			}
		}

		// List returns exactly the saved set, ordered by name
		programs, err := repo.List(domain.ListFilter{})
		if err != nil {
			r.Fatalf("List failed: %v", err)
		}
		if len(programs) != len(expected) {
			r.Fatalf("List returned %d programs, want %d", len(programs), len(expected))
		}
		names := make([]string, len(programs))
		for i, p := range programs {
			names[i] = p.Name()
			if expected[p.Name()] != p.Chain() {
				r.Fatalf("List returned wrong chain for %q", p.Name())
			}
		}
		if !sort.StringsAreSorted(names) {
			r.Fatalf("List not ordered by name: %v", names)
		}

		// Deleting one name removes exactly that program
		for name := range expected {
			if err := repo.Delete(name); err != nil {
				r.Fatalf("Delete(%q) failed: %v", name, err)
			}
			delete(expected, name)
			break
		}
		for name := range expected {
			if _, err := repo.FindByName(name); err != nil {
				r.Fatalf("FindByName(%q) failed after unrelated delete: %v", name, err)
			}
		}
	})
}

// TestProgramModel_RoundTrip verifies that converting domain -> model -> domain preserves all values.
func TestProgramModel_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second) // SQLite stores Unix timestamps
	createdAt := now.Add(-2 * time.Hour)
	original := domain.ReconstituteProgram(
		123,
		"test-guid",
		"boot-sequence",
		"runs at startup",
		`{"name":"boot-sequence","ops":[]}`,
		createdAt,
		now,
	)

	model := toProgramModel(original)
	require.Equal(t, int64(123), model.ID)
	require.Equal(t, "test-guid", model.GUID)
	require.Equal(t, "boot-sequence", model.Name)
	require.NotNil(t, model.Description)
	require.Equal(t, "runs at startup", *model.Description)
	require.Equal(t, `{"name":"boot-sequence","ops":[]}`, model.Chain)
	require.Equal(t, createdAt.Unix(), model.CreatedAt)
	require.Equal(t, now.Unix(), model.UpdatedAt)

	restored := model.toDomain()
	require.Equal(t, original.ID(), restored.ID())
	require.Equal(t, original.GUID(), restored.GUID())
	require.Equal(t, original.Name(), restored.Name())
	require.Equal(t, original.Description(), restored.Description())
	require.Equal(t, original.Chain(), restored.Chain())
	require.Equal(t, original.CreatedAt().Unix(), restored.CreatedAt().Unix())
	require.Equal(t, original.UpdatedAt().Unix(), restored.UpdatedAt().Unix())
}

// TestProgramModel_RoundTrip_NilDescription verifies nil description is preserved.
func TestProgramModel_RoundTrip_NilDescription(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	original := domain.ReconstituteProgram(456, "test-guid", "drain-cycle", "", "{}", now, now)

	model := toProgramModel(original)
	require.Nil(t, model.Description)

	restored := model.toDomain()
	require.Empty(t, restored.Description())
}
