package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/strand/internal/programs/domain"
)

// programColumns is the list of columns to select for program queries.
const programColumns = `id, guid, name, description, chain, created_at, updated_at`

// programRepository implements domain.ProgramRepository using SQLite.
type programRepository struct {
	db *sql.DB
}

// newProgramRepository creates a new programRepository instance.
func newProgramRepository(db *sql.DB) *programRepository {
	return &programRepository{db: db}
}

// Ensure programRepository implements domain.ProgramRepository.
var _ domain.ProgramRepository = (*programRepository)(nil)

// scanProgram scans a row into a ProgramModel.
func scanProgram(scanner interface{ Scan(...any) error }) (*ProgramModel, error) {
	var model ProgramModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Name, &model.Description,
		&model.Chain, &model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// isDuplicateName reports whether err is the UNIQUE violation on programs.name.
func isDuplicateName(err error) bool {
	return err != nil && strings.Contains(err.Error(), "programs.name")
}

// Save persists a program to the database.
// For new programs (ID == 0), inserts a new row and sets the program ID.
// For existing programs (ID > 0), updates the existing row.
// Returns DuplicateNameError if another program already holds the name.
func (r *programRepository) Save(program *domain.Program) error {
	model := toProgramModel(program)

	if program.ID() == 0 {
		// Insert new program
		result, err := r.db.Exec(
			`INSERT INTO programs (guid, name, description, chain, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			model.GUID, model.Name, model.Description, model.Chain,
			model.CreatedAt, model.UpdatedAt,
		)
		if err != nil {
			if isDuplicateName(err) {
				return &domain.DuplicateNameError{Name: model.Name}
			}
			return fmt.Errorf("failed to insert program: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		program.SetID(id)
		return nil
	}

	// Update existing program
	_, err := r.db.Exec(
		`UPDATE programs SET name = ?, description = ?, chain = ?, updated_at = ?
		 WHERE id = ?`,
		model.Name, model.Description, model.Chain, model.UpdatedAt,
		model.ID,
	)
	if err != nil {
		if isDuplicateName(err) {
			return &domain.DuplicateNameError{Name: model.Name}
		}
		return fmt.Errorf("failed to update program: %w", err)
	}
	return nil
}

// FindByName retrieves a program by its unique name.
// Returns ProgramNotFoundError if no matching program exists.
func (r *programRepository) FindByName(name string) (*domain.Program, error) {
	row := r.db.QueryRow(
		`SELECT `+programColumns+` FROM programs WHERE name = ?`,
		name,
	)
	model, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ProgramNotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find program by name: %w", err)
	}
	return model.toDomain(), nil
}

// FindByGUID retrieves a program by its GUID.
// Returns ProgramNotFoundError if no matching program exists.
func (r *programRepository) FindByGUID(guid string) (*domain.Program, error) {
	row := r.db.QueryRow(
		`SELECT `+programColumns+` FROM programs WHERE guid = ?`,
		guid,
	)
	model, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ProgramNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find program by guid: %w", err)
	}
	return model.toDomain(), nil
}

// List retrieves programs matching the given filter criteria.
// Results are ordered by name ascending.
func (r *programRepository) List(filter domain.ListFilter) ([]*domain.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs`
	var args []any

	// Add name prefix filter if specified
	if filter.NamePrefix != "" {
		query += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(filter.NamePrefix)+"%")
	}

	query += ` ORDER BY name ASC`

	// Add limit if specified
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var programs []*domain.Program
	for rows.Next() {
		model, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		programs = append(programs, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}

	return programs, nil
}

// escapeLike escapes LIKE metacharacters so a prefix matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Delete permanently removes a program by name.
// Returns ProgramNotFoundError if no matching program exists.
func (r *programRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM programs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ProgramNotFoundError{Name: name}
	}
	return nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *programRepository) Close() error {
	// No-op: connection is owned by DB struct
	return nil
}
