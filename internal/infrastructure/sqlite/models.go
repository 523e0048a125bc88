package sqlite

import (
	"time"

	"github.com/zjrosen/strand/internal/programs/domain"
)

// ProgramModel represents the database row for the programs table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type ProgramModel struct {
	ID          int64
	GUID        string
	Name        string
	Description *string // nullable
	Chain       string
	CreatedAt   int64 // Unix timestamp
	UpdatedAt   int64 // Unix timestamp
}

// toProgramModel converts a domain Program entity to a database ProgramModel.
func toProgramModel(p *domain.Program) *ProgramModel {
	m := &ProgramModel{
		ID:        p.ID(),
		GUID:      p.GUID(),
		Name:      p.Name(),
		Chain:     p.Chain(),
		CreatedAt: p.CreatedAt().Unix(),
		UpdatedAt: p.UpdatedAt().Unix(),
	}
	if p.Description() != "" {
		description := p.Description()
		m.Description = &description
	}
	return m
}

// toDomain converts a database ProgramModel to a domain Program entity.
func (m *ProgramModel) toDomain() *domain.Program {
	var description string
	if m.Description != nil {
		description = *m.Description
	}
	return domain.ReconstituteProgram(
		m.ID,
		m.GUID,
		m.Name,
		description,
		m.Chain,
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.UpdatedAt, 0),
	)
}
