package presentation

import (
	"encoding/json"
	"time"

	"github.com/zjrosen/strand/internal/op"
	"github.com/zjrosen/strand/internal/programs/domain"
)

// KindDTO represents a registered kind for presentation
type KindDTO struct {
	Name            string     `json:"name"`
	Doc             string     `json:"doc,omitempty"`
	Params          []int      `json:"params,omitempty"`
	Parent          string     `json:"parent,omitempty"`
	SuppressDefault bool       `json:"suppress_default,omitempty"`
	Entries         []EntryDTO `json:"entries"`
}

// EntryDTO represents one canonical entry of a kind. An empty key is the
// default-arguments entry.
type EntryDTO struct {
	Key      string  `json:"key"`
	Params   []int   `json:"params,omitempty"`
	Label    string  `json:"label,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// ProgramDTO represents a stored program for presentation
type ProgramDTO struct {
	GUID        string    `json:"guid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Ops         int       `json:"ops"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromKind converts a registered kind to a DTO, seeding its entries if
// this is the kind's first use.
func FromKind(k *op.Kind) KindDTO {
	keys := k.Keys()
	entries := k.Entries()

	entryDTOs := make([]EntryDTO, 0, len(entries))
	for i, entry := range entries {
		dto := EntryDTO{
			Params:   entry.Params(),
			Label:    entry.Label(),
			Duration: entry.Duration(),
		}
		if entry.Unit() != op.UnitTick {
			dto.Unit = string(entry.Unit())
		}
		if i < len(keys) {
			dto.Key = string(keys[i])
		}
		entryDTOs = append(entryDTOs, dto)
	}

	parent := ""
	if k.Parent() != nil {
		parent = k.Parent().Name()
	}

	return KindDTO{
		Name:            k.Name(),
		Doc:             k.Doc(),
		Params:          k.Defaults().Params,
		Parent:          parent,
		SuppressDefault: k.SuppressesDefault(),
		Entries:         entryDTOs,
	}
}

// FromKinds converts a slice of kinds to DTOs
func FromKinds(kinds []*op.Kind) []KindDTO {
	dtos := make([]KindDTO, len(kinds))
	for i, k := range kinds {
		dtos[i] = FromKind(k)
	}
	return dtos
}

// FromProgram converts a stored program to a DTO. The op count comes from
// the encoded payload without touching the registry, so listings work
// even when the program's kinds are not loaded.
func FromProgram(p *domain.Program) ProgramDTO {
	return ProgramDTO{
		GUID:        p.GUID(),
		Name:        p.Name(),
		Description: p.Description(),
		Ops:         opCount(p.Chain()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// FromPrograms converts a slice of stored programs to DTOs
func FromPrograms(programs []*domain.Program) []ProgramDTO {
	dtos := make([]ProgramDTO, len(programs))
	for i, p := range programs {
		dtos[i] = FromProgram(p)
	}
	return dtos
}

// opCount counts the operations in an encoded chain document.
func opCount(encoded string) int {
	var doc struct {
		Ops []json.RawMessage `json:"ops"`
	}
	if err := json.Unmarshal([]byte(encoded), &doc); err != nil {
		return 0
	}
	return len(doc.Ops)
}
