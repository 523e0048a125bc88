package testutil

import "time"

// programData holds all data for a program row to be inserted.
type programData struct {
	guid        string
	name        string
	description *string
	chain       string
	createdAt   time.Time
	updatedAt   time.Time
}

// defaultProgram returns a programData with sensible defaults.
func defaultProgram(name string) programData {
	now := time.Now()
	return programData{
		guid:      name + "-guid", // Default guid derives from the name
		name:      name,
		chain:     `{"ops":[]}`,
		createdAt: now,
		updatedAt: now,
	}
}

// ProgramOption configures a program during builder setup.
type ProgramOption func(*programData)

// GUID sets the program guid.
func GUID(guid string) ProgramOption {
	return func(p *programData) { p.guid = guid }
}

// Description sets the program description.
func Description(desc string) ProgramOption {
	return func(p *programData) { p.description = &desc }
}

// ChainJSON sets the encoded chain payload.
func ChainJSON(chain string) ProgramOption {
	return func(p *programData) { p.chain = chain }
}

// CreatedAt sets the created_at timestamp.
func CreatedAt(t time.Time) ProgramOption {
	return func(p *programData) { p.createdAt = t }
}

// UpdatedAt sets the updated_at timestamp.
func UpdatedAt(t time.Time) ProgramOption {
	return func(p *programData) { p.updatedAt = t }
}
