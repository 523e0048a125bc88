package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatKinds formats a list of kinds as JSON
func (f *Formatter) FormatKinds(kinds []KindDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(kinds)
}

// FormatPrograms formats a list of programs as JSON
func (f *Formatter) FormatPrograms(programs []ProgramDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(programs)
}

// FormatProgram formats a single program as JSON
func (f *Formatter) FormatProgram(program ProgramDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(program)
}
