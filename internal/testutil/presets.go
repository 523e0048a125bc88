package testutil

import "time"

// WithStandardPrograms adds the dataset shared by repository and command
// tests: three programs with distinct names, descriptions, and ages. The
// chain payloads are empty chains, so they decode without any registered
// kinds.
func (b *Builder) WithStandardPrograms() *Builder {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return b.
		WithProgram("boot-sequence",
			Description("Cold start bring-up"),
			ChainJSON(`{"name":"boot-sequence","ops":[]}`),
			CreatedAt(lastWeek), UpdatedAt(now)).
		WithProgram("boot-check",
			Description("Post-boot verification"),
			ChainJSON(`{"name":"boot-check","ops":[]}`),
			CreatedAt(lastWeek), UpdatedAt(yesterday)).
		WithProgram("drain-cycle",
			ChainJSON(`{"name":"drain-cycle","ops":[]}`),
			CreatedAt(yesterday), UpdatedAt(yesterday))
}
