package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/config"
	"github.com/zjrosen/strand/internal/op"
	"github.com/zjrosen/strand/internal/presentation"
	"github.com/zjrosen/strand/internal/ui/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse registered kinds interactively",
	Long: `Browse the kind catalog in a full-screen terminal UI.

The left pane lists every registered kind; the right pane renders the
selected kind's documentation. Rows are clickable and the detail pane
scrolls with the mouse wheel.

Keys:
  j/k   move selection    enter  inspect kind
  tab   switch pane       t      toggle key column
  ?     help              q      quit`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := initLogging("strand")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer cleanup()

	if err := loadCatalogs(); err != nil {
		return err
	}

	zone.NewGlobal()
	defer zone.Close()

	model := browse.New(presentation.FromKinds(op.Kinds()), cfg.UI)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
