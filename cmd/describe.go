package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/op"
	"github.com/zjrosen/strand/internal/presentation"
	"github.com/zjrosen/strand/internal/ui/markdown"
)

var (
	describeWidth int
	describePlain bool
)

var describeCmd = &cobra.Command{
	Use:   "describe <kind>",
	Short: "Show a kind's documentation",
	Long: `Render a kind's documentation, parameters, and canonical entries.

Examples:
  strand describe burst
  strand describe fence --width 100

  # Raw markdown, e.g. for piping into another renderer
  strand describe burst --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().IntVar(&describeWidth, "width", 80, "Render width in columns")
	describeCmd.Flags().BoolVar(&describePlain, "plain", false, "Print raw markdown without styling")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(_ *cobra.Command, args []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	kind, err := op.LookupKind(args[0])
	if err != nil {
		return err
	}
	doc := presentation.KindMarkdown(presentation.FromKind(kind))

	if describePlain {
		fmt.Println(doc)
		return nil
	}

	renderer, err := markdown.New(describeWidth, cfg.UI.MarkdownStyle)
	if err != nil {
		return fmt.Errorf("building renderer: %w", err)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering documentation: %w", err)
	}
	fmt.Print(out)
	return nil
}
