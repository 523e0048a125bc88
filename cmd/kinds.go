package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/op"
	"github.com/zjrosen/strand/internal/presentation"
)

var kindsOutput string

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List registered kinds",
	Long: `List every registered kind with its entry count as a table or JSON.

Built-in kinds are always present; catalog directories from the config
add the rest.

Examples:
  # Table listing
  strand kinds

  # JSON for scripting
  strand kinds -o json

  # Parse specific fields with jq
  strand kinds -o json | jq '.[].name'
  strand kinds -o json | jq '.[] | select(.parent != null)'`,
	RunE: runKinds,
}

func init() {
	kindsCmd.Flags().StringVarP(&kindsOutput, "output", "o", "table", "Output format: table or json")
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(_ *cobra.Command, _ []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	dtos := presentation.FromKinds(op.Kinds())
	formatter := presentation.NewFormatter(os.Stdout)

	switch kindsOutput {
	case "json":
		return formatter.FormatKinds(dtos)
	case "table":
		rows := make([][]string, 0, len(dtos))
		for _, dto := range dtos {
			rows = append(rows, presentation.KindTableRow(dto))
		}
		return formatter.FormatTable(presentation.KindTableColumns(), rows)
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", kindsOutput)
	}
}
