package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/presentation"
	"github.com/zjrosen/strand/internal/programs/domain"
)

var (
	programListPrefix string
	programListLimit  int
	programListOutput string
)

var programListCmd = &cobra.Command{
	Use:   "program:list",
	Short: "List saved programs",
	Long: `List saved programs as a table or JSON.

Examples:
  strand program:list
  strand program:list --prefix warm
  strand program:list -o json | jq '.[].name'`,
	RunE: runProgramList,
}

func init() {
	programListCmd.Flags().StringVar(&programListPrefix, "prefix", "", "Only list programs whose name starts with the prefix")
	programListCmd.Flags().IntVar(&programListLimit, "limit", 0, "Maximum number of programs to list (0 = all)")
	programListCmd.Flags().StringVarP(&programListOutput, "output", "o", "table", "Output format: table or json")
	rootCmd.AddCommand(programListCmd)
}

func runProgramList(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := openPrograms()
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := svc.List(cmd.Context(), domain.ListFilter{
		NamePrefix: programListPrefix,
		Limit:      programListLimit,
	})
	if err != nil {
		return fmt.Errorf("listing programs: %w", err)
	}

	dtos := presentation.FromPrograms(list)
	formatter := presentation.NewFormatter(os.Stdout)

	switch programListOutput {
	case "json":
		return formatter.FormatPrograms(dtos)
	case "table":
		rows := make([][]string, 0, len(dtos))
		for _, dto := range dtos {
			rows = append(rows, presentation.ProgramTableRow(dto))
		}
		return formatter.FormatTable(presentation.ProgramTableColumns(), rows)
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", programListOutput)
	}
}
