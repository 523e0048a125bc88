package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var programDeleteCmd = &cobra.Command{
	Use:   "program:delete <name>",
	Short: "Delete a saved program",
	Long: `Delete a program by name.

Examples:
  strand program:delete warmup`,
	Args: cobra.ExactArgs(1),
	RunE: runProgramDelete,
}

func init() {
	rootCmd.AddCommand(programDeleteCmd)
}

func runProgramDelete(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openPrograms()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	fmt.Printf("Deleted program %q\n", args[0])
	return nil
}
