package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var programLoadOut string

var programLoadCmd = &cobra.Command{
	Use:   "program:load <name>",
	Short: "Load a saved program's chain",
	Long: `Load a program by name and print its chain's JSON encoding.

The chain decodes through the registry on every load, so canonical
operations come back as the current shared instances.

Examples:
  strand program:load warmup
  strand program:load warmup --out chain.json
  strand program:load warmup | strand decode -`,
	Args: cobra.ExactArgs(1),
	RunE: runProgramLoad,
}

func init() {
	programLoadCmd.Flags().StringVar(&programLoadOut, "out", "", "Write the chain to a file instead of stdout")
	rootCmd.AddCommand(programLoadCmd)
}

func runProgramLoad(cmd *cobra.Command, args []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	svc, cleanup, err := openPrograms()
	if err != nil {
		return err
	}
	defer cleanup()

	_, chain, err := svc.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	encoded, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chain: %w", err)
	}
	encoded = append(encoded, '\n')

	if programLoadOut != "" {
		return os.WriteFile(programLoadOut, encoded, 0o600)
	}
	_, err = os.Stdout.Write(encoded)
	return err
}
