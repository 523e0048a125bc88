package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/flow"
	"github.com/zjrosen/strand/internal/presentation"
)

var (
	programSaveName        string
	programSaveDescription string
)

var programSaveCmd = &cobra.Command{
	Use:   "program:save <chain.yaml|chain.json>",
	Short: "Save a chain as a named program",
	Long: `Save a chain to the program database under a name.

YAML inputs are treated as chain definitions (see 'strand encode');
JSON inputs as encoded chains. Saving to an existing name replaces that
program's chain.

Examples:
  strand program:save chain.yaml --name warmup
  strand program:save chain.json -n warmup -d "Warmup sequence"`,
	Args: cobra.ExactArgs(1),
	RunE: runProgramSave,
}

func init() {
	programSaveCmd.Flags().StringVarP(&programSaveName, "name", "n", "", "Program name (required)")
	programSaveCmd.Flags().StringVarP(&programSaveDescription, "description", "d", "", "Program description")
	_ = programSaveCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(programSaveCmd)
}

func runProgramSave(cmd *cobra.Command, args []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	chain, err := readChainFile(args[0])
	if err != nil {
		return err
	}

	svc, cleanup, err := openPrograms()
	if err != nil {
		return err
	}
	defer cleanup()

	program, err := svc.Save(cmd.Context(), programSaveName, programSaveDescription, chain)
	if err != nil {
		return fmt.Errorf("saving program: %w", err)
	}

	formatter := presentation.NewFormatter(os.Stdout)
	return formatter.FormatProgram(presentation.FromProgram(program))
}

// readChainFile loads a chain from a YAML definition or a JSON encoding,
// picked by file extension; "-" reads a definition from stdin.
func readChainFile(path string) (*flow.Chain, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		chain, err := decodeChain(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return chain, nil
	default:
		return parseChainSpec(data)
	}
}
