package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a.json> <b.json>",
	Short: "Compare two encoded chains",
	Long: `Compare two encoded chains after normalizing both through the codec.

Each file is decoded and re-encoded before comparison, so formatting
differences and redundant envelope fields wash out; what remains is a
real difference in operations.

Examples:
  strand diff before.json after.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(_ *cobra.Command, args []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	left, err := normalizeChainFile(args[0])
	if err != nil {
		return err
	}
	right, err := normalizeChainFile(args[1])
	if err != nil {
		return err
	}

	if left == right {
		fmt.Println("Chains are identical.")
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(left, right, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Print(dmp.DiffPrettyText(diffs))
	return nil
}

// normalizeChainFile decodes a chain file and re-encodes it in canonical
// form for comparison.
func normalizeChainFile(path string) (string, error) {
	data, err := readInput(path)
	if err != nil {
		return "", err
	}
	chain, err := decodeChain(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	encoded, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(encoded) + "\n", nil
}
