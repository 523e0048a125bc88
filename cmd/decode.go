package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/flow"
	"github.com/zjrosen/strand/internal/presentation"
)

var decodeOutput string

var decodeCmd = &cobra.Command{
	Use:   "decode <chain.json>",
	Short: "Decode a chain's JSON wire form",
	Long: `Decode an encoded chain and list its operations.

Canonical operations resolve through the registry, so the decoded chain
shares instances with every other holder. The table marks which
operations came back canonical.

Use "-" to read the encoding from stdin.

Examples:
  strand decode chain.json
  strand decode chain.json -o json
  strand program:load warmup | strand decode -`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "table", "Output format: table or json")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(_ *cobra.Command, args []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	chain, err := decodeChain(data)
	if err != nil {
		return fmt.Errorf("decoding chain: %w", err)
	}

	switch decodeOutput {
	case "json":
		encoded, err := json.MarshalIndent(chain, "", "  ")
		if err != nil {
			return fmt.Errorf("re-encoding chain: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	case "table":
		return printChainTable(chain)
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", decodeOutput)
	}
}

// printChainTable lists a chain's operations with their interning status.
func printChainTable(chain *flow.Chain) error {
	if name := chain.Name(); name != "" {
		fmt.Printf("Chain: %s\n\n", name)
	}
	rows := make([][]string, 0, chain.Len())
	for i, o := range chain.Ops() {
		canonical := "yes"
		if o.Mutable() {
			canonical = "no"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			o.Kind().Name(),
			canonical,
			o.String(),
		})
	}
	formatter := presentation.NewFormatter(os.Stdout)
	return formatter.FormatTable([]presentation.Column{
		{Title: "#", Width: 3},
		{Title: "KIND", Width: 12},
		{Title: "CANONICAL", Width: 9},
		{Title: "OP", Width: 44},
	}, rows)
}
