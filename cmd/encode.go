package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/strand/internal/flow"
	"github.com/zjrosen/strand/internal/op"
)

var encodeOut string

var encodeCmd = &cobra.Command{
	Use:   "encode <chain.yaml>",
	Short: "Encode a chain definition to its JSON wire form",
	Long: `Build a chain from a YAML definition and print its JSON encoding.

The definition lists operations by kind with optional construction
arguments. Canonical operations encode as kind plus arguments; the
decoder re-interns them, so decoding always returns the registry's
shared instances.

Definition format:
  name: warmup
  ops:
    - kind: fence
      params: [2]
    - kind: mark
      label: start
    - kind: burst
      params: [2]
      label: double

Use "-" to read the definition from stdin.

Examples:
  strand encode chain.yaml
  strand encode chain.yaml --out chain.json
  cat chain.yaml | strand encode -`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeOut, "out", "", "Write the encoding to a file instead of stdout")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(_ *cobra.Command, args []string) error {
	if err := loadCatalogs(); err != nil {
		return err
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	chain, err := parseChainSpec(data)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chain: %w", err)
	}
	encoded = append(encoded, '\n')

	if encodeOut != "" {
		return os.WriteFile(encodeOut, encoded, 0o600)
	}
	_, err = os.Stdout.Write(encoded)
	return err
}

// chainSpec is the YAML definition format for the encode command.
type chainSpec struct {
	Name string   `yaml:"name"`
	Ops  []opSpec `yaml:"ops"`
}

// opSpec names a kind and its construction arguments.
type opSpec struct {
	Kind     string  `yaml:"kind"`
	Params   []int   `yaml:"params"`
	Label    string  `yaml:"label"`
	Duration float64 `yaml:"duration"`
	Unit     string  `yaml:"unit"`
}

// parseChainSpec builds a chain from a YAML definition. Unknown fields
// are rejected so argument typos fail loudly.
func parseChainSpec(data []byte) (*flow.Chain, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec chainSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing chain definition: %w", err)
	}

	chain := flow.NewChain(spec.Name)
	for i, s := range spec.Ops {
		o, err := buildOp(s)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		if err := chain.Append(o); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return chain, nil
}

// buildOp constructs one operation through the same path the decoder
// uses, so canonical arguments yield the registry's shared instance.
func buildOp(s opSpec) (*op.Op, error) {
	kind, err := op.LookupKind(s.Kind)
	if err != nil {
		return nil, err
	}
	opts := make([]op.Option, 0, 3)
	if s.Params != nil {
		opts = append(opts, op.WithParams(s.Params...))
	}
	if s.Label != "" {
		opts = append(opts, op.WithLabel(s.Label))
	}
	if s.Duration != 0 || (s.Unit != "" && s.Unit != string(op.UnitTick)) {
		opts = append(opts, op.WithDuration(s.Duration, op.Unit(s.Unit)))
	}
	return kind.New(opts...), nil
}

// readInput reads a file argument, or stdin when the argument is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
