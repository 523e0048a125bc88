package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strand/internal/config"
	"github.com/zjrosen/strand/internal/flags"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List feature flags",
	Long: `List every feature flag strand knows about with its current state.

Examples:
  strand flags`,
	Args: cobra.NoArgs,
	RunE: runFlags,
}

var flagsSetCmd = &cobra.Command{
	Use:   "flags:set <name> <true|false>",
	Short: "Persist a feature flag in the config",
	Long: `Set a feature flag in the config file. Other flags and sections keep
their comments and formatting.

Examples:
  strand flags:set strict-decode true
  strand flags:set program-cache false`,
	Args: cobra.ExactArgs(2),
	RunE: runFlagsSet,
}

func init() {
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(flagsSetCmd)
}

// knownFlags are the flags strand reads today. Config may carry others;
// they are listed but have no effect.
var knownFlags = []string{
	flags.FlagCatalogWatch,
	flags.FlagProgramCache,
	flags.FlagStrictDecode,
}

func runFlags(_ *cobra.Command, _ []string) error {
	reg := flags.New(cfg.Flags)

	names := make(map[string]struct{}, len(knownFlags))
	for _, name := range knownFlags {
		names[name] = struct{}{}
	}
	for name := range reg.All() {
		names[name] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		state := "off"
		if reg.Enabled(name) {
			state = "on"
		}
		fmt.Printf("%-16s %s\n", name, state)
	}
	return nil
}

func runFlagsSet(_ *cobra.Command, args []string) error {
	name := args[0]
	enabled, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("value must be true or false, got %q", args[1])
	}

	path, err := configFileInUse()
	if err != nil {
		return err
	}
	if err := config.SaveFlag(path, name, enabled); err != nil {
		return fmt.Errorf("saving flag: %w", err)
	}

	known := false
	for _, k := range knownFlags {
		if k == name {
			known = true
			break
		}
	}
	if !known {
		fmt.Printf("Note: %q is not a flag strand reads today\n", name)
	}
	fmt.Printf("Set %s=%t in %s\n", name, enabled, path)
	return nil
}
