package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/strand/internal/config"
)

var catalogAddCmd = &cobra.Command{
	Use:   "catalog:add <dir>",
	Short: "Add a catalog directory to the config",
	Long: `Add a directory of kind catalog YAML files to the configured search
paths. Only the catalogs list in the config file changes; comments and
formatting in other sections are preserved.

Examples:
  strand catalog:add ./catalogs
  strand catalog:add ~/.config/strand/catalogs`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogAdd,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "catalog:remove <dir>",
	Short: "Remove a catalog directory from the config",
	Long: `Remove a directory from the configured catalog search paths.

Examples:
  strand catalog:remove ./catalogs`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogRemove,
}

func init() {
	rootCmd.AddCommand(catalogAddCmd)
	rootCmd.AddCommand(catalogRemoveCmd)
}

// configFileInUse returns the path of the loaded config file. Config
// edits need a real file to rewrite.
func configFileInUse() (string, error) {
	if path := viper.ConfigFileUsed(); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no config file in use; pass --config or run strand once to create one")
}

func runCatalogAdd(_ *cobra.Command, args []string) error {
	path, err := configFileInUse()
	if err != nil {
		return err
	}
	if err := config.AddCatalog(path, args[0], cfg.Catalogs); err != nil {
		return fmt.Errorf("adding catalog: %w", err)
	}
	fmt.Printf("Added %s to %s\n", args[0], path)
	return nil
}

func runCatalogRemove(_ *cobra.Command, args []string) error {
	path, err := configFileInUse()
	if err != nil {
		return err
	}
	if err := config.RemoveCatalog(path, args[0], cfg.Catalogs); err != nil {
		return fmt.Errorf("removing catalog: %w", err)
	}
	fmt.Printf("Removed %s from %s\n", args[0], path)
	return nil
}
