// Config persistence helpers that preserve comments in untouched sections.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveCatalogs updates the catalogs list in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveCatalogs(configPath string, dirs []string) error {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(dirs)),
	}
	for _, dir := range dirs {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: dir})
	}
	return saveSection(configPath, "catalogs", node)
}

// AddCatalog appends a directory to the catalogs list and saves.
// Adding a directory that is already listed is a no-op.
func AddCatalog(configPath string, dir string, existing []string) error {
	for _, d := range existing {
		if d == dir {
			return nil
		}
	}
	return SaveCatalogs(configPath, append(existing, dir))
}

// RemoveCatalog removes a directory from the catalogs list and saves.
// Returns an error if the directory is not listed.
func RemoveCatalog(configPath string, dir string, existing []string) error {
	updated := make([]string, 0, len(existing))
	found := false
	for _, d := range existing {
		if d == dir {
			found = true
			continue
		}
		updated = append(updated, d)
	}
	if !found {
		return fmt.Errorf("catalog directory %q is not configured", dir)
	}
	return SaveCatalogs(configPath, updated)
}

// SaveFlag updates a single feature flag in the config file.
// Other flags and sections keep their comments and formatting.
func SaveFlag(configPath string, name string, enabled bool) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(enabled)}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "flags"},
						{
							Kind: yaml.MappingNode,
							Content: []*yaml.Node{
								{Kind: yaml.ScalarNode, Value: name},
								valueNode,
							},
						},
					},
				},
			},
		}
		return writeConfig(configPath, &doc)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config root is not a mapping")
	}
	root := doc.Content[0]

	// Find or create the flags mapping
	var flagsNode *yaml.Node
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == "flags" {
			flagsNode = root.Content[i+1]
			break
		}
	}
	if flagsNode == nil {
		flagsNode = &yaml.Node{Kind: yaml.MappingNode}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "flags"},
			flagsNode,
		)
	}

	// Update or append the flag entry
	updated := false
	for i := 0; i < len(flagsNode.Content)-1; i += 2 {
		if flagsNode.Content[i].Value == name {
			flagsNode.Content[i+1] = valueNode
			updated = true
			break
		}
	}
	if !updated {
		flagsNode.Content = append(flagsNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			valueNode,
		)
	}

	return writeConfig(configPath, &doc)
}

// saveSection replaces a single top-level key in the config file with the
// given node, creating the file or the key when missing.
func saveSection(configPath string, key string, value *yaml.Node) error {
	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						value,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace the key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == key {
					root.Content[i+1] = value
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					value,
				)
			}
		}
	}

	return writeConfig(configPath, &doc)
}

// writeConfig marshals the document and writes it atomically
// (write to temp, then rename).
func writeConfig(configPath string, doc *yaml.Node) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".strand.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
