// Package catalog loads operation kind definitions from YAML files.
//
// A catalog file declares kinds under a top-level "kinds" list. Each entry
// names the kind and may carry markdown docs, default params, a resolver
// policy, and additional canonical argument records:
//
//	kinds:
//	  - name: pulse
//	    doc: |
//	      # pulse
//	      Emits a single trigger.
//	    params: [1]
//	    resolver: params
//	    additional:
//	      - params: [2]
//	      - params: [4]
//	        label: wide
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/strand/internal/op"
)

// Resolver policy names accepted in catalog files.
const (
	// ResolverDefault keys only the exact default argument record.
	ResolverDefault = "default"
	// ResolverParams keys by params and label, so declared combinations
	// become canonical entries.
	ResolverParams = "params"
)

// File is one parsed catalog document.
type File struct {
	Kinds []KindDef `yaml:"kinds"`
}

// KindDef declares one operation kind in a catalog file.
type KindDef struct {
	Name            string    `yaml:"name"`
	Doc             string    `yaml:"doc"`
	Params          []int     `yaml:"params"`
	Resolver        string    `yaml:"resolver"`
	SuppressDefault bool      `yaml:"suppress_default"`
	Additional      []ArgsDef `yaml:"additional"`
}

// ArgsDef declares one additional canonical argument record.
type ArgsDef struct {
	Params   []int   `yaml:"params"`
	Label    string  `yaml:"label"`
	Duration float64 `yaml:"duration"`
	Unit     string  `yaml:"unit"`
}

// Result summarizes one catalog load pass.
type Result struct {
	Files   int
	Defined []string
	Skipped []string
}

// merge folds another pass into this one.
func (r *Result) merge(other Result) {
	r.Files += other.Files
	r.Defined = append(r.Defined, other.Defined...)
	r.Skipped = append(r.Skipped, other.Skipped...)
}

// Parse decodes a catalog document. Unknown fields are rejected so typos in
// catalog files fail loudly instead of silently dropping a setting.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &f, nil
}

// spec converts the declaration into a kind spec, resolving the named policy.
func (d KindDef) spec() (op.Spec, error) {
	spec := op.Spec{
		Name:            d.Name,
		Doc:             d.Doc,
		Params:          d.Params,
		SuppressDefault: d.SuppressDefault,
	}

	switch d.Resolver {
	case "", ResolverDefault:
		// nil resolver selects the built-in default policy
	case ResolverParams:
		spec.Resolver = op.ArgsKey
	default:
		return op.Spec{}, fmt.Errorf("kind %q: unknown resolver %q", d.Name, d.Resolver)
	}

	for _, a := range d.Additional {
		spec.Additional = append(spec.Additional, op.Args{
			Params:   a.Params,
			Label:    a.Label,
			Duration: a.Duration,
			Unit:     op.Unit(a.Unit),
		})
	}

	return spec, nil
}

// LoadFS parses every catalog file in fsys and defines the kinds it
// declares. Files are visited in lexical order so collisions resolve
// deterministically. A kind whose name is already defined is skipped:
// redefinition cannot retire canonical instances already in circulation,
// so existing kinds win.
func LoadFS(fsys fs.FS) (Result, error) {
	var res Result
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCatalogFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		file, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		res.Files++
		for _, def := range file.Kinds {
			spec, err := def.spec()
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			if _, err := op.DefineKind(spec); err != nil {
				if errors.Is(err, op.ErrDuplicateKind) {
					res.Skipped = append(res.Skipped, def.Name)
					continue
				}
				return fmt.Errorf("%s: %w", p, err)
			}
			res.Defined = append(res.Defined, def.Name)
		}
		return nil
	})
	return res, err
}

// LoadDir loads every catalog file under dir.
func LoadDir(dir string) (Result, error) {
	return LoadFS(os.DirFS(dir))
}

// isCatalogFile reports whether the path names a YAML catalog file.
func isCatalogFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}
