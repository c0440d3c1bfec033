// Package gqlconfig loads and validates the code generation configuration.
//
// Configuration lives in a graphql-codegen.yml file or under the
// "graphqlCodegen" key of a package.json. The file names schema and
// document sources, one or more output files with their generators, and
// rendering options at global, output and generator scope.
package gqlconfig

import (
	"github.com/pkg/errors"

	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// Config is the decoded configuration of a generation run.
type Config struct {
	// Schema lists file globs pointing at GraphQL SDL files.
	Schema StringList `yaml:"schema"`
	// SchemaContent holds inline SDL, mostly used by tests and tools
	// that already have the schema in memory.
	SchemaContent StringList `yaml:"schemaContent"`
	// Documents lists file globs pointing at operation documents,
	// either .graphql files or JS/TS files with embedded documents.
	Documents StringList `yaml:"documents"`
	// Outputs maps output file paths to their generator configuration.
	Outputs map[string]*OutputConfig `yaml:"outputs"`
	// Generates is the graphql-code-generator spelling of Outputs and is
	// folded into it during normalization.
	Generates map[string]*OutputConfig `yaml:"generates"`
	// Options apply to every output unless overridden closer to the
	// generator.
	Options *tstype.Config `yaml:"config"`
	// Hooks run external commands around the generation run.
	Hooks Hooks `yaml:"hooks"`
}

// OutputConfig configures a single output file.
type OutputConfig struct {
	// Generators name the generators contributing sections to the file,
	// in order. Empty means schema types followed by operation types.
	Generators GeneratorList `yaml:"generators"`
	// Plugins is the graphql-code-generator spelling of Generators.
	Plugins GeneratorList `yaml:"plugins"`
	// Prelude replaces the generated-file header comment. An empty
	// string suppresses the header entirely.
	Prelude *string `yaml:"prelude"`
	// Options apply to every generator of this output.
	Options *tstype.Config `yaml:"config"`
}

// Hooks are external commands run by the generation driver.
type Hooks struct {
	// AfterGenerate commands run once after all files are written. Each
	// command receives the written file paths as extra arguments.
	AfterGenerate []string `yaml:"afterGenerate"`
}

// StringList decodes from either a single YAML string or a sequence of
// strings.
type StringList []string

func (l *StringList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return errors.New("expected a string or a list of strings")
	}
	*l = many
	return nil
}

// GeneratorSpec names a generator together with its generator-scoped
// options.
type GeneratorSpec struct {
	Name    string
	Options *tstype.Config
}

// GeneratorList decodes a YAML sequence whose items are either a plain
// generator name or a single-key mapping from name to options:
//
//	generators:
//	  - schema-types
//	  - operation-types:
//	      immutableTypes: false
type GeneratorList []GeneratorSpec

func (l *GeneratorList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var entries []generatorEntry
	if err := unmarshal(&entries); err != nil {
		return errors.New("expected a list of generator names or single-key mappings")
	}
	specs := make(GeneratorList, 0, len(entries))
	for _, entry := range entries {
		specs = append(specs, entry.spec)
	}
	*l = specs
	return nil
}

type generatorEntry struct {
	spec GeneratorSpec
}

func (e *generatorEntry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		e.spec = GeneratorSpec{Name: name}
		return nil
	}
	var detailed map[string]*tstype.Config
	if err := unmarshal(&detailed); err != nil {
		return errors.New("generator entry must be a name or a single-key mapping")
	}
	if len(detailed) != 1 {
		return errors.Errorf("generator entry must have exactly one key, got %d", len(detailed))
	}
	for name, options := range detailed {
		e.spec = GeneratorSpec{Name: name, Options: options}
	}
	return nil
}

// normalize folds the graphql-code-generator field spellings into their
// canonical counterparts. Canonical fields win when both are set.
func (c *Config) normalize() {
	if c.Outputs == nil {
		c.Outputs = c.Generates
	}
	c.Generates = nil
	for _, output := range c.Outputs {
		if output == nil {
			continue
		}
		if output.Generators == nil {
			output.Generators = output.Plugins
		}
		output.Plugins = nil
	}
}

// Validate checks the structural requirements a run cannot start without.
func (c *Config) Validate() error {
	if len(c.Schema) == 0 && len(c.SchemaContent) == 0 {
		return errors.New("config: no schema configured")
	}
	if len(c.Outputs) == 0 {
		return errors.New("config: no outputs configured")
	}
	for path, output := range c.Outputs {
		if path == "" {
			return errors.New("config: output path must not be empty")
		}
		if output == nil {
			continue
		}
		for _, spec := range output.Generators {
			if spec.Name == "" {
				return errors.Errorf("config: output %s has a generator without a name", path)
			}
		}
	}
	return nil
}
