// Package codegen is the batch driver: it runs the configured generators
// over a schema and a set of collected documents and assembles one
// TypeScript file per output.
package codegen

import (
	"context"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/operationtypes"
	"github.com/wundergraph/graphql-ts-codegen/pkg/schematypes"
	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// Canonical generator names. Configurations may use the aliases accepted
// by canonicalGenerator.
const (
	GeneratorOperationTypes = "operation-types"
	GeneratorSchemaTypes    = "schema-types"
	GeneratorTypedDocuments = "typed-documents"
)

// DefaultPrelude opens every generated file unless the output overrides it.
const DefaultPrelude = "/* eslint-disable */\n// This file was automatically generated and should not be edited.\n"

// GeneratorSpec names one generator of an output together with its
// generator-level option overrides.
type GeneratorSpec struct {
	Name   string
	Config *tstype.Config
}

// Output is one generated file: its path, the generators contributing to
// it in order, an optional prelude override and output-level option
// overrides.
type Output struct {
	Path       string
	Generators []GeneratorSpec
	Prelude    *string
	Config     *tstype.Config
}

// Config is the full input of one generation run.
type Config struct {
	Schema    *ast.Schema
	Documents *document.Documents
	Outputs   []Output

	// Options are the global generator options, overridden per output and
	// per generator.
	Options *tstype.Config

	Logger      abstractlogger.Logger
	WorkerCount int
}

// GeneratedFile is one assembled output file.
type GeneratedFile struct {
	Path    string
	Content string
}

// GenerateResult carries the assembled files and the warnings accumulated
// while collecting documents.
type GenerateResult struct {
	Files    []GeneratedFile
	Warnings []string
}

// Generate runs all outputs. The first fatal error aborts the whole batch
// and no files are returned.
func Generate(ctx context.Context, cfg Config) (*GenerateResult, error) {
	log := cfg.Logger
	if log == nil {
		log = abstractlogger.Noop{}
	}
	if cfg.Schema == nil {
		return nil, errors.New("codegen: no schema")
	}
	if cfg.Documents == nil {
		cfg.Documents = document.NewDocuments()
	}

	result := &GenerateResult{
		Warnings: append([]string(nil), cfg.Documents.Warnings...),
	}

	for _, output := range cfg.Outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := generateOutput(cfg, log, output)
		if err != nil {
			return nil, errors.Wrapf(err, "output %s", output.Path)
		}
		result.Files = append(result.Files, GeneratedFile{Path: output.Path, Content: content})
		log.Debug("codegen: output assembled",
			abstractlogger.String("path", output.Path),
			abstractlogger.Int("bytes", len(content)),
		)
	}
	return result, nil
}

// defaultGenerators is the generator list of an output that configures
// none: the full schema types followed by the operation types.
func defaultGenerators() []GeneratorSpec {
	return []GeneratorSpec{
		{Name: GeneratorSchemaTypes},
		{Name: GeneratorOperationTypes},
	}
}

func generateOutput(cfg Config, log abstractlogger.Logger, output Output) (string, error) {
	generators := output.Generators
	if len(generators) == 0 {
		generators = defaultGenerators()
	}

	names := make([]string, len(generators))
	hasSchemaTypes := false
	for i, spec := range generators {
		name, err := canonicalGenerator(spec.Name)
		if err != nil {
			return "", err
		}
		names[i] = name
		if name == GeneratorSchemaTypes {
			hasSchemaTypes = true
		}
	}

	prelude := DefaultPrelude
	if output.Prelude != nil {
		prelude = *output.Prelude
	}
	sections := []string{prelude}

	for i, spec := range generators {
		merged := cfg.Options.Merge(output.Config).Merge(spec.Config)
		options, err := merged.Resolve()
		if err != nil {
			return "", err
		}

		var section string
		switch names[i] {
		case GeneratorOperationTypes:
			gen := operationtypes.NewGenerator(cfg.Schema, cfg.Documents, options,
				operationtypes.WithLogger(log),
				operationtypes.WithWorkerCount(cfg.WorkerCount),
				// Enums and unions come from the schema-types generator
				// when it writes into the same file.
				operationtypes.WithSharedTypes(!hasSchemaTypes),
			)
			section, err = gen.Generate()
		case GeneratorSchemaTypes:
			gen := schematypes.NewGenerator(cfg.Schema, options,
				schematypes.WithLogger(log),
				schematypes.WithDocuments(cfg.Documents),
			)
			section, err = gen.Generate()
		case GeneratorTypedDocuments:
			section, err = renderTypedDocuments(cfg.Documents, options)
		}
		if err != nil {
			return "", err
		}
		sections = append(sections, section)
	}
	return joinSections(sections), nil
}

// canonicalGenerator resolves the configured generator name, accepting the
// aliases of the original toolchain.
func canonicalGenerator(name string) (string, error) {
	switch name {
	case "operation-types", "typescript-operations":
		return GeneratorOperationTypes, nil
	case "schema-types", "typescript":
		return GeneratorSchemaTypes, nil
	case "typed-documents", "typescript-document-nodes", "documents":
		return GeneratorTypedDocuments, nil
	default:
		return "", errors.Errorf("Unknown generator: '%s'", name)
	}
}

// joinSections concatenates non-empty sections with exactly one blank line
// between them. The assembled file ends with a single newline.
func joinSections(sections []string) string {
	parts := make([]string, 0, len(sections))
	for _, section := range sections {
		if strings.TrimSpace(section) == "" {
			continue
		}
		parts = append(parts, strings.TrimRight(section, "\n")+"\n")
	}
	return strings.Join(parts, "\n")
}
