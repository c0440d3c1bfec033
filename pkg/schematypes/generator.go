package schematypes

import (
	"bytes"
	"sort"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// Generator renders the type declarations of a schema, sorted by type
// name for deterministic output.
type Generator struct {
	schema    *ast.Schema
	documents *document.Documents
	options   *tstype.Options
	log       abstractlogger.Logger
}

type Option func(*Generator)

func WithLogger(logger abstractlogger.Logger) Option {
	return func(g *Generator) {
		g.log = logger
	}
}

// WithDocuments provides the collected documents, required for
// onlyReferencedTypes to compute the reachable type set.
func WithDocuments(docs *document.Documents) Option {
	return func(g *Generator) {
		g.documents = docs
	}
}

func NewGenerator(schema *ast.Schema, options *tstype.Options, opts ...Option) *Generator {
	g := &Generator{
		schema:  schema,
		options: options,
		log:     abstractlogger.Noop{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the utility prelude followed by one declaration block
// per schema type. Introspection types and built-in scalars are skipped;
// with onlyReferencedTypes everything outside the documents' reachable
// set is skipped as well.
func (g *Generator) Generate() (string, error) {
	var buf bytes.Buffer
	renderUtilityTypes(&buf, g.options)

	var referenced map[string]bool
	if g.options.OnlyReferencedTypes && g.documents != nil {
		referenced = ReferencedTypes(g.schema, g.documents)
	}

	names := make([]string, 0, len(g.schema.Types))
	for name := range g.schema.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasPrefix(name, "__") {
			continue
		}
		def := g.schema.Types[name]
		if def.Kind == ast.Scalar && tstype.IsBuiltinScalar(name) {
			continue
		}
		if referenced != nil && !referenced[name] {
			continue
		}

		var err error
		switch def.Kind {
		case ast.Enum:
			RenderEnum(&buf, g.options, def)
		case ast.Union:
			RenderUnion(&buf, g.options, def)
		case ast.Object:
			err = renderObject(&buf, g.schema, g.options, def)
		case ast.Interface:
			err = renderInterface(&buf, g.schema, g.options, def)
		case ast.InputObject:
			err = renderInput(&buf, g.schema, g.options, def)
		case ast.Scalar:
			err = renderScalar(&buf, g.options, def)
		}
		if err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
