package operationtypes

import (
	"bytes"
	"runtime"
	"sort"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/vektah/gqlparser/v2/ast"
	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/schematypes"
	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// Generator renders the result and variable types of all collected
// fragments and operations. Items render concurrently into private
// buffers and concatenate in name order, so output is deterministic for
// any worker count.
type Generator struct {
	schema     *ast.Schema
	documents  *document.Documents
	options    *tstype.Options
	normalizer *Normalizer

	log         abstractlogger.Logger
	workerCount int
	sharedTypes bool
}

type Option func(*Generator)

func WithLogger(logger abstractlogger.Logger) Option {
	return func(g *Generator) {
		g.log = logger
	}
}

// WithWorkerCount bounds the number of items rendering concurrently.
func WithWorkerCount(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.workerCount = count
		}
	}
}

// WithSharedTypes controls whether enums and unions render inline ahead of
// the operation types. The driver disables this when a schema-types
// generator already emits them into the same output.
func WithSharedTypes(enabled bool) Option {
	return func(g *Generator) {
		g.sharedTypes = enabled
	}
}

func NewGenerator(schema *ast.Schema, documents *document.Documents, options *tstype.Options, opts ...Option) *Generator {
	g := &Generator{
		schema:      schema,
		documents:   documents,
		options:     options,
		normalizer:  NewNormalizer(schema, documents, options),
		log:         abstractlogger.Noop{},
		workerCount: runtime.GOMAXPROCS(0),
		sharedTypes: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type itemKind int

const (
	itemKindFragment itemKind = iota
	itemKindOperation
)

type generateItem struct {
	name   string
	kind   itemKind
	render func(buf *bytes.Buffer) error
}

// Generate renders all items and returns the concatenated TypeScript
// source. The first rendering error aborts the whole run.
func (g *Generator) Generate() (string, error) {
	var out bytes.Buffer
	if g.sharedTypes {
		if err := g.renderSharedTypes(&out); err != nil {
			return "", err
		}
	}

	items := g.items()
	buffers := make([]bytes.Buffer, len(items))

	var eg errgroup.Group
	eg.SetLimit(g.workerCount)
	for i := range items {
		i := i
		eg.Go(func() error {
			return items[i].render(&buffers[i])
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	for i := range buffers {
		out.Write(buffers[i].Bytes())
	}
	return out.String(), nil
}

// items lists fragments and operations as one name-sorted work list.
func (g *Generator) items() []generateItem {
	var items []generateItem
	for _, frag := range g.documents.Fragments() {
		frag := frag
		items = append(items, generateItem{
			name: frag.Name,
			kind: itemKindFragment,
			render: func(buf *bytes.Buffer) error {
				return g.renderFragment(buf, frag)
			},
		})
	}
	for _, op := range g.documents.Operations() {
		op := op
		items = append(items, generateItem{
			name: op.Name,
			kind: itemKindOperation,
			render: func(buf *bytes.Buffer) error {
				return g.renderOperation(buf, op)
			},
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].name != items[j].name {
			return items[i].name < items[j].name
		}
		return items[i].kind < items[j].kind
	})
	return items
}

// renderOperation writes the result type and, when the operation declares
// variables, the variables type. Operations whose root type is missing
// from the schema are skipped.
func (g *Generator) renderOperation(buf *bytes.Buffer, op *document.Operation) error {
	root := rootTypeName(g.schema, op.Type)
	if root == "" {
		g.log.Debug("operationtypes.Generator: skipping operation without root type",
			abstractlogger.String("operation", op.Name),
			abstractlogger.String("kind", string(op.Type)),
		)
		return nil
	}

	set := g.normalizer.NormalizeOperation(op.Definition, root)
	r := newRenderer(g.schema, g.options, buf)

	name := g.options.TransformTypeName(op.Name + kindSuffix(op.Type))
	if err := r.renderDeclaration(name, set); err != nil {
		return err
	}

	if len(op.Definition.VariableDefinitions) > 0 {
		variablesName := g.options.TransformTypeName(op.Name + kindSuffix(op.Type) + "Variables")
		if err := r.renderVariables(variablesName, op.Definition.VariableDefinitions); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderFragment(buf *bytes.Buffer, frag *document.Fragment) error {
	set := g.normalizer.NormalizeFragment(frag.Definition)
	r := newRenderer(g.schema, g.options, buf)
	name := g.options.TransformTypeName(frag.Name + "Fragment")
	return r.renderDeclaration(name, set)
}

// renderSharedTypes writes the enum and union declarations operations
// refer to, sorted by name. With onlyReferencedTypes they are filtered
// down to the types reachable from the collected documents.
func (g *Generator) renderSharedTypes(buf *bytes.Buffer) error {
	var referenced map[string]bool
	if g.options.OnlyReferencedTypes {
		referenced = schematypes.ReferencedTypes(g.schema, g.documents)
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
		if referenced != nil && !referenced[name] {
			continue
		}
		def := g.schema.Types[name]
		switch def.Kind {
		case ast.Enum:
			schematypes.RenderEnum(buf, g.options, def)
		case ast.Union:
			schematypes.RenderUnion(buf, g.options, def)
		}
	}
	return nil
}

// kindSuffix is the operation kind part of generated type names, e.g.
// GetUser + Query -> GetUserQuery.
func kindSuffix(kind ast.Operation) string {
	switch kind {
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

// rootTypeName resolves the schema type name serving an operation kind,
// empty when the schema does not define it.
func rootTypeName(schema *ast.Schema, kind ast.Operation) string {
	switch kind {
	case ast.Mutation:
		if schema.Mutation != nil {
			return schema.Mutation.Name
		}
	case ast.Subscription:
		if schema.Subscription != nil {
			return schema.Subscription.Name
		}
	default:
		if schema.Query != nil {
			return schema.Query.Name
		}
	}
	return ""
}
