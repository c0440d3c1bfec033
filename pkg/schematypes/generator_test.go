package schematypes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jensneuse/diffview"
	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-ts-codegen/internal/pkg/unsafeparser"
	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

const generatorTestSchema = `
scalar DateTime
scalar JSON

enum Role {
	ADMIN
	USER
}

interface Node {
	id: ID!
}

type User implements Node {
	id: ID!
	name: String!
	email: String
	role: Role!
	tags: [String!]!
}

type Post implements Node {
	id: ID!
	author: User!
	title: String!
}

union Entity = User | Post

input UserFilter {
	role: Role
	limit: Int! = 10
	search: String
}

type Query {
	node(id: ID!): Node
	users(filter: UserFilter): [User!]!
	entities: [Entity!]!
}
`

func resolveOptions(t *testing.T, cfg *tstype.Config) *tstype.Options {
	t.Helper()
	options, err := cfg.Resolve()
	require.NoError(t, err)
	return options
}

func generateSchema(t *testing.T, schemaSDL string, cfg *tstype.Config, opts ...Option) string {
	t.Helper()
	schema := unsafeparser.ParseSchemaString(schemaSDL)
	g := NewGenerator(schema, resolveOptions(t, cfg), opts...)
	out, err := g.Generate()
	require.NoError(t, err)
	return out
}

func TestGenerateSchemaTypes(t *testing.T) {
	out := generateSchema(t, generatorTestSchema, &tstype.Config{
		Scalars: map[string]tstype.ScalarMapping{
			"DateTime": {Input: "string", Output: "Date"},
		},
	})

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".ts"))
	g.Assert(t, "schema", []byte(out))
	if t.Failed() {
		fixture, err := os.ReadFile(filepath.Join("testdata", "schema.ts"))
		if err == nil {
			diffview.NewGoland().DiffViewBytes("schema", fixture, []byte(out))
		}
	}
}

func TestGenerateUtilityPrelude(t *testing.T) {
	t.Run("input maybe references maybe by default", func(t *testing.T) {
		out := generateSchema(t, `type Query { ping: String }`, &tstype.Config{})
		assert.Contains(t, out, "export type Maybe<T> = T | null;\n")
		assert.Contains(t, out, "export type InputMaybe<T> = Maybe<T>;\n")
	})

	t.Run("custom maybe value keeps the fallback", func(t *testing.T) {
		maybe := "T | undefined"
		out := generateSchema(t, `type Query { ping: String }`, &tstype.Config{MaybeValue: &maybe})
		assert.Contains(t, out, "export type Maybe<T> = T | undefined;\n")
		assert.Contains(t, out, "export type InputMaybe<T> = Maybe<T>;\n")
	})

	t.Run("explicit input maybe value wins", func(t *testing.T) {
		inputMaybe := "T | null | undefined"
		out := generateSchema(t, `type Query { ping: String }`, &tstype.Config{InputMaybeValue: &inputMaybe})
		assert.Contains(t, out, "export type InputMaybe<T> = T | null | undefined;\n")
	})
}

func TestGenerateEnumDeclaration(t *testing.T) {
	schemaSDL := `
enum Status {
	active
	inactive
}

type Query {
	status: Status!
}
`

	t.Run("enum keyword with value convention", func(t *testing.T) {
		out := generateSchema(t, schemaSDL, &tstype.Config{
			EnumsAsTypes:     boolPtr(false),
			NamingConvention: &tstype.NamingConventionConfig{EnumValues: strPtr("upper-case#upperCase")},
		})
		assert.Contains(t, out, "export enum Status {\n  ACTIVE = 'active',\n  INACTIVE = 'inactive',\n}\n")
	})

	t.Run("literal union without future proofing", func(t *testing.T) {
		out := generateSchema(t, schemaSDL, &tstype.Config{FutureProofEnums: boolPtr(false)})
		assert.Contains(t, out, "export type Status =\n  | 'active'\n  | 'inactive';\n")
		assert.NotContains(t, out, "%future added value")
	})
}

func TestGenerateOnlyReferencedTypes(t *testing.T) {
	schemaSDL := `
type Item {
	name: String!
}

type Orphan {
	value: Int!
}

type Query {
	item: Item
}
`
	docs := document.NewDocuments()
	collector := document.NewCollector(afero.NewMemMapFs())
	collector.CollectSource(docs, "q.graphql", `query Q { item { name } }`)

	t.Run("filters unreachable types", func(t *testing.T) {
		out := generateSchema(t, schemaSDL,
			&tstype.Config{OnlyReferencedTypes: boolPtr(true)}, WithDocuments(docs))
		assert.Contains(t, out, "export interface Item {")
		assert.NotContains(t, out, "Orphan")
	})

	t.Run("no filtering without documents", func(t *testing.T) {
		out := generateSchema(t, schemaSDL, &tstype.Config{OnlyReferencedTypes: boolPtr(true)})
		assert.Contains(t, out, "export interface Orphan {")
	})
}

func TestGenerateStrictScalars(t *testing.T) {
	schema := unsafeparser.ParseSchemaString(`
scalar JSON

type Query {
	payload: JSON
}
`)
	g := NewGenerator(schema, resolveOptions(t, &tstype.Config{StrictScalars: boolPtr(true)}))
	_, err := g.Generate()
	require.Error(t, err)
	assert.Equal(t, `Unknown scalar type 'JSON'. Please override it using the "scalars" configuration field!`, err.Error())
}

func TestGenerateTypeDeclarationKind(t *testing.T) {
	out := generateSchema(t, generatorTestSchema, &tstype.Config{
		DeclarationKind: strPtr("type"),
		Scalars: map[string]tstype.ScalarMapping{
			"DateTime": {Input: "string", Output: "string"},
		},
	})

	assert.Contains(t, out, "export type User = {")
	assert.Contains(t, out, "};")
	assert.NotContains(t, out, "extends Node")
	assert.NotContains(t, out, "export interface")
}

func TestGenerateMutableSchemaTypes(t *testing.T) {
	out := generateSchema(t, `type Query { names: [String!]! }`,
		&tstype.Config{ImmutableTypes: boolPtr(false)})

	assert.Contains(t, out, "  names: Array<string>;")
	assert.NotContains(t, out, "readonly")
	assert.NotContains(t, out, "ReadonlyArray")
}

func TestGenerateSkipsIntrospectionAndBuiltins(t *testing.T) {
	out := generateSchema(t, `type Query { ping: String }`, &tstype.Config{})

	assert.NotContains(t, out, "__Schema")
	assert.NotContains(t, out, "export type String")
	assert.NotContains(t, out, "export type ID")
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
