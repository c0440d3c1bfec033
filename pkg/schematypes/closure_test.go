package schematypes

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/wundergraph/graphql-ts-codegen/internal/pkg/unsafeparser"
	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
)

func collectDocuments(t *testing.T, source string) *document.Documents {
	t.Helper()
	docs := document.NewDocuments()
	collector := document.NewCollector(afero.NewMemMapFs())
	collector.CollectSource(docs, "closure.graphql", source)
	return docs
}

func TestReferencedTypesTransitiveFields(t *testing.T) {
	schema := unsafeparser.ParseSchemaString(`
type Item {
	tag: Tag
}

type Tag {
	name: String!
}

type Orphan {
	value: Int!
}

type Query {
	item: Item
}
`)
	docs := collectDocuments(t, `query Q { item { tag { name } } }`)

	referenced := ReferencedTypes(schema, docs)
	assert.True(t, referenced["Query"])
	assert.True(t, referenced["Item"])
	assert.True(t, referenced["Tag"])
	assert.False(t, referenced["Orphan"])
}

func TestReferencedTypesVariablesSeedInputs(t *testing.T) {
	schema := unsafeparser.ParseSchemaString(`
input Filter {
	nested: Nested
}

input Nested {
	value: Int
}

input Unrelated {
	value: Int
}

type Query {
	ping(filter: Filter): String
}
`)
	docs := collectDocuments(t, `query Q($filter: Filter) { ping(filter: $filter) }`)

	referenced := ReferencedTypes(schema, docs)
	assert.True(t, referenced["Filter"])
	assert.True(t, referenced["Nested"])
	assert.False(t, referenced["Unrelated"])
}

func TestReferencedTypesAbstractExpansion(t *testing.T) {
	schema := unsafeparser.ParseSchemaString(`
interface Node {
	id: ID!
}

type Book implements Node {
	id: ID!
	pages: Pages!
}

type Movie implements Node {
	id: ID!
}

type Pages {
	count: Int!
}

union Entity = Book | Movie

type Query {
	node: Node
	entity: Entity
}
`)
	docs := collectDocuments(t, `query Q { node { id } }`)

	referenced := ReferencedTypes(schema, docs)
	assert.True(t, referenced["Node"])
	assert.True(t, referenced["Book"], "interface expansion reaches implementers")
	assert.True(t, referenced["Movie"])
	assert.True(t, referenced["Pages"], "implementer fields expand transitively")
	assert.True(t, referenced["Entity"], "root expansion reaches all root fields")
}

func TestReferencedTypesFragmentSeedsItsCondition(t *testing.T) {
	schema := unsafeparser.ParseSchemaString(`
type Foo {
	bar: Bar
}

type Bar {
	baz: String
}

type Lone {
	value: Int
}

type Query {
	foo: Foo
}
`)
	docs := collectDocuments(t, `fragment F on Foo { bar { baz } }`)

	referenced := ReferencedTypes(schema, docs)
	assert.True(t, referenced["Foo"])
	assert.True(t, referenced["Bar"])
	assert.False(t, referenced["Query"], "fragments alone do not pull in operation roots")
	assert.False(t, referenced["Lone"])
}

func TestReferencedTypesInlineConditions(t *testing.T) {
	schema := unsafeparser.ParseSchemaString(`
union Entity = Book | Movie

type Book {
	isbn: String!
}

type Movie {
	runtime: Int!
}

type Mutation {
	touch(id: ID!): Entity
}

type Query {
	ping: String
}
`)
	docs := collectDocuments(t, `mutation M { touch(id: "1") { ... on Book { isbn } } }`)

	referenced := ReferencedTypes(schema, docs)
	assert.True(t, referenced["Mutation"])
	assert.True(t, referenced["Entity"])
	assert.True(t, referenced["Book"])
	assert.False(t, referenced["Query"])
}
