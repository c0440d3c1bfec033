// Package unsafeparser parses schemas and query documents and panics on
// error. Only for use in tests and tools where the input is known good.
package unsafeparser

import (
	"os"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseSchemaString(input string) *ast.Schema {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: input})
	if err != nil {
		panic(err)
	}
	return schema
}

func ParseSchemaFile(path string) *ast.Schema {
	content, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	return ParseSchemaString(string(content))
}

func ParseQueryString(input string) *ast.QueryDocument {
	doc, err := parser.ParseQuery(&ast.Source{Name: "operation.graphql", Input: input})
	if err != nil {
		panic(err)
	}
	return doc
}
