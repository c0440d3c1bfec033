package gqlconfig

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
)

// LoadSchema assembles the schema from the configured SDL globs and
// inline content and parses the combined sources. Multiple sources merge
// into one schema, so a schema can span several files.
func (c *Config) LoadSchema(fsys afero.Fs) (*ast.Schema, error) {
	var sources []*ast.Source

	if len(c.Schema) > 0 {
		files, err := document.FindFiles(fsys, c.Schema)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve schema globs")
		}
		for _, file := range files {
			content, err := afero.ReadFile(fsys, file)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read schema %s", file)
			}
			sources = append(sources, &ast.Source{Name: file, Input: string(content)})
		}
	}

	for i, content := range c.SchemaContent {
		sources = append(sources, &ast.Source{
			Name:  fmt.Sprintf("schemaContent.%d", i),
			Input: content,
		})
	}

	if len(sources) == 0 {
		return nil, errors.New("no schema sources found")
	}

	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse schema")
	}
	return schema, nil
}
