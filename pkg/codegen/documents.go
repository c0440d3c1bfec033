package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// renderTypedDocuments emits one exported document constant per fragment
// and operation, so client code can ship the executable documents beside
// the generated types:
//
//	export const GetUserDocument = gql`
//	  query GetUser { ... }
//	`;
//
// The graphqlTag option selects the template tag: "gql" and "graphql"
// import the matching named export of graphql-tag, "none" or an empty
// value emits untagged templates, and any other value is used as the tag
// verbatim with no import (the prelude override can bring it into scope).
// Operation documents append every transitively spread fragment so each
// constant is executable on its own.
func renderTypedDocuments(docs *document.Documents, opts *tstype.Options) (string, error) {
	var buf bytes.Buffer

	tag := opts.GraphqlTag
	switch tag {
	case "gql", "graphql":
		fmt.Fprintf(&buf, "import { %s } from 'graphql-tag';\n\n", tag)
	case "none":
		tag = ""
	}

	if opts.IncludeFragments {
		fragments := append([]*document.Fragment(nil), docs.Fragments()...)
		sort.Slice(fragments, func(i, j int) bool { return fragments[i].Name < fragments[j].Name })
		for _, frag := range fragments {
			name := opts.TransformTypeName(frag.Name + "Document")
			writeDocumentConst(&buf, name, tag, frag.Text)
		}
	}

	operations := append([]*document.Operation(nil), docs.Operations()...)
	sort.Slice(operations, func(i, j int) bool { return operations[i].Name < operations[j].Name })
	for _, op := range operations {
		name := opts.TransformTypeName(op.Name + "Document")
		writeDocumentConst(&buf, name, tag, operationDocumentText(docs, op))
	}
	return buf.String(), nil
}

func writeDocumentConst(buf *bytes.Buffer, name, tag, text string) {
	fmt.Fprintf(buf, "export const %s = %s`\n", name, tag)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			buf.WriteString("\n")
			continue
		}
		buf.WriteString("  ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	buf.WriteString("`;\n\n")
}

// operationDocumentText returns the operation source followed by the
// sources of all fragments it spreads, directly or through other
// fragments.
func operationDocumentText(docs *document.Documents, op *document.Operation) string {
	visited := map[string]bool{}
	var spreads []*document.Fragment
	collectSpreads(docs, op.Definition.SelectionSet, visited, &spreads)

	parts := make([]string, 0, len(spreads)+1)
	parts = append(parts, op.Text)
	for _, frag := range spreads {
		parts = append(parts, frag.Text)
	}
	return strings.Join(parts, "\n\n")
}

func collectSpreads(docs *document.Documents, selections ast.SelectionSet, visited map[string]bool, out *[]*document.Fragment) {
	for _, selection := range selections {
		switch sel := selection.(type) {
		case *ast.Field:
			collectSpreads(docs, sel.SelectionSet, visited, out)
		case *ast.InlineFragment:
			collectSpreads(docs, sel.SelectionSet, visited, out)
		case *ast.FragmentSpread:
			if visited[sel.Name] {
				continue
			}
			visited[sel.Name] = true
			frag := docs.Fragment(sel.Name)
			if frag == nil {
				continue
			}
			*out = append(*out, frag)
			collectSpreads(docs, frag.Definition.SelectionSet, visited, out)
		}
	}
}
