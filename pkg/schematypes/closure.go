// Package schematypes generates TypeScript declarations for the types of
// a GraphQL schema: scalars, enums, objects, interfaces, unions and input
// objects, plus the utility aliases they build on.
package schematypes

import (
	"github.com/phf/go-queue/queue"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
)

// ReferencedTypes computes the names of all schema types reachable from
// the collected documents. Operation variables, root types and selected
// fields seed a worklist; field types, argument types, union members,
// implemented interfaces and interface implementers expand it to a fixed
// point. Fragments seed independently, spreads are not followed.
func ReferencedTypes(schema *ast.Schema, docs *document.Documents) map[string]bool {
	pending := queue.New()

	for _, op := range docs.Operations() {
		for _, variable := range op.Definition.VariableDefinitions {
			pending.PushBack(variable.Type.Name())
		}
		root := operationRoot(schema, op.Type)
		if root == "" {
			continue
		}
		pending.PushBack(root)
		seedSelections(schema, pending, op.Definition.SelectionSet, root)
	}
	for _, frag := range docs.Fragments() {
		pending.PushBack(frag.TypeCondition)
		seedSelections(schema, pending, frag.Definition.SelectionSet, frag.TypeCondition)
	}

	visited := map[string]bool{}
	for pending.Len() > 0 {
		name := pending.PopFront().(string)
		if name == "" || visited[name] {
			continue
		}
		def := schema.Types[name]
		if def == nil {
			continue
		}
		visited[name] = true
		expandDefinition(schema, pending, def)
	}
	return visited
}

type selectionFrame struct {
	selections ast.SelectionSet
	parentType string
}

// seedSelections walks a selection set iteratively with an explicit stack,
// adding the type behind every resolvable field and every inline fragment
// condition to the worklist.
func seedSelections(schema *ast.Schema, pending *queue.Queue, selections ast.SelectionSet, parentType string) {
	stack := []selectionFrame{{selections: selections, parentType: parentType}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parentDef := schema.Types[frame.parentType]
		for _, selection := range frame.selections {
			switch sel := selection.(type) {
			case *ast.Field:
				if sel.Name == "__typename" || parentDef == nil {
					continue
				}
				fieldDef := parentDef.Fields.ForName(sel.Name)
				if fieldDef == nil {
					continue
				}
				typeName := fieldDef.Type.Name()
				pending.PushBack(typeName)
				if len(sel.SelectionSet) > 0 {
					stack = append(stack, selectionFrame{selections: sel.SelectionSet, parentType: typeName})
				}
			case *ast.InlineFragment:
				condition := sel.TypeCondition
				if condition == "" {
					condition = frame.parentType
				} else {
					pending.PushBack(condition)
				}
				stack = append(stack, selectionFrame{selections: sel.SelectionSet, parentType: condition})
			case *ast.FragmentSpread:
				// Seeded from the fragment definition itself.
			}
		}
	}
}

// expandDefinition pushes every type a definition refers to.
func expandDefinition(schema *ast.Schema, pending *queue.Queue, def *ast.Definition) {
	switch def.Kind {
	case ast.Object, ast.Interface:
		for _, field := range def.Fields {
			pending.PushBack(field.Type.Name())
			for _, arg := range field.Arguments {
				pending.PushBack(arg.Type.Name())
			}
		}
		for _, iface := range def.Interfaces {
			pending.PushBack(iface)
		}
		if def.Kind == ast.Interface {
			for _, impl := range schema.PossibleTypes[def.Name] {
				pending.PushBack(impl.Name)
			}
		}
	case ast.Union:
		for _, member := range def.Types {
			pending.PushBack(member)
		}
	case ast.InputObject:
		for _, field := range def.Fields {
			pending.PushBack(field.Type.Name())
		}
	}
}

func operationRoot(schema *ast.Schema, kind ast.Operation) string {
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
