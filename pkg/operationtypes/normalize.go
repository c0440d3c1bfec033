package operationtypes

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// FragmentSource resolves fragment spreads by name. Spreads whose fragment
// is unknown are skipped during normalization.
type FragmentSource interface {
	Fragment(name string) *document.Fragment
}

// Normalizer flattens operation and fragment selection sets into
// normalized form against a schema.
type Normalizer struct {
	schema    *ast.Schema
	fragments FragmentSource
	options   *tstype.Options
}

func NewNormalizer(schema *ast.Schema, fragments FragmentSource, options *tstype.Options) *Normalizer {
	return &Normalizer{
		schema:    schema,
		fragments: fragments,
		options:   options,
	}
}

// NormalizeOperation flattens an operation's selection set against its
// root type.
func (n *Normalizer) NormalizeOperation(op *ast.OperationDefinition, rootType string) *NormalizedSelectionSet {
	set := NewNormalizedSelectionSet()
	n.collect(set, op.SelectionSet, rootType)
	return set
}

// NormalizeFragment flattens a fragment definition against its type
// condition.
func (n *Normalizer) NormalizeFragment(frag *ast.FragmentDefinition) *NormalizedSelectionSet {
	set := NewNormalizedSelectionSet()
	n.collect(set, frag.SelectionSet, frag.TypeCondition)
	return set
}

// collect folds a selection set into set. Unknown fields and dangling
// fragment spreads are skipped so a stale document never breaks the whole
// run. Every collect call ends by injecting __typename for its own parent
// type, which makes the discriminator appear at every nesting level under
// the always policy.
func (n *Normalizer) collect(set *NormalizedSelectionSet, selections ast.SelectionSet, parentType string) {
	for _, selection := range selections {
		switch sel := selection.(type) {
		case *ast.Field:
			n.collectField(set, sel, parentType)
		case *ast.InlineFragment:
			n.collectFragmentSelections(set, sel.SelectionSet, sel.TypeCondition, parentType)
		case *ast.FragmentSpread:
			frag := n.fragments.Fragment(sel.Name)
			if frag == nil {
				continue
			}
			n.collectFragmentSelections(set, frag.Definition.SelectionSet, frag.TypeCondition, parentType)
		}
	}
	n.injectTypename(set, parentType)
}

func (n *Normalizer) collectField(set *NormalizedSelectionSet, field *ast.Field, parentType string) {
	if field.Name == typenameField {
		if n.options.TypenamePolicy == tstype.TypenamePolicySkip {
			return
		}
		set.Add(&NormalizedSelection{
			FieldName:      responseName(field),
			FieldType:      ast.NonNullNamedType(typenameField, nil),
			ParentType:     parentType,
			HasConditional: hasConditionalDirective(field.Directives),
		})
		return
	}

	parentDef := n.schema.Types[parentType]
	if parentDef == nil {
		return
	}
	fieldDef := parentDef.Fields.ForName(field.Name)
	if fieldDef == nil {
		return
	}

	normalized := &NormalizedSelection{
		FieldName:      responseName(field),
		FieldType:      fieldDef.Type,
		ParentType:     parentType,
		HasConditional: hasConditionalDirective(field.Directives),
	}
	if len(field.SelectionSet) > 0 {
		children := NewNormalizedSelectionSet()
		n.collect(children, field.SelectionSet, fieldDef.Type.Name())
		normalized.Children = children
	}
	set.Add(normalized)
}

// collectFragmentSelections decides between variant and flat handling of a
// fragment's selections. A condition naming a different type than an
// abstract parent opens a variant; every other combination flattens into
// the current set with the condition as the new parent type.
func (n *Normalizer) collectFragmentSelections(set *NormalizedSelectionSet, selections ast.SelectionSet, condition, parentType string) {
	if condition == "" || condition == parentType {
		n.collect(set, selections, parentType)
		return
	}

	parentDef := n.schema.Types[parentType]
	if parentDef != nil && parentDef.IsAbstractType() {
		variant := set.ensureVariant(condition)
		n.collect(variant, selections, condition)
		return
	}

	n.collect(set, selections, condition)
}

// injectTypename front-inserts the discriminator under the always policy
// unless the set already selects it under its response name.
func (n *Normalizer) injectTypename(set *NormalizedSelectionSet, parentType string) {
	if n.options.TypenamePolicy != tstype.TypenamePolicyAlways {
		return
	}
	set.prepend(&NormalizedSelection{
		FieldName:  typenameField,
		FieldType:  ast.NonNullNamedType(typenameField, nil),
		ParentType: parentType,
		Injected:   true,
	})
}

func responseName(field *ast.Field) string {
	if field.Alias != "" {
		return field.Alias
	}
	return field.Name
}

func hasConditionalDirective(directives ast.DirectiveList) bool {
	return directives.ForName("skip") != nil || directives.ForName("include") != nil
}
