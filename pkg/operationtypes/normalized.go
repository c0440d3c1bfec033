// Package operationtypes generates TypeScript result and variable types for
// GraphQL operations and fragments.
//
// Selection sets are first normalized: fragments are flattened, duplicate
// response names merged and abstract-type conditions split into variants.
// The normalized tree is then rendered into TypeScript declarations.
package operationtypes

import "github.com/vektah/gqlparser/v2/ast"

// NormalizedSelection is a single response field after normalization.
type NormalizedSelection struct {
	// FieldName is the response name, the alias when one is set.
	FieldName string
	// FieldType is the resolved schema type of the field. The __typename
	// meta field carries a synthetic non-null type named "__typename".
	FieldType *ast.Type
	// ParentType is the name of the type the field was selected on.
	ParentType string
	// HasConditional marks fields behind @skip or @include; they render
	// optional regardless of their schema nullability.
	HasConditional bool
	// Injected marks a __typename added by the typename policy rather
	// than selected in the document.
	Injected bool
	// Children holds the nested selection set, nil for leaf fields.
	Children *NormalizedSelectionSet
}

// IsTypename reports whether the selection is the __typename meta field,
// aliased or not.
func (s *NormalizedSelection) IsTypename() bool {
	return s.FieldType != nil && s.FieldType.NamedType == typenameField
}

const typenameField = "__typename"

// NormalizedSelectionSet is an insertion-ordered table of fields plus the
// per-type variants of a selection on an abstract type.
type NormalizedSelectionSet struct {
	fieldOrder []string
	fields     map[string]*NormalizedSelection

	variantOrder []string
	variants     map[string]*NormalizedSelectionSet
}

func NewNormalizedSelectionSet() *NormalizedSelectionSet {
	return &NormalizedSelectionSet{
		fields:   map[string]*NormalizedSelection{},
		variants: map[string]*NormalizedSelectionSet{},
	}
}

// Len returns the number of fields, variants not included.
func (s *NormalizedSelectionSet) Len() int {
	return len(s.fieldOrder)
}

// Field returns the selection for a response name, nil when absent.
func (s *NormalizedSelectionSet) Field(name string) *NormalizedSelection {
	return s.fields[name]
}

// Fields returns all selections in insertion order.
func (s *NormalizedSelectionSet) Fields() []*NormalizedSelection {
	fields := make([]*NormalizedSelection, 0, len(s.fieldOrder))
	for _, name := range s.fieldOrder {
		fields = append(fields, s.fields[name])
	}
	return fields
}

// HasVariants reports whether the set splits into type-conditioned
// variants.
func (s *NormalizedSelectionSet) HasVariants() bool {
	return len(s.variantOrder) > 0
}

// VariantNames returns the variant type names in insertion order.
func (s *NormalizedSelectionSet) VariantNames() []string {
	return s.variantOrder
}

// Variant returns the selection set for a variant type name.
func (s *NormalizedSelectionSet) Variant(name string) *NormalizedSelectionSet {
	return s.variants[name]
}

// Add merges a selection into the set. A new response name appends in
// order. An existing one keeps its first definition, becomes conditional
// when either occurrence is, and merges child selections recursively.
func (s *NormalizedSelectionSet) Add(field *NormalizedSelection) {
	existing := s.fields[field.FieldName]
	if existing == nil {
		s.fields[field.FieldName] = field
		s.fieldOrder = append(s.fieldOrder, field.FieldName)
		return
	}
	mergeSelection(existing, field)
}

// prepend inserts a selection at the front of the field order. Used for
// injected __typename so the discriminator leads the declaration.
func (s *NormalizedSelectionSet) prepend(field *NormalizedSelection) {
	if _, exists := s.fields[field.FieldName]; exists {
		return
	}
	s.fields[field.FieldName] = field
	s.fieldOrder = append([]string{field.FieldName}, s.fieldOrder...)
}

// ensureVariant returns the variant set for a type condition, creating and
// ordering it on first use.
func (s *NormalizedSelectionSet) ensureVariant(name string) *NormalizedSelectionSet {
	if variant, ok := s.variants[name]; ok {
		return variant
	}
	variant := NewNormalizedSelectionSet()
	s.variants[name] = variant
	s.variantOrder = append(s.variantOrder, name)
	return variant
}

// mergeSelection folds src into dst. The first occurrence keeps its type
// and parent, conditionality is sticky and children merge field by field.
func mergeSelection(dst, src *NormalizedSelection) {
	dst.HasConditional = dst.HasConditional || src.HasConditional
	if src.Children == nil {
		return
	}
	if dst.Children == nil {
		dst.Children = src.Children
		return
	}
	dst.Children.merge(src.Children)
}

// merge folds the fields and variants of other into s.
func (s *NormalizedSelectionSet) merge(other *NormalizedSelectionSet) {
	for _, name := range other.fieldOrder {
		s.Add(other.fields[name])
	}
	for _, name := range other.variantOrder {
		if existing, ok := s.variants[name]; ok {
			existing.merge(other.variants[name])
			continue
		}
		s.variants[name] = other.variants[name]
		s.variantOrder = append(s.variantOrder, name)
	}
}
