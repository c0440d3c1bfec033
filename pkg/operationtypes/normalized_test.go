package operationtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func scalarSelection(name, parent string, nonNull bool) *NormalizedSelection {
	fieldType := &ast.Type{NamedType: "String", NonNull: nonNull}
	return &NormalizedSelection{FieldName: name, FieldType: fieldType, ParentType: parent}
}

func TestNormalizedSelectionSetAddMergesDuplicates(t *testing.T) {
	set := NewNormalizedSelectionSet()

	first := scalarSelection("email", "User", true)
	set.Add(first)
	set.Add(scalarSelection("email", "User", false))

	require.Equal(t, 1, set.Len())
	merged := set.Field("email")
	assert.Same(t, first, merged, "first occurrence defines the field")
	assert.True(t, merged.FieldType.NonNull, "first type wins")
}

func TestNormalizedSelectionSetConditionalIsSticky(t *testing.T) {
	set := NewNormalizedSelectionSet()

	set.Add(scalarSelection("email", "User", true))
	conditional := scalarSelection("email", "User", true)
	conditional.HasConditional = true
	set.Add(conditional)

	assert.True(t, set.Field("email").HasConditional)

	// The flag never resets once set, regardless of later occurrences.
	set.Add(scalarSelection("email", "User", true))
	assert.True(t, set.Field("email").HasConditional)
}

func TestNormalizedSelectionSetChildrenMergeRecursively(t *testing.T) {
	left := scalarSelection("user", "Query", true)
	left.Children = NewNormalizedSelectionSet()
	left.Children.Add(scalarSelection("id", "User", true))

	right := scalarSelection("user", "Query", true)
	right.Children = NewNormalizedSelectionSet()
	right.Children.Add(scalarSelection("id", "User", true))
	right.Children.Add(scalarSelection("email", "User", false))

	set := NewNormalizedSelectionSet()
	set.Add(left)
	set.Add(right)

	children := set.Field("user").Children
	require.Equal(t, 2, children.Len())
	assert.Equal(t, "id", children.Fields()[0].FieldName)
	assert.Equal(t, "email", children.Fields()[1].FieldName)
}

func TestNormalizedSelectionSetOrderIsInsertionOrder(t *testing.T) {
	set := NewNormalizedSelectionSet()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		set.Add(scalarSelection(name, "User", true))
	}

	var names []string
	for _, field := range set.Fields() {
		names = append(names, field.FieldName)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestNormalizedSelectionSetPrepend(t *testing.T) {
	set := NewNormalizedSelectionSet()
	set.Add(scalarSelection("id", "User", true))
	set.prepend(scalarSelection("__typename", "User", true))

	assert.Equal(t, "__typename", set.Fields()[0].FieldName)
	assert.Equal(t, "id", set.Fields()[1].FieldName)

	// Prepending an existing name is a no-op.
	set.prepend(scalarSelection("id", "User", false))
	require.Equal(t, 2, set.Len())
	assert.Equal(t, "__typename", set.Fields()[0].FieldName)
}

func TestNormalizedSelectionSetVariantMerge(t *testing.T) {
	set := NewNormalizedSelectionSet()
	book := set.ensureVariant("Book")
	book.Add(scalarSelection("isbn", "Book", true))

	other := NewNormalizedSelectionSet()
	otherBook := other.ensureVariant("Book")
	otherBook.Add(scalarSelection("title", "Book", true))
	movie := other.ensureVariant("Movie")
	movie.Add(scalarSelection("runtime", "Movie", true))

	set.merge(other)

	assert.Equal(t, []string{"Book", "Movie"}, set.VariantNames())
	require.Equal(t, 2, set.Variant("Book").Len())
	assert.Equal(t, "isbn", set.Variant("Book").Fields()[0].FieldName)
	assert.Equal(t, "title", set.Variant("Book").Fields()[1].FieldName)
}

func TestIsTypename(t *testing.T) {
	typename := &NormalizedSelection{
		FieldName: "tn",
		FieldType: ast.NonNullNamedType("__typename", nil),
	}
	assert.True(t, typename.IsTypename(), "detection follows the synthetic type, not the response name")
	assert.False(t, scalarSelection("__typename", "User", true).IsTypename())
}
