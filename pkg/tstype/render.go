package tstype

import (
	"bytes"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Indent writes two spaces per depth level.
func Indent(w *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}

// ElementType unwraps all list layers and returns the innermost named type.
func ElementType(t *ast.Type) *ast.Type {
	for t.Elem != nil {
		t = t.Elem
	}
	return t
}

// RenderTypeExpr renders a full type reference as a single-line TypeScript
// expression, wrapping nullable layers with the configured maybe template.
// Used for scalar-typed selection fields, variables and field arguments.
func (o *Options) RenderTypeExpr(schema *ast.Schema, t *ast.Type, dir Direction) (string, error) {
	return o.renderTypeExpr(schema, t, dir, o.MaybeWrap)
}

// RenderSchemaTypeExpr renders a type reference for the schema-types
// generator, where nullable layers reference the emitted Maybe/InputMaybe
// utility aliases instead of expanding the maybe template inline.
func (o *Options) RenderSchemaTypeExpr(schema *ast.Schema, t *ast.Type, dir Direction) (string, error) {
	return o.renderTypeExpr(schema, t, dir, AliasMaybeWrap)
}

// AliasMaybeWrap wraps expr in a reference to the Maybe or InputMaybe
// utility alias, depending on direction.
func AliasMaybeWrap(expr string, dir Direction) string {
	if dir == DirectionInput {
		return "InputMaybe<" + expr + ">"
	}
	return "Maybe<" + expr + ">"
}

func (o *Options) renderTypeExpr(schema *ast.Schema, t *ast.Type, dir Direction, wrap func(string, Direction) string) (string, error) {
	var expr string
	if t.Elem != nil {
		inner, err := o.renderTypeExpr(schema, t.Elem, dir, wrap)
		if err != nil {
			return "", err
		}
		expr = o.ArrayType() + "<" + inner + ">"
	} else {
		named, err := o.namedTypeExpr(schema, t.NamedType, dir)
		if err != nil {
			return "", err
		}
		expr = named
	}
	if !t.NonNull {
		expr = wrap(expr, dir)
	}
	return expr, nil
}

// namedTypeExpr resolves a named type reference. Scalars go through the
// scalar mapping chain; every other kind references its transformed
// declaration name. Types missing from the schema are treated as scalars
// so generation stays lenient.
func (o *Options) namedTypeExpr(schema *ast.Schema, name string, dir Direction) (string, error) {
	var def *ast.Definition
	if schema != nil {
		def = schema.Types[name]
	}
	if def == nil || def.Kind == ast.Scalar {
		return o.ResolveScalar(name, dir)
	}
	return o.TransformTypeName(name), nil
}

// RenderListOpening writes the opening list wrappers for every list layer
// of t, outermost first. Nullable layers open with the maybe prefix, which
// is empty for suffix-style templates.
func (o *Options) RenderListOpening(w *bytes.Buffer, t *ast.Type, dir Direction) {
	if t.Elem == nil {
		return
	}
	if !t.NonNull {
		w.WriteString(o.MaybePrefix(dir))
	}
	w.WriteString(o.ArrayType())
	w.WriteByte('<')
	o.RenderListOpening(w, t.Elem, dir)
}

// RenderListClosing writes the closing list wrappers inside out, appending
// the maybe suffix for every nullable list layer.
func (o *Options) RenderListClosing(w *bytes.Buffer, t *ast.Type, dir Direction) {
	if t.Elem == nil {
		return
	}
	o.RenderListClosing(w, t.Elem, dir)
	w.WriteByte('>')
	if !t.NonNull {
		w.WriteString(o.MaybeSuffix(dir))
	}
}

// RenderDeclOpening writes the declaration keyword and name, leaving the
// body opener to the caller so union-shaped bodies can omit the brace.
func (o *Options) RenderDeclOpening(w *bytes.Buffer, name string, extends []string) {
	if o.DeclarationKind == DeclarationKindInterface {
		w.WriteString("export interface ")
		w.WriteString(name)
		if len(extends) > 0 {
			w.WriteString(" extends ")
			w.WriteString(strings.Join(extends, ", "))
		}
		w.WriteByte(' ')
		return
	}
	w.WriteString("export type ")
	w.WriteString(name)
	w.WriteString(" = ")
}

// RenderDeclClosing writes the closing brace of a declaration body. Type
// aliases are statements and take a trailing semicolon.
func (o *Options) RenderDeclClosing(w *bytes.Buffer) {
	if o.DeclarationKind == DeclarationKindType {
		w.WriteString("};\n")
		return
	}
	w.WriteString("}\n")
}

// OutputFieldOptional reports whether a selection field renders with a
// question mark. Fields behind @skip or @include stay optional regardless
// of avoidOptionals because the data is genuinely absent at runtime.
func (o *Options) OutputFieldOptional(nonNull, hasConditional bool) bool {
	if hasConditional {
		return true
	}
	if o.AvoidOptionals.Field {
		return false
	}
	return !nonNull
}

// ObjectFieldOptional reports whether a schema object or interface field
// renders with a question mark.
func (o *Options) ObjectFieldOptional(nonNull bool) bool {
	if o.AvoidOptionals.Object {
		return false
	}
	return !nonNull
}

// InputFieldOptional reports whether an input object field or operation
// variable renders with a question mark. Non-null inputs with a schema
// default may be omitted by callers, so they render optional unless
// avoidOptionals says otherwise.
func (o *Options) InputFieldOptional(nonNull, hasDefault bool) bool {
	if !nonNull {
		return !o.AvoidOptionals.InputValue
	}
	if hasDefault {
		return !(o.AvoidOptionals.DefaultValue || o.AvoidOptionals.InputValue)
	}
	return false
}
