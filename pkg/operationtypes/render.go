package operationtypes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// renderer writes normalized selection sets as TypeScript declarations.
// One renderer writes into one buffer; the generator creates a renderer
// per item so items can render in parallel.
type renderer struct {
	schema *ast.Schema
	opts   *tstype.Options
	buf    *bytes.Buffer
}

func newRenderer(schema *ast.Schema, opts *tstype.Options, buf *bytes.Buffer) *renderer {
	return &renderer{schema: schema, opts: opts, buf: buf}
}

// renderDeclaration writes a full top-level declaration for a normalized
// set. Sets that split into variants render as a union type regardless of
// the configured declaration kind, since interfaces cannot be unions.
func (r *renderer) renderDeclaration(name string, set *NormalizedSelectionSet) error {
	if set.HasVariants() {
		r.buf.WriteString("export type ")
		r.buf.WriteString(name)
		r.buf.WriteString(" =\n")
		if err := r.renderVariants(set, 1); err != nil {
			return err
		}
		r.buf.WriteString(";\n\n")
		return nil
	}

	r.opts.RenderDeclOpening(r.buf, name, nil)
	r.buf.WriteString("{\n")
	if err := r.renderNormalized(set, 0); err != nil {
		return err
	}
	r.opts.RenderDeclClosing(r.buf)
	r.buf.WriteString("\n")
	return nil
}

// renderNormalized writes the fields of a set at depth+1 and finishes with
// the indentation for the caller's closing brace.
func (r *renderer) renderNormalized(set *NormalizedSelectionSet, depth int) error {
	for _, field := range set.Fields() {
		if err := r.renderField(field, depth+1); err != nil {
			return err
		}
	}
	tstype.Indent(r.buf, depth)
	return nil
}

func (r *renderer) renderField(field *NormalizedSelection, depth int) error {
	if field.IsTypename() {
		r.renderTypenameLine(field, depth)
		return nil
	}

	tstype.Indent(r.buf, depth)
	r.buf.WriteString(r.opts.ReadonlyPrefix())
	r.buf.WriteString(field.FieldName)
	if r.opts.OutputFieldOptional(field.FieldType.NonNull, field.HasConditional) {
		r.buf.WriteByte('?')
	}
	r.buf.WriteString(": ")

	switch {
	case field.Children == nil:
		expr, err := r.opts.RenderTypeExpr(r.schema, field.FieldType, tstype.DirectionOutput)
		if err != nil {
			return err
		}
		r.buf.WriteString(expr)
		r.buf.WriteString(";\n")
		return nil
	case field.Children.HasVariants():
		return r.renderVariantsValue(field, depth)
	default:
		return r.renderObjectValue(field, depth)
	}
}

// renderObjectValue writes an inline object type, with list wrappers and
// nullability around the braces.
func (r *renderer) renderObjectValue(field *NormalizedSelection, depth int) error {
	fieldType := field.FieldType
	element := tstype.ElementType(fieldType)

	r.opts.RenderListOpening(r.buf, fieldType, tstype.DirectionOutput)
	if !element.NonNull {
		r.buf.WriteString(r.opts.MaybePrefix(tstype.DirectionOutput))
	}
	r.buf.WriteString("{\n")
	if err := r.renderNormalized(field.Children, depth); err != nil {
		return err
	}
	r.buf.WriteString("}")
	if !element.NonNull {
		r.buf.WriteString(r.opts.MaybeSuffix(tstype.DirectionOutput))
	}
	r.opts.RenderListClosing(r.buf, fieldType, tstype.DirectionOutput)
	r.buf.WriteString(";\n")
	return nil
}

// renderVariantsValue writes a union of per-type variants, one arm per
// line. A nullable element contributes a trailing arm-style suffix line.
func (r *renderer) renderVariantsValue(field *NormalizedSelection, depth int) error {
	fieldType := field.FieldType
	element := tstype.ElementType(fieldType)

	r.opts.RenderListOpening(r.buf, fieldType, tstype.DirectionOutput)
	if !element.NonNull {
		r.buf.WriteString(r.opts.MaybePrefix(tstype.DirectionOutput))
	}
	r.buf.WriteString("\n")
	if err := r.renderVariants(field.Children, depth+1); err != nil {
		return err
	}
	if !element.NonNull {
		r.buf.WriteString("\n")
		tstype.Indent(r.buf, depth+1)
		r.buf.WriteString(strings.TrimPrefix(r.opts.MaybeSuffix(tstype.DirectionOutput), " "))
	}
	r.opts.RenderListClosing(r.buf, fieldType, tstype.DirectionOutput)
	r.buf.WriteString(";\n")
	return nil
}

// renderVariants writes the variant arms of a set, ending after the last
// arm without a newline so callers can append list closers inline.
func (r *renderer) renderVariants(set *NormalizedSelectionSet, depth int) error {
	first := true
	for _, name := range set.VariantNames() {
		if !first {
			r.buf.WriteString("\n")
		}
		first = false
		if err := r.renderVariantArm(set, name, depth); err != nil {
			return err
		}
	}
	if r.opts.FutureProofUnions {
		if !first {
			r.buf.WriteString("\n")
		}
		tstype.Indent(r.buf, depth)
		fmt.Fprintf(r.buf, "| { %s__typename?: '%%other' }", r.opts.ReadonlyPrefix())
	}
	return nil
}

// renderVariantArm writes one variant: its discriminator first, then the
// fields shared by every variant, then the variant's own fields. A shared
// field reselected inside the variant renders in the variant's position.
func (r *renderer) renderVariantArm(parent *NormalizedSelectionSet, name string, depth int) error {
	variant := parent.Variant(name)

	tstype.Indent(r.buf, depth)
	r.buf.WriteString("| {\n")
	if tn := variantTypename(variant); tn != nil {
		r.renderTypenameLine(tn, depth+2)
	}
	for _, field := range parent.Fields() {
		if field.IsTypename() || variant.Field(field.FieldName) != nil {
			continue
		}
		if err := r.renderField(field, depth+2); err != nil {
			return err
		}
	}
	for _, field := range variant.Fields() {
		if field.IsTypename() {
			continue
		}
		if err := r.renderField(field, depth+2); err != nil {
			return err
		}
	}
	tstype.Indent(r.buf, depth+1)
	r.buf.WriteString("}")
	return nil
}

func variantTypename(set *NormalizedSelectionSet) *NormalizedSelection {
	for _, field := range set.Fields() {
		if field.IsTypename() {
			return field
		}
	}
	return nil
}

// renderTypenameLine writes the discriminator as a literal of the parent
// type name. Injected discriminators stay optional unless configured
// otherwise; explicitly selected ones are always present.
func (r *renderer) renderTypenameLine(field *NormalizedSelection, depth int) {
	tstype.Indent(r.buf, depth)
	r.buf.WriteString(r.opts.ReadonlyPrefix())
	r.buf.WriteString(field.FieldName)
	if field.Injected && !r.opts.NonOptionalTypename && !r.opts.AvoidOptionals.Field {
		r.buf.WriteByte('?')
	}
	fmt.Fprintf(r.buf, ": '%s';\n", field.ParentType)
}

// renderVariables writes the variables declaration for an operation.
func (r *renderer) renderVariables(name string, variables ast.VariableDefinitionList) error {
	r.opts.RenderDeclOpening(r.buf, name, nil)
	r.buf.WriteString("{\n")
	for _, variable := range variables {
		expr, err := r.opts.RenderTypeExpr(r.schema, variable.Type, tstype.DirectionInput)
		if err != nil {
			return err
		}
		tstype.Indent(r.buf, 1)
		r.buf.WriteString(r.opts.ReadonlyPrefix())
		r.buf.WriteString(variable.Variable)
		if r.opts.InputFieldOptional(variable.Type.NonNull, variable.DefaultValue != nil) {
			r.buf.WriteByte('?')
		}
		r.buf.WriteString(": ")
		r.buf.WriteString(expr)
		r.buf.WriteString(";\n")
	}
	r.opts.RenderDeclClosing(r.buf)
	r.buf.WriteString("\n")
	return nil
}
