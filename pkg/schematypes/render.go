package schematypes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// RenderEnum writes an enum declaration. With enumsAsTypes it renders a
// union of string literals, future-proofed with a '%future added value'
// arm; otherwise a TypeScript enum whose member names follow the enum
// value naming convention.
func RenderEnum(buf *bytes.Buffer, opts *tstype.Options, def *ast.Definition) {
	name := opts.TransformTypeName(def.Name)

	if !opts.EnumsAsTypes {
		fmt.Fprintf(buf, "export enum %s {\n", name)
		for _, value := range def.EnumValues {
			fmt.Fprintf(buf, "  %s = '%s',\n", opts.TransformEnumValue(value.Name), value.Name)
		}
		buf.WriteString("}\n\n")
		return
	}

	arms := make([]string, 0, len(def.EnumValues)+1)
	for _, value := range def.EnumValues {
		arms = append(arms, fmt.Sprintf("'%s'", opts.TransformEnumValue(value.Name)))
	}
	if opts.FutureProofEnums {
		arms = append(arms, "'%future added value'")
	}

	fmt.Fprintf(buf, "export type %s =\n", name)
	writeUnionArms(buf, arms)
}

// RenderUnion writes a union declaration referencing its member types,
// future-proofed with an unknown-typename arm.
func RenderUnion(buf *bytes.Buffer, opts *tstype.Options, def *ast.Definition) {
	name := opts.TransformTypeName(def.Name)

	arms := make([]string, 0, len(def.Types)+1)
	for _, member := range def.Types {
		arms = append(arms, opts.TransformTypeName(member))
	}
	if opts.FutureProofUnions {
		arms = append(arms, fmt.Sprintf("{ %s__typename?: '%%other' }", opts.ReadonlyPrefix()))
	}

	fmt.Fprintf(buf, "export type %s = \n", name)
	writeUnionArms(buf, arms)
}

func writeUnionArms(buf *bytes.Buffer, arms []string) {
	for i, arm := range arms {
		buf.WriteString("  | ")
		buf.WriteString(arm)
		if i == len(arms)-1 {
			buf.WriteString(";")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

// renderObject writes an object type declaration, a non-optional
// __typename literal under the always policy, and one Args declaration
// per field that takes arguments.
func renderObject(buf *bytes.Buffer, schema *ast.Schema, opts *tstype.Options, def *ast.Definition) error {
	var extends []string
	if opts.DeclarationKind == tstype.DeclarationKindInterface {
		for _, iface := range def.Interfaces {
			extends = append(extends, opts.TransformTypeName(iface))
		}
	}

	opts.RenderDeclOpening(buf, opts.TransformTypeName(def.Name), extends)
	buf.WriteString("{\n")
	if opts.TypenamePolicy == tstype.TypenamePolicyAlways {
		fmt.Fprintf(buf, "  %s__typename: '%s';\n", opts.ReadonlyPrefix(), def.Name)
	}
	if err := renderDefinitionFields(buf, schema, opts, def, tstype.DirectionOutput); err != nil {
		return err
	}
	opts.RenderDeclClosing(buf)
	buf.WriteString("\n")

	return renderFieldArgs(buf, schema, opts, def)
}

// renderInterface writes an interface type declaration. Abstract types
// have no single typename literal, so none is emitted.
func renderInterface(buf *bytes.Buffer, schema *ast.Schema, opts *tstype.Options, def *ast.Definition) error {
	var extends []string
	if opts.DeclarationKind == tstype.DeclarationKindInterface {
		for _, iface := range def.Interfaces {
			extends = append(extends, opts.TransformTypeName(iface))
		}
	}

	opts.RenderDeclOpening(buf, opts.TransformTypeName(def.Name), extends)
	buf.WriteString("{\n")
	if err := renderDefinitionFields(buf, schema, opts, def, tstype.DirectionOutput); err != nil {
		return err
	}
	opts.RenderDeclClosing(buf)
	buf.WriteString("\n")

	return renderFieldArgs(buf, schema, opts, def)
}

// renderInput writes an input object declaration with input-direction
// nullability, honoring schema default values for optionality.
func renderInput(buf *bytes.Buffer, schema *ast.Schema, opts *tstype.Options, def *ast.Definition) error {
	opts.RenderDeclOpening(buf, opts.TransformTypeName(def.Name), nil)
	buf.WriteString("{\n")
	if err := renderDefinitionFields(buf, schema, opts, def, tstype.DirectionInput); err != nil {
		return err
	}
	opts.RenderDeclClosing(buf)
	buf.WriteString("\n")
	return nil
}

func renderDefinitionFields(buf *bytes.Buffer, schema *ast.Schema, opts *tstype.Options, def *ast.Definition, dir tstype.Direction) error {
	for _, field := range def.Fields {
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		expr, err := opts.RenderSchemaTypeExpr(schema, field.Type, dir)
		if err != nil {
			return err
		}

		var optional bool
		if dir == tstype.DirectionInput {
			optional = opts.InputFieldOptional(field.Type.NonNull, field.DefaultValue != nil)
		} else {
			optional = opts.ObjectFieldOptional(field.Type.NonNull)
		}

		buf.WriteString("  ")
		buf.WriteString(opts.ReadonlyPrefix())
		buf.WriteString(field.Name)
		if optional {
			buf.WriteByte('?')
		}
		fmt.Fprintf(buf, ": %s;\n", expr)
	}
	return nil
}

// renderFieldArgs writes a {Type}{Field}Args declaration for every field
// with arguments, e.g. Query.user(id: ID!) -> QueryUserArgs.
func renderFieldArgs(buf *bytes.Buffer, schema *ast.Schema, opts *tstype.Options, def *ast.Definition) error {
	for _, field := range def.Fields {
		if len(field.Arguments) == 0 || strings.HasPrefix(field.Name, "__") {
			continue
		}

		name := opts.TransformTypeName(def.Name + strcase.ToCamel(field.Name) + "Args")
		opts.RenderDeclOpening(buf, name, nil)
		buf.WriteString("{\n")
		for _, arg := range field.Arguments {
			expr, err := opts.RenderSchemaTypeExpr(schema, arg.Type, tstype.DirectionInput)
			if err != nil {
				return err
			}
			buf.WriteString("  ")
			buf.WriteString(opts.ReadonlyPrefix())
			buf.WriteString(arg.Name)
			if opts.InputFieldOptional(arg.Type.NonNull, arg.DefaultValue != nil) {
				buf.WriteByte('?')
			}
			fmt.Fprintf(buf, ": %s;\n", expr)
		}
		opts.RenderDeclClosing(buf)
		buf.WriteString("\n")
	}
	return nil
}

// renderScalar writes a custom scalar alias. A mapping with distinct
// input and output representations renders as a two-field shape.
func renderScalar(buf *bytes.Buffer, opts *tstype.Options, def *ast.Definition) error {
	name := opts.TransformTypeName(def.Name)

	if mapping, ok := opts.Scalars[def.Name]; ok && mapping.Input != "" && mapping.Output != "" && mapping.Input != mapping.Output {
		fmt.Fprintf(buf, "export type %s = {\n  input: %s;\n  output: %s;\n};\n\n", name, mapping.Input, mapping.Output)
		return nil
	}

	resolved, err := opts.ResolveScalar(def.Name, tstype.DirectionOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "export type %s = %s;\n\n", name, resolved)
	return nil
}
