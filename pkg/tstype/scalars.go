package tstype

import "fmt"

// builtinScalars maps the GraphQL built-in scalars to their TypeScript
// representation. Built-ins are never subject to strictScalars.
var builtinScalars = map[string]string{
	"ID":      "string",
	"String":  "string",
	"Boolean": "boolean",
	"Int":     "number",
	"Float":   "number",
}

// IsBuiltinScalar reports whether name is one of the GraphQL built-in
// scalar types.
func IsBuiltinScalar(name string) bool {
	_, ok := builtinScalars[name]
	return ok
}

// UnknownScalarError is returned when strictScalars is enabled and a custom
// scalar has no configured mapping. It aborts generation for the output.
type UnknownScalarError struct {
	Scalar string
}

func (e *UnknownScalarError) Error() string {
	return fmt.Sprintf("Unknown scalar type '%s'. Please override it using the \"scalars\" configuration field!", e.Scalar)
}

// ResolveScalar returns the TypeScript type for a scalar in the given
// direction. Configured mappings win over built-ins so ID or Int can be
// overridden; unmapped custom scalars fall back to the default scalar type
// unless strictScalars turns them into an error.
func (o *Options) ResolveScalar(name string, dir Direction) (string, error) {
	if mapping, ok := o.Scalars[name]; ok {
		if mapped := mapping.For(dir); mapped != "" {
			return mapped, nil
		}
	}
	if builtin, ok := builtinScalars[name]; ok {
		return builtin, nil
	}
	if o.StrictScalars {
		return "", &UnknownScalarError{Scalar: name}
	}
	return o.DefaultScalarType, nil
}
