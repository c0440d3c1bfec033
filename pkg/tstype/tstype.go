// Package tstype resolves generator configuration and renders GraphQL type
// references as TypeScript type expressions.
//
// It is the leaf package of the generator stack: everything that needs to
// turn an ast.Type plus nullability into TypeScript text goes through here.
package tstype

import (
	"strings"

	"github.com/pkg/errors"
)

// TypenamePolicy controls if and how the __typename discriminator field is
// emitted into generated selection types.
type TypenamePolicy int

const (
	// TypenamePolicyAlways emits __typename in every object-shaped selection
	// set and every variant, selected or not.
	TypenamePolicyAlways TypenamePolicy = iota
	// TypenamePolicyAsSelected emits __typename only where the operation
	// author explicitly selected it.
	TypenamePolicyAsSelected
	// TypenamePolicySkip never emits __typename, even if explicitly selected.
	TypenamePolicySkip
)

func (p TypenamePolicy) String() string {
	switch p {
	case TypenamePolicyAsSelected:
		return "asSelected"
	case TypenamePolicySkip:
		return "skip"
	default:
		return "always"
	}
}

// ParseTypenamePolicy parses the configuration string form of a policy.
func ParseTypenamePolicy(s string) (TypenamePolicy, error) {
	switch s {
	case "always":
		return TypenamePolicyAlways, nil
	case "asSelected":
		return TypenamePolicyAsSelected, nil
	case "skip":
		return TypenamePolicySkip, nil
	default:
		return TypenamePolicyAlways, errors.Errorf("invalid typenamePolicy: %q", s)
	}
}

// DeclarationKind selects between interface and type alias declarations.
type DeclarationKind int

const (
	DeclarationKindInterface DeclarationKind = iota
	DeclarationKindType
)

func (k DeclarationKind) String() string {
	if k == DeclarationKindType {
		return "type"
	}
	return "interface"
}

// ParseDeclarationKind parses the configuration string form of a kind.
func ParseDeclarationKind(s string) (DeclarationKind, error) {
	switch s {
	case "interface":
		return DeclarationKindInterface, nil
	case "type":
		return DeclarationKindType, nil
	default:
		return DeclarationKindInterface, errors.Errorf("invalid declarationKind: %q", s)
	}
}

// Direction distinguishes input positions (variables, input object fields,
// field arguments) from output positions (selection fields). Custom scalar
// mappings and nullable wrappers may differ per direction.
type Direction int

const (
	DirectionOutput Direction = iota
	DirectionInput
)

// ScalarMapping maps one schema scalar to TypeScript, optionally split into
// separate input and output representations.
type ScalarMapping struct {
	Input  string
	Output string
}

// UnmarshalYAML accepts either a plain string (applied to both directions)
// or an object with input/output keys.
func (m *ScalarMapping) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var simple string
	if err := unmarshal(&simple); err == nil {
		m.Input = simple
		m.Output = simple
		return nil
	}

	var detailed struct {
		Input  string `yaml:"input"`
		Output string `yaml:"output"`
	}
	if err := unmarshal(&detailed); err != nil {
		return errors.Wrap(err, "scalar mapping must be a string or {input, output}")
	}
	m.Input = detailed.Input
	m.Output = detailed.Output
	return nil
}

// For returns the mapping for the given direction.
func (m ScalarMapping) For(dir Direction) string {
	if dir == DirectionInput {
		return m.Input
	}
	return m.Output
}

// AvoidOptionals holds the resolved avoid-optionals flags.
type AvoidOptionals struct {
	Field        bool
	Object       bool
	InputValue   bool
	DefaultValue bool
}

// AvoidOptionalsConfig is the configuration form: either a single boolean
// applied to all flags or an object with per-flag booleans.
type AvoidOptionalsConfig struct {
	All          *bool
	Field        *bool
	Object       *bool
	InputValue   *bool
	DefaultValue *bool
}

func (c *AvoidOptionalsConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var all bool
	if err := unmarshal(&all); err == nil {
		c.All = &all
		return nil
	}

	var detailed struct {
		Field        *bool `yaml:"field"`
		Object       *bool `yaml:"object"`
		InputValue   *bool `yaml:"inputValue"`
		DefaultValue *bool `yaml:"defaultValue"`
	}
	if err := unmarshal(&detailed); err != nil {
		return errors.Wrap(err, "avoidOptionals must be a boolean or an object")
	}
	c.Field = detailed.Field
	c.Object = detailed.Object
	c.InputValue = detailed.InputValue
	c.DefaultValue = detailed.DefaultValue
	return nil
}

func (c *AvoidOptionalsConfig) resolve() AvoidOptionals {
	if c == nil {
		return AvoidOptionals{}
	}
	if c.All != nil {
		return AvoidOptionals{Field: *c.All, Object: *c.All, InputValue: *c.All, DefaultValue: *c.All}
	}
	resolved := AvoidOptionals{}
	if c.Field != nil {
		resolved.Field = *c.Field
	}
	if c.Object != nil {
		resolved.Object = *c.Object
	}
	if c.InputValue != nil {
		resolved.InputValue = *c.InputValue
	}
	if c.DefaultValue != nil {
		resolved.DefaultValue = *c.DefaultValue
	}
	return resolved
}

// NamingConventionConfig is the configuration form of the naming convention:
// either a single case name applied to type names or an object with separate
// conventions for type names and enum values.
type NamingConventionConfig struct {
	Simple              *string
	TypeNames           *string
	EnumValues          *string
	TransformUnderscore bool
}

func (c *NamingConventionConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var simple string
	if err := unmarshal(&simple); err == nil {
		c.Simple = &simple
		return nil
	}

	var detailed struct {
		TypeNames           *string `yaml:"typeNames"`
		EnumValues          *string `yaml:"enumValues"`
		TransformUnderscore bool    `yaml:"transformUnderscore"`
	}
	if err := unmarshal(&detailed); err != nil {
		return errors.Wrap(err, "namingConvention must be a string or an object")
	}
	c.TypeNames = detailed.TypeNames
	c.EnumValues = detailed.EnumValues
	c.TransformUnderscore = detailed.TransformUnderscore
	return nil
}

// Config is the raw, mergeable generator configuration. Nil fields mean
// "unset" so configs can be layered global -> output -> generator with
// later layers winning per key. Resolve applies defaults and produces the
// immutable Options consumed by the generators.
type Config struct {
	Scalars             map[string]ScalarMapping `yaml:"scalars,omitempty" json:"scalars,omitempty"`
	StrictScalars       *bool                    `yaml:"strictScalars,omitempty" json:"strictScalars,omitempty"`
	DefaultScalarType   *string                  `yaml:"defaultScalarType,omitempty" json:"defaultScalarType,omitempty"`
	SkipTypename        *bool                    `yaml:"skipTypename,omitempty" json:"skipTypename,omitempty"`
	TypenamePolicy      *string                  `yaml:"typenamePolicy,omitempty" json:"typenamePolicy,omitempty"`
	NonOptionalTypename *bool                    `yaml:"nonOptionalTypename,omitempty" json:"nonOptionalTypename,omitempty"`
	ImmutableTypes      *bool                    `yaml:"immutableTypes,omitempty" json:"immutableTypes,omitempty"`
	DeclarationKind     *string                  `yaml:"declarationKind,omitempty" json:"declarationKind,omitempty"`
	EnumsAsTypes        *bool                    `yaml:"enumsAsTypes,omitempty" json:"enumsAsTypes,omitempty"`
	FutureProofEnums    *bool                    `yaml:"futureProofEnums,omitempty" json:"futureProofEnums,omitempty"`
	FutureProofUnions   *bool                    `yaml:"futureProofUnions,omitempty" json:"futureProofUnions,omitempty"`
	OnlyReferencedTypes *bool                    `yaml:"onlyReferencedTypes,omitempty" json:"onlyReferencedTypes,omitempty"`
	AvoidOptionals      *AvoidOptionalsConfig    `yaml:"avoidOptionals,omitempty" json:"avoidOptionals,omitempty"`
	MaybeValue          *string                  `yaml:"maybeValue,omitempty" json:"maybeValue,omitempty"`
	InputMaybeValue     *string                  `yaml:"inputMaybeValue,omitempty" json:"inputMaybeValue,omitempty"`
	TypesPrefix         *string                  `yaml:"typesPrefix,omitempty" json:"typesPrefix,omitempty"`
	TypesSuffix         *string                  `yaml:"typesSuffix,omitempty" json:"typesSuffix,omitempty"`
	NamingConvention    *NamingConventionConfig  `yaml:"namingConvention,omitempty" json:"namingConvention,omitempty"`
	GraphqlTag          *string                  `yaml:"graphqlTag,omitempty" json:"graphqlTag,omitempty"`
	IncludeFragments    *bool                    `yaml:"includeFragments,omitempty" json:"includeFragments,omitempty"`
}

// Merge layers overlay on top of c and returns the combined config. Neither
// receiver nor argument is modified. Scalar mappings merge per scalar name,
// everything else is replaced wholesale when the overlay sets it.
func (c *Config) Merge(overlay *Config) *Config {
	merged := Config{}
	if c != nil {
		merged = *c
	}
	if overlay == nil {
		return &merged
	}

	if len(overlay.Scalars) > 0 {
		scalars := make(map[string]ScalarMapping, len(merged.Scalars)+len(overlay.Scalars))
		for name, mapping := range merged.Scalars {
			scalars[name] = mapping
		}
		for name, mapping := range overlay.Scalars {
			scalars[name] = mapping
		}
		merged.Scalars = scalars
	}

	if overlay.StrictScalars != nil {
		merged.StrictScalars = overlay.StrictScalars
	}
	if overlay.DefaultScalarType != nil {
		merged.DefaultScalarType = overlay.DefaultScalarType
	}
	if overlay.SkipTypename != nil {
		merged.SkipTypename = overlay.SkipTypename
	}
	if overlay.TypenamePolicy != nil {
		merged.TypenamePolicy = overlay.TypenamePolicy
	}
	if overlay.NonOptionalTypename != nil {
		merged.NonOptionalTypename = overlay.NonOptionalTypename
	}
	if overlay.ImmutableTypes != nil {
		merged.ImmutableTypes = overlay.ImmutableTypes
	}
	if overlay.DeclarationKind != nil {
		merged.DeclarationKind = overlay.DeclarationKind
	}
	if overlay.EnumsAsTypes != nil {
		merged.EnumsAsTypes = overlay.EnumsAsTypes
	}
	if overlay.FutureProofEnums != nil {
		merged.FutureProofEnums = overlay.FutureProofEnums
	}
	if overlay.FutureProofUnions != nil {
		merged.FutureProofUnions = overlay.FutureProofUnions
	}
	if overlay.OnlyReferencedTypes != nil {
		merged.OnlyReferencedTypes = overlay.OnlyReferencedTypes
	}
	if overlay.AvoidOptionals != nil {
		merged.AvoidOptionals = overlay.AvoidOptionals
	}
	if overlay.MaybeValue != nil {
		merged.MaybeValue = overlay.MaybeValue
	}
	if overlay.InputMaybeValue != nil {
		merged.InputMaybeValue = overlay.InputMaybeValue
	}
	if overlay.TypesPrefix != nil {
		merged.TypesPrefix = overlay.TypesPrefix
	}
	if overlay.TypesSuffix != nil {
		merged.TypesSuffix = overlay.TypesSuffix
	}
	if overlay.NamingConvention != nil {
		merged.NamingConvention = overlay.NamingConvention
	}
	if overlay.GraphqlTag != nil {
		merged.GraphqlTag = overlay.GraphqlTag
	}
	if overlay.IncludeFragments != nil {
		merged.IncludeFragments = overlay.IncludeFragments
	}
	return &merged
}

// Options is the fully resolved generator configuration. All fields carry
// concrete values; generators never consult defaults themselves.
type Options struct {
	Scalars             map[string]ScalarMapping
	StrictScalars       bool
	DefaultScalarType   string
	TypenamePolicy      TypenamePolicy
	NonOptionalTypename bool
	ImmutableTypes      bool
	DeclarationKind     DeclarationKind
	EnumsAsTypes        bool
	FutureProofEnums    bool
	FutureProofUnions   bool
	OnlyReferencedTypes bool
	AvoidOptionals      AvoidOptionals
	MaybeValue          string
	InputMaybeValue     string
	TypesPrefix         string
	TypesSuffix         string
	TypeNameCase        NamingCase
	EnumValueCase       NamingCase
	TransformUnderscore bool
	GraphqlTag          string
	IncludeFragments    bool

	maybeOutput maybeWrapper
	maybeInput  maybeWrapper
}

// DefaultMaybeValue is the nullable wrapper template applied when no
// maybeValue is configured. The standalone T token is replaced by the
// wrapped type expression.
const DefaultMaybeValue = "T | null"

// DefaultInputMaybeValue is the body of the InputMaybe utility type emitted
// by the schema-types generator when no inputMaybeValue is configured.
const DefaultInputMaybeValue = "Maybe<T>"

// Resolve applies defaults and parses string-typed fields, producing the
// immutable options consumed by the generators. A nil receiver resolves to
// all defaults.
func (c *Config) Resolve() (*Options, error) {
	opts := &Options{
		Scalars:           map[string]ScalarMapping{},
		DefaultScalarType: "unknown",
		TypenamePolicy:    TypenamePolicyAlways,
		ImmutableTypes:    true,
		DeclarationKind:   DeclarationKindInterface,
		EnumsAsTypes:      true,
		FutureProofEnums:  true,
		FutureProofUnions: true,
		MaybeValue:        DefaultMaybeValue,
		InputMaybeValue:   DefaultMaybeValue,
		TypeNameCase:      NamingCaseKeep,
		EnumValueCase:     NamingCaseKeep,
		IncludeFragments:  true,
	}

	if c == nil {
		c = &Config{}
	}

	for name, mapping := range c.Scalars {
		opts.Scalars[name] = mapping
	}
	if c.StrictScalars != nil {
		opts.StrictScalars = *c.StrictScalars
	}
	if c.DefaultScalarType != nil {
		opts.DefaultScalarType = *c.DefaultScalarType
	}
	if c.TypenamePolicy != nil {
		policy, err := ParseTypenamePolicy(*c.TypenamePolicy)
		if err != nil {
			return nil, err
		}
		opts.TypenamePolicy = policy
	} else if c.SkipTypename != nil {
		// Legacy boolean: true collapses to Skip, false to Always.
		if *c.SkipTypename {
			opts.TypenamePolicy = TypenamePolicySkip
		} else {
			opts.TypenamePolicy = TypenamePolicyAlways
		}
	}
	if c.NonOptionalTypename != nil {
		opts.NonOptionalTypename = *c.NonOptionalTypename
	}
	if c.ImmutableTypes != nil {
		opts.ImmutableTypes = *c.ImmutableTypes
	}
	if c.DeclarationKind != nil {
		kind, err := ParseDeclarationKind(*c.DeclarationKind)
		if err != nil {
			return nil, err
		}
		opts.DeclarationKind = kind
	}
	if c.EnumsAsTypes != nil {
		opts.EnumsAsTypes = *c.EnumsAsTypes
	}
	if c.FutureProofEnums != nil {
		opts.FutureProofEnums = *c.FutureProofEnums
	}
	if c.FutureProofUnions != nil {
		opts.FutureProofUnions = *c.FutureProofUnions
	}
	if c.OnlyReferencedTypes != nil {
		opts.OnlyReferencedTypes = *c.OnlyReferencedTypes
	}
	opts.AvoidOptionals = c.AvoidOptionals.resolve()
	if c.MaybeValue != nil {
		opts.MaybeValue = *c.MaybeValue
		opts.InputMaybeValue = *c.MaybeValue
	}
	if c.InputMaybeValue != nil {
		opts.InputMaybeValue = *c.InputMaybeValue
	}
	if c.TypesPrefix != nil {
		opts.TypesPrefix = *c.TypesPrefix
	}
	if c.TypesSuffix != nil {
		opts.TypesSuffix = *c.TypesSuffix
	}
	if c.NamingConvention != nil {
		if err := resolveNamingConvention(c.NamingConvention, opts); err != nil {
			return nil, err
		}
	}
	if c.GraphqlTag != nil {
		opts.GraphqlTag = *c.GraphqlTag
	}
	if c.IncludeFragments != nil {
		opts.IncludeFragments = *c.IncludeFragments
	}

	var err error
	opts.maybeOutput, err = splitMaybeTemplate(opts.MaybeValue)
	if err != nil {
		return nil, err
	}
	opts.maybeInput, err = splitMaybeTemplate(opts.InputMaybeValue)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

func resolveNamingConvention(c *NamingConventionConfig, opts *Options) error {
	opts.TransformUnderscore = c.TransformUnderscore
	if c.Simple != nil {
		caseName, err := ParseNamingCase(*c.Simple)
		if err != nil {
			return err
		}
		opts.TypeNameCase = caseName
		opts.EnumValueCase = caseName
		return nil
	}
	if c.TypeNames != nil {
		caseName, err := ParseNamingCase(*c.TypeNames)
		if err != nil {
			return err
		}
		opts.TypeNameCase = caseName
	}
	if c.EnumValues != nil {
		caseName, err := ParseNamingCase(*c.EnumValues)
		if err != nil {
			return err
		}
		opts.EnumValueCase = caseName
	}
	return nil
}

// maybeWrapper is a maybe template split around its standalone T token, so
// suffix-style templates ("T | null") and wrapper-style templates
// ("Maybe<T>") render through the same prefix/suffix mechanics.
type maybeWrapper struct {
	prefix string
	suffix string
}

func (w maybeWrapper) wrap(expr string) string {
	return w.prefix + expr + w.suffix
}

func splitMaybeTemplate(template string) (maybeWrapper, error) {
	idx := standaloneTokenIndex(template, "T")
	if idx < 0 {
		return maybeWrapper{}, errors.Errorf("maybe value %q must contain a standalone T placeholder", template)
	}
	return maybeWrapper{prefix: template[:idx], suffix: template[idx+1:]}, nil
}

// standaloneTokenIndex finds token in s at a position where it is not part
// of a larger identifier.
func standaloneTokenIndex(s, token string) int {
	for offset := 0; offset < len(s); {
		idx := strings.Index(s[offset:], token)
		if idx < 0 {
			return -1
		}
		idx += offset
		before := idx == 0 || !isIdentChar(s[idx-1])
		afterIdx := idx + len(token)
		after := afterIdx >= len(s) || !isIdentChar(s[afterIdx])
		if before && after {
			return idx
		}
		offset = idx + 1
	}
	return -1
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ReadonlyPrefix returns "readonly " when immutable types are enabled.
func (o *Options) ReadonlyPrefix() string {
	if o.ImmutableTypes {
		return "readonly "
	}
	return ""
}

// ArrayType returns the list wrapper name for the configured mutability.
func (o *Options) ArrayType() string {
	if o.ImmutableTypes {
		return "ReadonlyArray"
	}
	return "Array"
}

// MaybeWrap wraps expr in the configured nullable representation for the
// given direction.
func (o *Options) MaybeWrap(expr string, dir Direction) string {
	return o.maybe(dir).wrap(expr)
}

// MaybePrefix returns the text emitted before a nullable expression. Empty
// for suffix-style templates such as the default "T | null".
func (o *Options) MaybePrefix(dir Direction) string {
	return o.maybe(dir).prefix
}

// MaybeSuffix returns the text emitted after a nullable expression.
func (o *Options) MaybeSuffix(dir Direction) string {
	return o.maybe(dir).suffix
}

func (o *Options) maybe(dir Direction) maybeWrapper {
	if dir == DirectionInput {
		return o.maybeInput
	}
	return o.maybeOutput
}

// TransformTypeName applies the configured naming convention plus the
// types prefix/suffix to a declaration name.
func (o *Options) TransformTypeName(name string) string {
	cased := o.TypeNameCase.Apply(name, o.TransformUnderscore)
	if o.TypesPrefix == "" && o.TypesSuffix == "" {
		return cased
	}
	return o.TypesPrefix + cased + o.TypesSuffix
}

// TransformEnumValue applies the configured enum value naming convention.
func (o *Options) TransformEnumValue(value string) string {
	return o.EnumValueCase.Apply(value, o.TransformUnderscore)
}
