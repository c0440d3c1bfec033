package tstype

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// NamingCase is one of the casing conventions that can be applied to
// generated declaration names and enum values.
type NamingCase int

const (
	// NamingCaseKeep leaves names exactly as they appear in the schema.
	NamingCaseKeep NamingCase = iota
	NamingCasePascal
	NamingCaseCamel
	NamingCaseConstant
	NamingCaseSnake
	NamingCaseLower
	NamingCaseUpper
)

// ParseNamingCase parses both the short names ("pascal-case") and the
// change-case module identifiers ("change-case-all#pascalCase") that older
// configurations use.
func ParseNamingCase(s string) (NamingCase, error) {
	name := s
	if idx := strings.LastIndex(name, "#"); idx >= 0 {
		name = name[idx+1:]
	}
	switch name {
	case "keep":
		return NamingCaseKeep, nil
	case "pascal-case", "pascalCase":
		return NamingCasePascal, nil
	case "camel-case", "camelCase":
		return NamingCaseCamel, nil
	case "constant-case", "constantCase":
		return NamingCaseConstant, nil
	case "snake-case", "snakeCase":
		return NamingCaseSnake, nil
	case "lower-case", "lowerCase":
		return NamingCaseLower, nil
	case "upper-case", "upperCase":
		return NamingCaseUpper, nil
	default:
		return NamingCaseKeep, errors.Errorf("invalid naming convention: %q", s)
	}
}

func (c NamingCase) String() string {
	switch c {
	case NamingCasePascal:
		return "pascal-case"
	case NamingCaseCamel:
		return "camel-case"
	case NamingCaseConstant:
		return "constant-case"
	case NamingCaseSnake:
		return "snake-case"
	case NamingCaseLower:
		return "lower-case"
	case NamingCaseUpper:
		return "upper-case"
	default:
		return "keep"
	}
}

// Apply transforms name according to the case. With transformUnderscore
// underscores are treated as word separators and folded away; without it
// each underscore-separated segment is cased on its own and the
// underscores are preserved.
func (c NamingCase) Apply(name string, transformUnderscore bool) string {
	if c == NamingCaseKeep || name == "" {
		return name
	}
	if transformUnderscore || !strings.Contains(name, "_") {
		return c.applySegment(name)
	}

	segments := strings.Split(name, "_")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		segments[i] = c.applySegment(segment)
	}
	return strings.Join(segments, "_")
}

func (c NamingCase) applySegment(segment string) string {
	switch c {
	case NamingCasePascal:
		return strcase.ToCamel(segment)
	case NamingCaseCamel:
		return strcase.ToLowerCamel(segment)
	case NamingCaseConstant:
		return strcase.ToScreamingSnake(segment)
	case NamingCaseSnake:
		return strcase.ToSnake(segment)
	case NamingCaseLower:
		return strings.ToLower(segment)
	case NamingCaseUpper:
		return strings.ToUpper(segment)
	default:
		return segment
	}
}
