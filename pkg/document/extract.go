package document

import "strings"

// ExtractedDocument is a GraphQL document found embedded in a JavaScript
// or TypeScript source file.
type ExtractedDocument struct {
	Body string
	Line int
	// HasSubstitution marks templates containing ${...} substitutions.
	// Substituted documents cannot be statically typed; the collector
	// rejects them with a warning.
	HasSubstitution bool
}

// ExtractDocuments scans a JavaScript or TypeScript source and returns the
// bodies of gql and graphql tagged template literals, plus template
// literals announced by a /* GraphQL */ magic comment.
//
// The scanner is purely lexical. It skips string literals, comments and
// untagged template literals, and tracks ${...} interpolation nesting so a
// backtick inside an interpolation does not terminate the template.
func ExtractDocuments(source string) []ExtractedDocument {
	var docs []ExtractedDocument
	s := source
	n := len(s)
	i := 0
	for i < n {
		c := s[i]
		switch {
		case c == '/' && i+1 < n && s[i+1] == '/':
			i = skipLineComment(s, i+2)
		case c == '/' && i+1 < n && s[i+1] == '*':
			body, next := readBlockComment(s, i+2)
			i = next
			if isMagicComment(body) {
				j := skipWhitespace(s, i)
				if j < n && s[j] == '`' {
					content, hasSub, after := readTemplate(s, j+1)
					docs = append(docs, ExtractedDocument{Body: content, Line: lineAt(s, j), HasSubstitution: hasSub})
					i = after
				}
			}
		case c == '\'' || c == '"':
			i = skipStringLiteral(s, i+1, c)
		case c == '`':
			_, _, i = readTemplate(s, i+1)
		case isIdentStart(c):
			start := i
			i = readIdentifier(s, i)
			if !isExtractTag(s[start:i]) || isMemberAccess(s, start) {
				continue
			}
			j := skipWhitespace(s, i)
			if j < n && s[j] == '`' {
				content, hasSub, after := readTemplate(s, j+1)
				docs = append(docs, ExtractedDocument{Body: content, Line: lineAt(s, j), HasSubstitution: hasSub})
				i = after
			}
		default:
			i++
		}
	}
	return docs
}

func isExtractTag(word string) bool {
	return word == "gql" || word == "graphql"
}

// isMagicComment reports whether a block comment body announces a GraphQL
// template, e.g. /* GraphQL */ or /** graphql */.
func isMagicComment(body string) bool {
	return strings.EqualFold(strings.Trim(body, " \t\r\n*"), "graphql")
}

// isMemberAccess reports whether the identifier starting at idx is part of
// a longer expression such as obj.gql or my_gql.
func isMemberAccess(s string, idx int) bool {
	if idx == 0 {
		return false
	}
	prev := s[idx-1]
	return prev == '.' || isIdentPart(prev)
}

// readTemplate consumes a template literal starting right after the
// opening backtick and returns its raw content, whether it contains a
// ${...} substitution and the index after the closing backtick.
func readTemplate(s string, i int) (string, bool, int) {
	start := i
	n := len(s)
	hasSub := false
	for i < n {
		switch s[i] {
		case '\\':
			i += 2
		case '`':
			return s[start:i], hasSub, i + 1
		case '$':
			if i+1 < n && s[i+1] == '{' {
				hasSub = true
				i = skipInterpolation(s, i+2)
			} else {
				i++
			}
		default:
			i++
		}
	}
	return s[start:], hasSub, n
}

// skipInterpolation consumes a ${...} interpolation body, balancing braces
// and stepping over nested strings, templates and comments.
func skipInterpolation(s string, i int) int {
	n := len(s)
	depth := 1
	for i < n && depth > 0 {
		switch s[i] {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		case '\'', '"':
			i = skipStringLiteral(s, i+1, s[i])
		case '`':
			_, _, i = readTemplate(s, i+1)
		case '/':
			if i+1 < n && s[i+1] == '/' {
				i = skipLineComment(s, i+2)
			} else if i+1 < n && s[i+1] == '*' {
				_, i = readBlockComment(s, i+2)
			} else {
				i++
			}
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return i
}

func skipStringLiteral(s string, i int, quote byte) int {
	n := len(s)
	for i < n {
		switch s[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		case '\n':
			// Unterminated single-line string, resume normal scanning.
			return i + 1
		default:
			i++
		}
	}
	return n
}

func skipLineComment(s string, i int) int {
	for i < len(s) && s[i] != '\n' {
		i++
	}
	return i
}

// readBlockComment consumes a block comment starting right after the /*
// and returns its body and the index after the closing */.
func readBlockComment(s string, i int) (string, int) {
	end := strings.Index(s[i:], "*/")
	if end < 0 {
		return s[i:], len(s)
	}
	return s[i : i+end], i + end + 2
}

func skipWhitespace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

func readIdentifier(s string, i int) int {
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func lineAt(s string, idx int) int {
	return strings.Count(s[:idx], "\n") + 1
}
