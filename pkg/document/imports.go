package document

import (
	"path"
	"regexp"
)

// importStatementRegex matches the #import comments understood by the
// graphql-tag loader family:
//
//	#import "./fragments/userParts.graphql"
//
// The comment must be the first thing on its line; paths resolve relative
// to the importing file.
var importStatementRegex = regexp.MustCompile(`(?m)^[ \t]*#import\s+"([^"]+)"`)

// importedPaths returns the normalized paths imported by a document.
func importedPaths(fromPath, content string) []string {
	matches := importStatementRegex.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	dir := path.Dir(normalizePath(fromPath))
	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, normalizePath(path.Join(dir, match[1])))
	}
	return paths
}
