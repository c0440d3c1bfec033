package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/wundergraph/graphql-ts-codegen/pkg/sourcecache"
)

var graphqlExtensions = map[string]bool{
	".graphql": true,
	".gql":     true,
}

var jsExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
}

// Collector discovers document files, extracts embedded documents and
// parses them into operation and fragment tables.
type Collector struct {
	fs    afero.Fs
	cache *sourcecache.Cache
	log   abstractlogger.Logger
}

type CollectorOption func(*Collector)

func WithLogger(logger abstractlogger.Logger) CollectorOption {
	return func(c *Collector) {
		c.log = logger
	}
}

func WithSourceCache(cache *sourcecache.Cache) CollectorOption {
	return func(c *Collector) {
		c.cache = cache
	}
}

func NewCollector(fsys afero.Fs, options ...CollectorOption) *Collector {
	collector := &Collector{
		fs:  fsys,
		log: abstractlogger.Noop{},
	}
	for _, option := range options {
		option(collector)
	}
	return collector
}

// Collect loads all documents matched by the glob patterns. Unparseable
// documents, anonymous operations and duplicate definitions become
// warnings on the returned Documents rather than errors.
func (c *Collector) Collect(patterns []string) (*Documents, error) {
	files, err := FindFiles(c.fs, patterns)
	if err != nil {
		return nil, err
	}

	// Matched files are marked up front so #import comments pointing back
	// at them do not collect them twice.
	visited := make(map[string]bool, len(files))
	for _, file := range files {
		visited[file] = true
	}

	docs := NewDocuments()
	for _, file := range files {
		content, err := afero.ReadFile(c.fs, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", file)
		}
		c.collectSource(docs, file, string(content), visited)
	}
	return docs, nil
}

// CollectSource adds all documents found in a single source file to docs.
// GraphQL files contribute their whole content, JavaScript and TypeScript
// files are scanned for embedded documents. Embedded documents with ${...}
// substitutions cannot be statically typed and are rejected with a warning.
// Files referenced through #import comments are collected as well.
func (c *Collector) CollectSource(docs *Documents, path, content string) {
	c.collectSource(docs, path, content, map[string]bool{normalizePath(path): true})
}

func (c *Collector) collectSource(docs *Documents, path, content string, visited map[string]bool) {
	switch {
	case graphqlExtensions[fileExtension(path)]:
		c.collectImports(docs, path, content, visited)
		c.addChunk(docs, path, content)
	case jsExtensions[fileExtension(path)]:
		for _, extracted := range ExtractDocuments(content) {
			if extracted.HasSubstitution {
				docs.Warnings = append(docs.Warnings,
					fmt.Sprintf("Template substitution in '%s' line %d (skipped)", path, extracted.Line))
				continue
			}
			c.collectImports(docs, path, extracted.Body, visited)
			c.addChunk(docs, path, extracted.Body)
		}
	default:
		c.log.Debug("document.Collector: skipping file with unsupported extension",
			abstractlogger.String("filePath", path),
		)
	}
}

// collectImports loads the files referenced by #import comments. Already
// visited files are skipped, which both deduplicates shared fragment
// files and terminates import cycles.
func (c *Collector) collectImports(docs *Documents, fromPath, content string, visited map[string]bool) {
	for _, importPath := range importedPaths(fromPath, content) {
		if visited[importPath] {
			continue
		}
		visited[importPath] = true

		imported, err := afero.ReadFile(c.fs, importPath)
		if err != nil {
			docs.Warnings = append(docs.Warnings,
				fmt.Sprintf("Failed to import '%s' in '%s' (skipped)", importPath, fromPath))
			continue
		}
		c.collectSource(docs, importPath, string(imported), visited)
	}
}

func (c *Collector) addChunk(docs *Documents, path, chunk string) {
	if strings.TrimSpace(chunk) == "" {
		return
	}

	doc, err := c.parse(path, chunk)
	if err != nil {
		docs.Warnings = append(docs.Warnings, fmt.Sprintf("Failed to parse document in '%s': %s", path, err))
		c.log.Debug("document.Collector: failed to parse document",
			abstractlogger.String("filePath", path),
			abstractlogger.Error(err),
		)
		return
	}

	texts := definitionTexts(chunk, doc)
	for _, op := range doc.Operations {
		if op.Name == "" {
			docs.Warnings = append(docs.Warnings, fmt.Sprintf("Anonymous operation in '%s' (skipped)", path))
			continue
		}
		docs.AddOperation(&Operation{
			Name:       op.Name,
			Type:       op.Operation,
			Definition: op,
			Path:       path,
			Text:       texts[op],
		})
	}
	for _, frag := range doc.Fragments {
		docs.AddFragment(&Fragment{
			Name:          frag.Name,
			TypeCondition: frag.TypeCondition,
			Definition:    frag,
			Path:          path,
			Text:          texts[frag],
		})
	}
}

func (c *Collector) parse(path, chunk string) (*ast.QueryDocument, error) {
	if c.cache != nil {
		return c.cache.Parse(path, chunk)
	}
	return parser.ParseQuery(&ast.Source{Name: path, Input: chunk})
}

// definitionTexts slices the raw chunk into one text per top-level
// definition, so each operation and fragment keeps its own source. The
// parser records only start positions, so each definition runs until the
// start of the next one.
func definitionTexts(chunk string, doc *ast.QueryDocument) map[interface{}]string {
	type boundary struct {
		start int
		def   interface{}
	}

	var boundaries []boundary
	for _, op := range doc.Operations {
		start := 0
		if op.Position != nil {
			start = op.Position.Start
		}
		boundaries = append(boundaries, boundary{start: start, def: op})
	}
	for _, frag := range doc.Fragments {
		start := 0
		if frag.Position != nil {
			start = frag.Position.Start
		}
		boundaries = append(boundaries, boundary{start: start, def: frag})
	}

	texts := make(map[interface{}]string, len(boundaries))
	if len(boundaries) == 1 {
		b := boundaries[0]
		if b.start > 0 && b.start <= len(chunk) {
			// Slicing from the definition start drops leading comments,
			// #import lines in particular.
			texts[b.def] = strings.TrimSpace(chunk[b.start:])
			return texts
		}
		texts[b.def] = strings.TrimSpace(chunk)
		return texts
	}

	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].start < boundaries[j].start })
	for i, b := range boundaries {
		end := len(chunk)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].start
		}
		if b.start > len(chunk) || b.start > end {
			texts[b.def] = strings.TrimSpace(chunk)
			continue
		}
		texts[b.def] = strings.TrimSpace(chunk[b.start:end])
	}
	return texts
}

func fileExtension(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || strings.ContainsRune(path[idx:], '/') {
		return ""
	}
	return strings.ToLower(path[idx:])
}
