// Package sourcecache memoizes parsed GraphQL documents between generation
// runs. Entries are keyed by a content hash, so renaming a file or moving a
// document between files still hits the cache. The cache is a pure
// optimization: output never depends on whether a parse was cached.
package sourcecache

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// DefaultSize bounds the number of parsed documents kept around between
// generation runs in watch mode.
const DefaultSize = 1024

// Cache is a bounded LRU of parsed query documents. Only successful parses
// are cached.
type Cache struct {
	lru *lru.Cache
}

func New(size int) (*Cache, error) {
	store, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: store}, nil
}

// Parse returns the parsed document for source, reusing a prior parse of
// identical text when available. The returned document is shared; callers
// must not mutate it.
func (c *Cache) Parse(name, source string) (*ast.QueryDocument, error) {
	key := xxhash.Sum64String(source)
	if cached, ok := c.lru.Get(key); ok {
		return cached.(*ast.QueryDocument), nil
	}
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, doc)
	return doc, nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return c.lru.Len()
}
