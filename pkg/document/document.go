// Package document loads GraphQL executable documents for code generation.
//
// Documents come from .graphql files or from tagged template literals
// embedded in JavaScript and TypeScript sources. The package discovers
// files through glob patterns, extracts embedded documents, parses them
// and collects the result into ordered operation and fragment tables.
package document

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Operation is a named query, mutation or subscription definition together
// with its raw source text.
type Operation struct {
	Name       string
	Type       ast.Operation
	Definition *ast.OperationDefinition
	Path       string
	Text       string
}

// Fragment is a named fragment definition together with its raw source text.
type Fragment struct {
	Name          string
	TypeCondition string
	Definition    *ast.FragmentDefinition
	Path          string
	Text          string
}

// Documents holds the collected operations and fragments of a generation
// run. Both tables preserve insertion order; duplicates keep the first
// definition and record a warning.
type Documents struct {
	operations     []*Operation
	operationIndex map[string]*Operation
	fragments      []*Fragment
	fragmentIndex  map[string]*Fragment

	Warnings []string
}

func NewDocuments() *Documents {
	return &Documents{
		operationIndex: map[string]*Operation{},
		fragmentIndex:  map[string]*Fragment{},
	}
}

// AddOperation appends op unless an operation with the same name exists.
func (d *Documents) AddOperation(op *Operation) bool {
	if _, exists := d.operationIndex[op.Name]; exists {
		d.Warnings = append(d.Warnings, fmt.Sprintf("Duplicate operation '%s' (skipped)", op.Name))
		return false
	}
	d.operationIndex[op.Name] = op
	d.operations = append(d.operations, op)
	return true
}

// AddFragment appends frag unless a fragment with the same name exists.
func (d *Documents) AddFragment(frag *Fragment) bool {
	if _, exists := d.fragmentIndex[frag.Name]; exists {
		d.Warnings = append(d.Warnings, fmt.Sprintf("Duplicate fragment '%s' (skipped)", frag.Name))
		return false
	}
	d.fragmentIndex[frag.Name] = frag
	d.fragments = append(d.fragments, frag)
	return true
}

// Operations returns all operations in insertion order.
func (d *Documents) Operations() []*Operation {
	return d.operations
}

// Fragments returns all fragments in insertion order.
func (d *Documents) Fragments() []*Fragment {
	return d.fragments
}

// Operation looks up an operation by name, nil when absent.
func (d *Documents) Operation(name string) *Operation {
	return d.operationIndex[name]
}

// Fragment looks up a fragment by name, nil when absent.
func (d *Documents) Fragment(name string) *Fragment {
	return d.fragmentIndex[name]
}

// Len returns the total number of collected definitions.
func (d *Documents) Len() int {
	return len(d.operations) + len(d.fragments)
}
