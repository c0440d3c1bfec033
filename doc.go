// graphql-ts-codegen generates TypeScript types from GraphQL schemas and operations.
//
// About GraphQL
//
// GraphQL is a query language for APIs and a runtime for fulfilling those queries with your existing data. GraphQL provides a complete and understandable description of the data in your API, gives clients the power to ask for exactly what they need and nothing more, makes it easier to evolve APIs over time, and enables powerful developer tools.
//
// Source: https://graphql.org
//
// About this tool
//
// graphql-ts-codegen reads a GraphQL schema together with the operations and fragments of a project and emits the matching TypeScript declarations.
// Every named operation gets a result type shaped exactly like its selection set, with selections on interfaces and unions expanded into discriminated unions on __typename, and a variables type derived from its variable definitions.
// The schema-types generator additionally emits declarations for the whole schema: object and interface shapes, enums as string literal unions, input objects and scalar aliases.
//
// The pkg packages are usable as a library:
// - pkg/document collects operations from .graphql files and from documents embedded in JavaScript/TypeScript sources
// - pkg/operationtypes and pkg/schematypes hold the generators
// - pkg/codegen assembles output files and drives complete runs from a configuration
// - pkg/gqlconfig loads and validates the graphql-codegen.yml configuration
//
// The command line around them lives in cmd.
package main
