package schematypes

import (
	"bytes"
	"fmt"

	"github.com/wundergraph/graphql-ts-codegen/pkg/tstype"
)

// renderUtilityTypes writes the helper aliases every schema-types output
// begins with. Maybe and InputMaybe take their bodies from the configured
// maybe templates; the remaining helpers are fixed.
func renderUtilityTypes(buf *bytes.Buffer, opts *tstype.Options) {
	inputMaybe := opts.InputMaybeValue
	if inputMaybe == opts.MaybeValue {
		inputMaybe = tstype.DefaultInputMaybeValue
	}

	fmt.Fprintf(buf, "export type Maybe<T> = %s;\n", opts.MaybeValue)
	fmt.Fprintf(buf, "export type InputMaybe<T> = %s;\n", inputMaybe)
	buf.WriteString("export type Exact<T extends { [key: string]: unknown }> = { [K in keyof T]: T[K] };\n")
	buf.WriteString("export type MakeOptional<T, K extends keyof T> = Omit<T, K> & { [SubKey in K]?: Maybe<T[SubKey]> };\n")
	buf.WriteString("export type MakeMaybe<T, K extends keyof T> = Omit<T, K> & { [SubKey in K]: Maybe<T[SubKey]> };\n")
	buf.WriteString("export type MakeEmpty<T, K extends keyof T> = { [_ in K]?: never };\n")
	buf.WriteString("export type Incremental<T> = T | { [P in keyof T]?: P extends ' $fragmentName' | ' __typename' ? T[P] : never };\n")
	buf.WriteString("\n")
}
