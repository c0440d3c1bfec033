package main

import "github.com/wundergraph/graphql-ts-codegen/cmd"

func main() {
	cmd.Execute()
}
