package document

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportedPaths(t *testing.T) {
	content := `#import "../fragments/userParts.graphql"
#import "./postParts.graphql"

query GetUser {
  user {
    ...UserParts
  }
}
`
	paths := importedPaths("src/queries/getUser.graphql", content)
	assert.Equal(t, []string{
		"src/fragments/userParts.graphql",
		"src/queries/postParts.graphql",
	}, paths)
}

func TestImportedPathsIgnoresCommentedMentions(t *testing.T) {
	content := `query GetUser {
  # see also #import "./nope.graphql"
  user {
    id
  }
}
`
	assert.Empty(t, importedPaths("src/q.graphql", content))
}

func TestCollectorResolvesImports(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "src/queries/getUser.graphql", `#import "../fragments/userParts.graphql"

query GetUser {
  user {
    ...UserParts
  }
}
`)
	writeTestFile(t, fsys, "src/fragments/userParts.graphql", `fragment UserParts on User {
  id
  name
}
`)

	docs, err := NewCollector(fsys).Collect([]string{"src/queries/*.graphql"})
	require.NoError(t, err)

	assert.Empty(t, docs.Warnings)
	require.NotNil(t, docs.Operation("GetUser"))
	frag := docs.Fragment("UserParts")
	require.NotNil(t, frag)
	assert.Equal(t, "src/fragments/userParts.graphql", frag.Path)

	// The import comment is not part of the operation text.
	assert.Equal(t, "query GetUser {\n  user {\n    ...UserParts\n  }\n}", docs.Operation("GetUser").Text)
}

func TestCollectorImportCycles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "src/a.graphql", `#import "./b.graphql"

fragment A on User {
  id
}
`)
	writeTestFile(t, fsys, "src/b.graphql", `#import "./a.graphql"

fragment B on User {
  name
}
`)

	docs, err := NewCollector(fsys).Collect([]string{"src/a.graphql"})
	require.NoError(t, err)

	assert.Empty(t, docs.Warnings)
	assert.NotNil(t, docs.Fragment("A"))
	assert.NotNil(t, docs.Fragment("B"))
}

func TestCollectorSharedImportCollectedOnce(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "src/one.graphql", `#import "./shared.graphql"

query One {
  user {
    ...Shared
  }
}
`)
	writeTestFile(t, fsys, "src/two.graphql", `#import "./shared.graphql"

query Two {
  user {
    ...Shared
  }
}
`)
	writeTestFile(t, fsys, "src/shared.graphql", `fragment Shared on User {
  id
}
`)

	docs, err := NewCollector(fsys).Collect([]string{"src/one.graphql", "src/two.graphql"})
	require.NoError(t, err)

	assert.Empty(t, docs.Warnings)
	assert.NotNil(t, docs.Operation("One"))
	assert.NotNil(t, docs.Operation("Two"))
	assert.NotNil(t, docs.Fragment("Shared"))
}

func TestCollectorImportMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "src/q.graphql", `#import "./missing.graphql"

query GetUser {
  user {
    id
  }
}
`)

	docs, err := NewCollector(fsys).Collect([]string{"src/q.graphql"})
	require.NoError(t, err)

	require.Len(t, docs.Warnings, 1)
	assert.Equal(t, "Failed to import 'src/missing.graphql' in 'src/q.graphql' (skipped)", docs.Warnings[0])
	assert.NotNil(t, docs.Operation("GetUser"))
}

func TestCollectorImportsFromEmbeddedDocuments(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTestFile(t, fsys, "src/parts.graphql", `fragment Parts on User {
  id
}
`)
	writeTestFile(t, fsys, "src/page.ts", "const query = gql`\n"+
		"  #import \"./parts.graphql\"\n"+
		"  query Page {\n"+
		"    user {\n"+
		"      ...Parts\n"+
		"    }\n"+
		"  }\n"+
		"`;\n")

	docs, err := NewCollector(fsys).Collect([]string{"src/*.ts"})
	require.NoError(t, err)

	assert.Empty(t, docs.Warnings)
	assert.NotNil(t, docs.Operation("Page"))
	assert.NotNil(t, docs.Fragment("Parts"))
}

func writeTestFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}
