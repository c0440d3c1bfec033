package document

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/graphql-ts-codegen/pkg/sourcecache"
)

func TestCollectorCollect(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/queries/user.graphql", []byte(`
query GetUser {
  user { id }
}

fragment UserParts on User {
  email
}
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "src/components/App.tsx", []byte(
		"const postQuery = gql`query GetPost { post { id } }`;\n"+
			"const ordinary = `select * from posts`;\n",
	), 0o644))

	collector := NewCollector(fs)
	docs, err := collector.Collect([]string{"src/**/*.graphql", "src/**/*.tsx"})
	require.NoError(t, err)

	require.Len(t, docs.Operations(), 2)
	require.Len(t, docs.Fragments(), 1)
	assert.Empty(t, docs.Warnings)

	// Files are visited in sorted order, App.tsx before user.graphql.
	assert.Equal(t, "GetPost", docs.Operations()[0].Name)
	assert.Equal(t, "GetUser", docs.Operations()[1].Name)
	assert.Equal(t, ast.Query, docs.Operations()[0].Type)
	assert.Equal(t, "UserParts", docs.Fragments()[0].Name)
	assert.Equal(t, "User", docs.Fragments()[0].TypeCondition)

	assert.Equal(t, "query GetPost { post { id } }", docs.Operation("GetPost").Text)
	assert.Equal(t, "query GetUser {\n  user { id }\n}", docs.Operation("GetUser").Text)
	assert.Equal(t, "fragment UserParts on User {\n  email\n}", docs.Fragment("UserParts").Text)
	assert.Equal(t, "src/queries/user.graphql", docs.Operation("GetUser").Path)
}

func TestCollectorDuplicateWarnings(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.graphql", []byte("query GetUser { a }"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "b.graphql", []byte("query GetUser { b }"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "c.graphql", []byte("fragment F on User { a }"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "d.graphql", []byte("fragment F on User { b }"), 0o644))

	collector := NewCollector(fs)
	docs, err := collector.Collect([]string{"*.graphql"})
	require.NoError(t, err)

	require.Len(t, docs.Operations(), 1)
	require.Len(t, docs.Fragments(), 1)
	assert.Equal(t, []string{
		"Duplicate operation 'GetUser' (skipped)",
		"Duplicate fragment 'F' (skipped)",
	}, docs.Warnings)

	// First definition wins.
	assert.Equal(t, "a.graphql", docs.Operation("GetUser").Path)
	assert.Equal(t, "c.graphql", docs.Fragment("F").Path)
}

func TestCollectorSubstitutionIsWarning(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/broken.ts", []byte(
		"const q = gql`query Broken { user { ...${parts} } }`;\n"+
			"const ok = gql`query Ok { user { id } }`;\n",
	), 0o644))

	collector := NewCollector(fs)
	docs, err := collector.Collect([]string{"src/**/*.ts"})
	require.NoError(t, err)

	require.Len(t, docs.Operations(), 1)
	assert.Equal(t, "Ok", docs.Operations()[0].Name)
	assert.Equal(t, []string{"Template substitution in 'src/broken.ts' line 1 (skipped)"}, docs.Warnings)
}

func TestCollectorParseFailureIsWarning(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "broken.graphql", []byte("query Broken {{"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "ok.graphql", []byte("query Ok { user { id } }"), 0o644))

	collector := NewCollector(fs)
	docs, err := collector.Collect([]string{"*.graphql"})
	require.NoError(t, err)

	require.Len(t, docs.Operations(), 1)
	assert.Equal(t, "Ok", docs.Operations()[0].Name)
	require.Len(t, docs.Warnings, 1)
	assert.Contains(t, docs.Warnings[0], "Failed to parse document in 'broken.graphql'")
}

func TestCollectorAnonymousOperationIsWarning(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "anon.graphql", []byte("{ user { id } }"), 0o644))

	collector := NewCollector(fs)
	docs, err := collector.Collect([]string{"*.graphql"})
	require.NoError(t, err)

	assert.Empty(t, docs.Operations())
	assert.Equal(t, []string{"Anonymous operation in 'anon.graphql' (skipped)"}, docs.Warnings)
}

func TestCollectorSourceUnknownExtension(t *testing.T) {
	docs := NewDocuments()
	collector := NewCollector(afero.NewMemMapFs())

	collector.CollectSource(docs, "README.md", "gql`query Q { a }`")
	assert.Zero(t, docs.Len())
}

func TestCollectorWithSourceCache(t *testing.T) {
	cache, err := sourcecache.New(sourcecache.DefaultSize)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "q.graphql", []byte("query Q { a }"), 0o644))

	collector := NewCollector(fs, WithSourceCache(cache))
	docs, err := collector.Collect([]string{"*.graphql"})
	require.NoError(t, err)

	require.Len(t, docs.Operations(), 1)
	assert.Equal(t, 1, cache.Len(), "collected documents populate the cache")
}
