package document

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"src/**/*.ts", "src/queries/user.ts", true},
		{"src/**/*.ts", "src/user.ts", true},
		{"src/**/*.ts", "lib/user.ts", false},
		{"src/**/*.ts", "src/queries/user.tsx", false},
		{"**/*.graphql", "a/b/c/d.graphql", true},
		{"**/*.graphql", "d.graphql", true},
		{"src/*.ts", "src/a/b.ts", false},
		{"src/?.ts", "src/a.ts", true},
		{"src/?.ts", "src/ab.ts", false},
		{"src/index.ts", "src/index.ts", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.path))
		})
	}
}

func TestGlobSetNegation(t *testing.T) {
	set, err := CompileGlobs([]string{"src/**/*.ts", "!src/**/*.test.ts"})
	require.NoError(t, err)

	assert.True(t, set.Matches("src/queries/user.ts"))
	assert.False(t, set.Matches("src/queries/user.test.ts"))
}

func TestCompileGlobsRequiresPositivePattern(t *testing.T) {
	_, err := CompileGlobs([]string{"!src/**"})
	assert.Error(t, err)

	_, err = CompileGlobs(nil)
	assert.Error(t, err)
}

func TestGlobSetRoots(t *testing.T) {
	set, err := CompileGlobs([]string{"src/queries/**/*.graphql", "src/queries/extra.graphql", "**/*.ts"})
	require.NoError(t, err)

	assert.Equal(t, []string{".", "src/queries"}, set.Roots())
}

func TestFindFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := []string{
		"src/queries/user.graphql",
		"src/queries/post.graphql",
		"src/queries/user.test.graphql",
		"src/node_modules/pkg/dep.graphql",
		"src/.hidden/secret.graphql",
		"src/readme.md",
	}
	for _, file := range files {
		require.NoError(t, afero.WriteFile(fs, file, []byte("query Q { a }"), 0o644))
	}

	found, err := FindFiles(fs, []string{"src/**/*.graphql", "!**/*.test.graphql"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/queries/post.graphql",
		"src/queries/user.graphql",
	}, found)
}

func TestFindFilesMissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()

	found, err := FindFiles(fs, []string{"missing/**/*.graphql"})
	require.NoError(t, err)
	assert.Empty(t, found)
}
