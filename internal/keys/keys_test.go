package keys

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		localPath string
		want      string
	}{
		{
			name:      "empty prefix keeps file name",
			prefix:    "",
			localPath: "report.pdf",
			want:      "report.pdf",
		},
		{
			name:      "root prefix keeps file name",
			prefix:    "/",
			localPath: "/tmp/report.pdf",
			want:      "report.pdf",
		},
		{
			name:      "trailing slash appends file name",
			prefix:    "/docs/",
			localPath: "report.pdf",
			want:      "docs/report.pdf",
		},
		{
			name:      "bare prefix is a rename",
			prefix:    "/docs/renamed.pdf",
			localPath: "report.pdf",
			want:      "docs/renamed.pdf",
		},
		{
			name:      "backslashes normalized",
			prefix:    "docs\\sub\\",
			localPath: "report.pdf",
			want:      "docs/sub/report.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForFile(tt.prefix, tt.localPath))
		})
	}
}

func TestForTreeFileContentsOnly(t *testing.T) {
	root := filepath.Join("var", "site")
	path := filepath.Join(root, "css", "main.css")

	key, err := ForTreeFile("/site", root, path, ContentsOnly)
	require.NoError(t, err)
	assert.Equal(t, "site/css/main.css", key)
}

func TestForTreeFileWholeTree(t *testing.T) {
	root := "dist"
	path := filepath.Join(root, "js", "app.js")

	key, err := ForTreeFile("/v1.0.0", root, path, WholeTree)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0/dist/js/app.js", key)
}

func TestForTreeFileEmptyPrefix(t *testing.T) {
	key, err := ForTreeFile("/", "src", filepath.Join("src", "a.html"), ContentsOnly)
	require.NoError(t, err)
	assert.Equal(t, "a.html", key)
}

func TestForTreeFileDeterministic(t *testing.T) {
	root := "dist"
	path := filepath.Join(root, "img", "logo.png")

	first, err := ForTreeFile("/assets", root, path, WholeTree)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ForTreeFile("/assets", root, path, WholeTree)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestKeysNeverAbsolute(t *testing.T) {
	assert.Equal(t, "a.txt", ForFile("///", "a.txt"))

	key, err := ForTreeFile("////nested", "d", filepath.Join("d", "f"), ContentsOnly)
	require.NoError(t, err)
	assert.Equal(t, "nested/f", key)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "contents-only", ContentsOnly.String())
	assert.Equal(t, "whole-tree", WholeTree.String())
}
