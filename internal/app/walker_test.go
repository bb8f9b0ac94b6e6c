package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dzqdzq/bucketup/internal/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func buildSiteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.html"), 10)
	writeFile(t, filepath.Join(dir, "img", "b.png"), 20)
	writeFile(t, filepath.Join(dir, ".DS_Store"), 5)
	writeFile(t, filepath.Join(dir, ".env"), 3)
	return dir
}

func taskKeys(plan *Plan) []string {
	var ks []string
	for _, task := range plan.Tasks {
		ks = append(ks, task.RemoteKey)
	}
	return ks
}

func TestPlanDirectoryContentsOnly(t *testing.T) {
	dir := buildSiteDir(t)

	plan, err := planDirectory(dir, "/site", keys.ContentsOnly)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"site/a.html", "site/img/b.png", "site/.env"}, taskKeys(plan))
	assert.Len(t, plan.Excluded, 1)
	assert.Contains(t, plan.Excluded[0], ".DS_Store")
	assert.Len(t, plan.Warned, 1)
	assert.Contains(t, plan.Warned[0], ".env")
}

func TestPlanDirectoryWholeTree(t *testing.T) {
	dir := buildSiteDir(t)
	base := filepath.Base(dir)

	plan, err := planDirectory(dir, "/v1.0.0", keys.WholeTree)
	require.NoError(t, err)

	assert.Contains(t, taskKeys(plan), "v1.0.0/"+base+"/a.html")
	assert.Contains(t, taskKeys(plan), "v1.0.0/"+base+"/img/b.png")
}

func TestPlanDirectoryEmpty(t *testing.T) {
	plan, err := planDirectory(t.TempDir(), "/site", keys.ContentsOnly)
	require.NoError(t, err)
	assert.Empty(t, plan.Tasks)
	assert.Empty(t, plan.Excluded)
}

func TestPlanDirectoryEveryFileExactlyOnce(t *testing.T) {
	dir := buildSiteDir(t)

	plan, err := planDirectory(dir, "/p", keys.ContentsOnly)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, task := range plan.Tasks {
		seen[task.RemoteKey]++
	}
	for key, n := range seen {
		assert.Equalf(t, 1, n, "key %s planned %d times", key, n)
	}
	assert.Len(t, seen, 3)
}

func TestPlanFile(t *testing.T) {
	plan := planFile("report.pdf", "/docs/", 42)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "docs/report.pdf", plan.Tasks[0].RemoteKey)
	assert.Equal(t, int64(42), plan.Tasks[0].Size)
}

func TestPlanFileExcluded(t *testing.T) {
	plan := planFile(filepath.Join("dir", ".DS_Store"), "/", 5)
	assert.Empty(t, plan.Tasks)
	assert.Len(t, plan.Excluded, 1)
}

func TestPlanFileDotfileWarned(t *testing.T) {
	plan := planFile(".htaccess", "/site/", 5)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "site/.htaccess", plan.Tasks[0].RemoteKey)
	assert.Len(t, plan.Warned, 1)
}
