// Package keys derives remote object keys from local paths.
package keys

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode controls whether the source directory's own name becomes a path
// segment in remote keys.
type Mode int

const (
	// ContentsOnly uploads the directory's contents under the destination
	// prefix, like `cp -r src/* dst`.
	ContentsOnly Mode = iota
	// WholeTree keeps the source directory name as a key segment, like
	// `cp -r src dst`.
	WholeTree
)

func (m Mode) String() string {
	if m == WholeTree {
		return "whole-tree"
	}
	return "contents-only"
}

// ForFile maps a single-file upload to its remote key. An empty prefix or a
// prefix ending in "/" acts as a directory and the file keeps its name;
// anything else is used verbatim as the full key, i.e. a rename.
func ForFile(prefix, localPath string) string {
	name := filepath.Base(localPath)

	var key string
	switch {
	case prefix == "":
		key = name
	case strings.HasSuffix(prefix, "/"):
		key = prefix + name
	default:
		key = prefix
	}

	return normalize(key)
}

// ForTreeFile maps a file found during a directory walk to its remote key.
// The file's path relative to root (ContentsOnly) or to root's parent
// (WholeTree) is appended to the prefix.
func ForTreeFile(prefix, root, localPath string, mode Mode) (string, error) {
	rel, err := filepath.Rel(root, localPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", localPath, root, err)
	}

	if mode == WholeTree {
		rel = filepath.Join(filepath.Base(root), rel)
	}

	return normalize(strings.TrimRight(prefix, "/") + "/" + rel), nil
}

// normalize converts backslash separators to forward slashes and strips any
// leading slash; remote keys are never absolute.
func normalize(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	return strings.TrimLeft(key, "/")
}
