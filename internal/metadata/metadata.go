// Package metadata resolves per-file transfer metadata from file names.
package metadata

import (
	"path/filepath"
	"strings"
)

// DefaultStorageClass is the tier every object is uploaded with.
const DefaultStorageClass = "STANDARD"

// noCache is applied to entry points that must never be served stale.
const noCache = "no-cache"

// Metadata describes the transfer headers for one upload. Empty string
// fields are left unset on the request.
type Metadata struct {
	ContentType  string
	CacheControl string
	StorageClass string
}

// contentTypes maps known file extensions to their MIME types. Unmapped
// extensions leave ContentType unset and the server decides.
var contentTypes = map[string]string{
	".html":  "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".webp":  "image/webp",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".xml":   "application/xml",
	".pdf":   "application/pdf",
	".zip":   "application/zip",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".eot":   "application/vnd.ms-fontobject",
}

// Resolve derives the metadata for a local file. Pure function of the file
// name; no I/O.
func Resolve(localPath string) Metadata {
	md := Metadata{StorageClass: DefaultStorageClass}

	ext := strings.ToLower(filepath.Ext(localPath))
	if ct, ok := contentTypes[ext]; ok {
		md.ContentType = ct
	}

	if filepath.Base(localPath) == "index.html" {
		md.CacheControl = noCache
	}

	return md
}
