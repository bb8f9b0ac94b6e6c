package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContentTypes(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.html", "text/html"},
		{"style.css", "text/css"},
		{"app.js", "application/javascript"},
		{"data.json", "application/json"},
		{"b.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"icon.svg", "image/svg+xml"},
		{"favicon.ico", "image/x-icon"},
		{"pic.webp", "image/webp"},
		{"notes.txt", "text/plain"},
		{"README.md", "text/markdown"},
		{"feed.xml", "application/xml"},
		{"report.pdf", "application/pdf"},
		{"bundle.zip", "application/zip"},
		{"font.woff", "font/woff"},
		{"font.woff2", "font/woff2"},
		{"font.ttf", "font/ttf"},
		{"font.eot", "application/vnd.ms-fontobject"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path).ContentType)
		})
	}
}

func TestResolveUnknownExtension(t *testing.T) {
	md := Resolve("archive.tar.gz")
	assert.Empty(t, md.ContentType)
	assert.Equal(t, DefaultStorageClass, md.StorageClass)
}

func TestResolveCaseInsensitiveExtension(t *testing.T) {
	assert.Equal(t, "image/png", Resolve("LOGO.PNG").ContentType)
}

func TestResolveIndexHTMLNeverCached(t *testing.T) {
	md := Resolve("site/index.html")
	assert.Equal(t, "no-cache", md.CacheControl)
	assert.Equal(t, "text/html", md.ContentType)

	// Only the exact name gets the directive.
	assert.Empty(t, Resolve("site/not-index.html").CacheControl)
}

func TestResolveStorageClassAlwaysSet(t *testing.T) {
	for _, path := range []string{"a.html", "b.unknown", "index.html", "noext"} {
		assert.Equal(t, DefaultStorageClass, Resolve(path).StorageClass)
	}
}
