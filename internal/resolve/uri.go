package resolve

import (
	"path"
	"strings"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// CanonicalURI returns the URI a document is identified by: scheme
// qualified, with "." and ".." segments removed. Local files have an
// empty host ("file:///dir/a.cml").
func CanonicalURI(location string) string {
	u := url.Normalize(location, file.Scheme)

	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return u
	}

	host, p, _ := strings.Cut(rest, "/")
	if scheme == file.Scheme && host == "localhost" {
		host = ""
	}

	return scheme + "://" + host + path.Clean("/"+p)
}

// ImportURI resolves an import of the document at base.
func ImportURI(base, imp string) string {
	if !url.IsRelative(imp) {
		return CanonicalURI(imp)
	}

	parent, _ := url.Split(base, file.Scheme)

	return CanonicalURI(url.Join(parent, imp))
}
