package catalog

import (
	"strings"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
)

// Document names within a domain path
const (
	DocumentCatalog = "catalog"
	DocumentNames   = "names"
)

// Key addresses one document: <domain>/<path...>/<name>
type Key struct {
	Domain string
	Path   []string
	Name   string
}

// CatalogKey is the key of the catalog document for domain and path
func CatalogKey(domain string, path ...string) Key {
	return Key{Domain: domain, Path: path, Name: DocumentCatalog}
}

// NamesKey is the key of the name-generation document for domain and path
func NamesKey(domain string, path ...string) Key {
	return Key{Domain: domain, Path: path, Name: DocumentNames}
}

// ParseKey reads a key written as "domain/path.../name". A trailing segment
// that is not a known document name is treated as part of the path of a
// catalog document.
func ParseKey(s string) (Key, error) {
	s = strings.Trim(s, "/")
	if s == "" {
		return Key{}, rcerr.InvalidArgument("document key is required")
	}
	segments := strings.Split(s, "/")
	key := Key{Domain: segments[0], Path: segments[1:], Name: DocumentCatalog}
	if n := len(key.Path); n > 0 {
		switch key.Path[n-1] {
		case DocumentCatalog, DocumentNames:
			key.Name = key.Path[n-1]
			key.Path = key.Path[:n-1]
		}
	}
	if len(key.Path) == 0 {
		key.Path = nil
	}
	return key, key.Validate()
}

// DocumentName returns Name, defaulting to the catalog document
func (k Key) DocumentName() string {
	if k.Name == "" {
		return DocumentCatalog
	}
	return k.Name
}

// String renders the key as "domain/path.../name"
func (k Key) String() string {
	parts := make([]string, 0, len(k.Path)+2)
	parts = append(parts, k.Domain)
	parts = append(parts, k.Path...)
	parts = append(parts, k.DocumentName())
	return strings.Join(parts, "/")
}

// Validate rejects empty segments and anything that could escape the content
// root
func (k Key) Validate() error {
	if err := validSegment(k.Domain); err != nil {
		return rcerr.Wrapf(err, "invalid domain in %s", k)
	}
	for _, p := range k.Path {
		if err := validSegment(p); err != nil {
			return rcerr.Wrapf(err, "invalid path in %s", k)
		}
	}
	if err := validSegment(k.DocumentName()); err != nil {
		return rcerr.Wrapf(err, "invalid document name in %s", k)
	}
	return nil
}

func validSegment(s string) error {
	switch {
	case s == "":
		return rcerr.InvalidArgument("empty segment")
	case s == "." || s == "..":
		return rcerr.InvalidArgumentf("segment %q is not allowed", s)
	case strings.ContainsAny(s, `/\:`):
		return rcerr.InvalidArgumentf("segment %q contains a separator", s)
	}
	return nil
}
