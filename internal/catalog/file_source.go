package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
)

var extensions = []struct {
	ext    string
	format Format
}{
	{".json", FormatJSON},
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
}

// FileSource reads documents from a content root directory
type FileSource struct {
	root string
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{root: dir}
}

// Root returns the content root directory
func (s *FileSource) Root() string {
	return s.root
}

// candidates lists the files a key may live in, in lookup order.
// A catalog document may also be written as <domain>/<path...>.<ext>.
func (s *FileSource) candidates(key Key) []string {
	base := filepath.Join(append([]string{s.root, key.Domain}, key.Path...)...)
	stems := []string{filepath.Join(base, key.DocumentName())}
	if key.DocumentName() == DocumentCatalog {
		stems = append(stems, base)
	}

	var paths []string
	for _, stem := range stems {
		for _, e := range extensions {
			paths = append(paths, stem+e.ext)
		}
	}
	return paths
}

// Get implements Source.Get
func (s *FileSource) Get(ctx context.Context, key Key) (*Resource, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, path := range s.candidates(key) {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, rcerr.Wrapf(err, "failed to read %s", path)
		}
		return &Resource{
			Key:      key,
			Format:   formatOf(path),
			Location: path,
			Data:     data,
		}, nil
	}

	return nil, rcerr.NotFoundf("document %s not found under %s", key, s.root)
}

// List implements Lister.List by walking the content root
func (s *FileSource) List(ctx context.Context) ([]Key, error) {
	seen := make(map[string]Key)
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || formatOf(path) == "" {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key, ok := keyFromFile(rel)
		if !ok {
			return nil
		}
		if _, dup := seen[key.String()]; !dup {
			seen[key.String()] = key
		}
		return nil
	})
	if err != nil {
		return nil, rcerr.Wrapf(err, "failed to list %s", s.root)
	}

	keys := make([]Key, 0, len(seen))
	for _, k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys, nil
}

// keyFromFile maps a path relative to the content root back to a key
func keyFromFile(rel string) (Key, bool) {
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	segments := strings.Split(filepath.ToSlash(stem), "/")

	key := Key{Domain: segments[0], Name: DocumentCatalog}
	rest := segments[1:]
	if n := len(rest); n > 0 {
		switch rest[n-1] {
		case DocumentCatalog, DocumentNames:
			key.Name = rest[n-1]
			rest = rest[:n-1]
		}
	}
	if len(rest) > 0 {
		key.Path = rest
	}
	return key, key.Validate() == nil
}

func formatOf(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format
		}
	}
	return ""
}

// DirWriter writes documents as JSON files under a directory, in the layout
// FileSource reads
type DirWriter struct {
	root string
}

// NewDirWriter creates a writer rooted at dir
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{root: dir}
}

// Put implements Writer.Put
func (w *DirWriter) Put(ctx context.Context, key Key, doc *Node) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return rcerr.Wrapf(err, "failed to encode %s", key)
	}

	dir := filepath.Join(append([]string{w.root, key.Domain}, key.Path...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rcerr.Wrapf(err, "failed to create %s", dir)
	}
	path := filepath.Join(dir, key.DocumentName()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rcerr.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
