package catalog

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_source.go -package=mockcatalog -source=source.go

// Format is the encoding of a stored document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Resource is the raw bytes of one document as read from a Source
type Resource struct {
	Key    Key
	Format Format
	// Location is where the bytes came from, for error messages
	Location string
	Data     []byte
}

// Source reads raw documents. Get returns a not_found error when the
// document does not exist.
type Source interface {
	Get(ctx context.Context, key Key) (*Resource, error)
}

// Lister enumerates every document a source holds
type Lister interface {
	List(ctx context.Context) ([]Key, error)
}

// Writer stores decoded documents
type Writer interface {
	Put(ctx context.Context, key Key, doc *Node) error
}

// Decode parses the resource according to its format
func (r *Resource) Decode() (*Node, error) {
	switch r.Format {
	case FormatYAML:
		return ParseYAML(r.Data)
	default:
		return ParseJSON(r.Data)
	}
}
