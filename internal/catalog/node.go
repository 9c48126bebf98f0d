// Package catalog loads and caches the hierarchical content documents that
// references point into.
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind is the JSON type of a Node
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Node is one value of a catalog document. Nodes are never modified after
// decoding, so they can be shared between goroutines. Object keys keep the
// order they were written in.
type Node struct {
	kind    Kind
	boolean bool
	// text holds string values and numbers as written
	text   string
	items  []*Node
	keys   []string
	fields map[string]*Node
}

// Kind returns the node's type; a nil node is null
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// IsNull reports whether the node is missing or JSON null
func (n *Node) IsNull() bool {
	return n.Kind() == KindNull
}

// Get returns the field named key, or nil when the node is not an object or
// has no such field
func (n *Node) Get(key string) *Node {
	if n.Kind() != KindObject {
		return nil
	}
	return n.fields[key]
}

// GetFold is Get with case-insensitive key matching. An exact match wins.
func (n *Node) GetFold(key string) *Node {
	if n.Kind() != KindObject {
		return nil
	}
	if v, ok := n.fields[key]; ok {
		return v
	}
	for _, k := range n.keys {
		if strings.EqualFold(k, key) {
			return n.fields[k]
		}
	}
	return nil
}

// Has reports whether an object node declares key
func (n *Node) Has(key string) bool {
	if n.Kind() != KindObject {
		return false
	}
	_, ok := n.fields[key]
	return ok
}

// Keys returns the object's keys in document order
func (n *Node) Keys() []string {
	if n.Kind() != KindObject {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Items returns the array's elements
func (n *Node) Items() []*Node {
	if n.Kind() != KindArray {
		return nil
	}
	return append([]*Node(nil), n.items...)
}

// Len is the number of array elements or object fields
func (n *Node) Len() int {
	switch n.Kind() {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.keys)
	default:
		return 0
	}
}

// Str returns the value of a string node
func (n *Node) Str() (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}
	return n.text, true
}

// Float returns the value of a number node
func (n *Node) Float() (float64, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the value of a number node written as an integer
func (n *Node) Int() (int64, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(n.text, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Bool returns the value of a bool node
func (n *Node) Bool() (bool, bool) {
	if n.Kind() != KindBool {
		return false, false
	}
	return n.boolean, true
}

// Text renders the node for use in generated text. Strings come back
// verbatim, numbers as written, objects by their name or slug field, and
// anything else as compact JSON.
func (n *Node) Text() string {
	switch n.Kind() {
	case KindNull:
		return ""
	case KindString, KindNumber:
		return n.text
	case KindBool:
		return strconv.FormatBool(n.boolean)
	case KindObject:
		for _, field := range []string{"name", "slug"} {
			if s, ok := n.Get(field).Str(); ok {
				return s
			}
		}
	}
	data, err := n.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// Interface converts the node to plain Go values: map[string]any, []any,
// string, float64, bool or nil
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindBool:
		return n.boolean
	case KindNumber:
		f, _ := n.Float()
		return f
	case KindString:
		return n.text
	case KindArray:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			out[k] = n.fields[k].Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the node with object keys in document order
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	switch n.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.boolean))
	case KindNumber:
		buf.WriteString(n.text)
	case KindString:
		data, err := json.Marshal(n.text)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			if err := n.fields[k].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
