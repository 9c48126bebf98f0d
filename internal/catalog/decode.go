package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON document into a Node, keeping object key order
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case nil:
		return &Node{kind: KindNull}, nil
	case bool:
		return &Node{kind: KindBool, boolean: v}, nil
	case json.Number:
		return &Node{kind: KindNumber, text: v.String()}, nil
	case string:
		return &Node{kind: KindString, text: v}, nil
	case json.Delim:
		switch v {
		case '[':
			node := &Node{kind: KindArray}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.items = append(node.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '{':
			node := &Node{kind: KindObject, fields: make(map[string]*Node)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not a string", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				node.set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// maxYAMLNodes caps the size of a YAML document once its aliases are
// expanded
const maxYAMLNodes = 1 << 20

// ParseYAML decodes a YAML document into a Node, keeping mapping key order.
// Aliases share the anchored node; documents that would expand past
// maxYAMLNodes are rejected.
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return &Node{kind: KindNull}, nil
	}
	d := &yamlDecoder{anchors: make(map[*yaml.Node]yamlValue)}
	node, _, err := d.decode(&doc)
	return node, err
}

type yamlValue struct {
	node *Node
	size int
}

// yamlDecoder converts yaml nodes, tracking the expanded node count
type yamlDecoder struct {
	anchors  map[*yaml.Node]yamlValue
	expanded int
}

func (d *yamlDecoder) grow(n int, line int) error {
	d.expanded += n
	if d.expanded > maxYAMLNodes {
		return fmt.Errorf("line %d: document expands to more than %d values", line, maxYAMLNodes)
	}
	return nil
}

// decode returns the node and its expanded size
func (d *yamlDecoder) decode(y *yaml.Node) (*Node, int, error) {
	if y.Kind == yaml.AliasNode {
		if v, ok := d.anchors[y.Alias]; ok {
			if err := d.grow(v.size, y.Line); err != nil {
				return nil, 0, err
			}
			return v.node, v.size, nil
		}
		return d.decode(y.Alias)
	}

	node, size, err := d.decodeValue(y)
	if err != nil {
		return nil, 0, err
	}
	if y.Anchor != "" {
		d.anchors[y] = yamlValue{node: node, size: size}
	}
	return node, size, nil
}

func (d *yamlDecoder) decodeValue(y *yaml.Node) (*Node, int, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &Node{kind: KindNull}, 1, nil
		}
		return d.decode(y.Content[0])
	case yaml.SequenceNode:
		node := &Node{kind: KindArray}
		size := 1
		if err := d.grow(1, y.Line); err != nil {
			return nil, 0, err
		}
		for _, c := range y.Content {
			item, n, err := d.decode(c)
			if err != nil {
				return nil, 0, err
			}
			node.items = append(node.items, item)
			size += n
		}
		return node, size, nil
	case yaml.MappingNode:
		node := &Node{kind: KindObject, fields: make(map[string]*Node)}
		size := 1
		if err := d.grow(1, y.Line); err != nil {
			return nil, 0, err
		}
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode, valueNode := y.Content[i], y.Content[i+1]
			if keyNode.Tag == "!!merge" {
				return nil, 0, fmt.Errorf("line %d: merge keys are not supported", keyNode.Line)
			}
			value, n, err := d.decode(valueNode)
			if err != nil {
				return nil, 0, err
			}
			node.set(keyNode.Value, value)
			size += n
		}
		return node, size, nil
	case yaml.ScalarNode:
		if err := d.grow(1, y.Line); err != nil {
			return nil, 0, err
		}
		node, err := fromYAMLScalar(y)
		return node, 1, err
	}
	return nil, 0, fmt.Errorf("line %d: unsupported yaml node kind %d", y.Line, y.Kind)
}

func fromYAMLScalar(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return &Node{kind: KindNull}, nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, err
		}
		return &Node{kind: KindBool, boolean: b}, nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err != nil {
			return nil, err
		}
		return &Node{kind: KindNumber, text: strconv.FormatInt(i, 10)}, nil
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: %s is not representable in a catalog", y.Line, y.Value)
		}
		return &Node{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}, nil
	default:
		return &Node{kind: KindString, text: y.Value}, nil
	}
}

// FromValue builds a Node from plain Go values as produced by
// encoding/json or yaml: maps, slices, strings, numbers, bools and nil.
// Map keys are sorted because Go maps carry no order.
func FromValue(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return &Node{kind: KindNull}, nil
	case *Node:
		return t, nil
	case bool:
		return &Node{kind: KindBool, boolean: t}, nil
	case string:
		return &Node{kind: KindString, text: t}, nil
	case int:
		return &Node{kind: KindNumber, text: strconv.Itoa(t)}, nil
	case int64:
		return &Node{kind: KindNumber, text: strconv.FormatInt(t, 10)}, nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, fmt.Errorf("%v is not representable in a catalog", t)
		}
		return &Node{kind: KindNumber, text: strconv.FormatFloat(t, 'f', -1, 64)}, nil
	case json.Number:
		return &Node{kind: KindNumber, text: t.String()}, nil
	case []string:
		node := &Node{kind: KindArray}
		for _, s := range t {
			node.items = append(node.items, &Node{kind: KindString, text: s})
		}
		return node, nil
	case []any:
		node := &Node{kind: KindArray}
		for _, item := range t {
			child, err := FromValue(item)
			if err != nil {
				return nil, err
			}
			node.items = append(node.items, child)
		}
		return node, nil
	case []map[string]any:
		node := &Node{kind: KindArray}
		for _, item := range t {
			child, err := FromValue(item)
			if err != nil {
				return nil, err
			}
			node.items = append(node.items, child)
		}
		return node, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		node := &Node{kind: KindObject, fields: make(map[string]*Node, len(t))}
		for _, k := range keys {
			child, err := FromValue(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			node.set(k, child)
		}
		return node, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// Object builds an object node from alternating key/value pairs, keeping the
// given order. Values go through FromValue.
func Object(pairs ...any) (*Node, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("object needs key/value pairs, got %d values", len(pairs))
	}
	node := &Node{kind: KindObject, fields: make(map[string]*Node, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is %T, not a string", pairs[i], pairs[i])
		}
		value, err := FromValue(pairs[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		node.set(key, value)
	}
	return node, nil
}

// set adds or replaces a field during construction. A repeated key keeps its
// first position and the last value.
func (n *Node) set(key string, value *Node) {
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
}
