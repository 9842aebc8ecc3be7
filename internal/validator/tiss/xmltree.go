package tiss

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Kind discriminates the three shapes a decoded XML node can take.
type Kind int

const (
	KindText Kind = iota
	KindMap
	KindList
)

// textKey holds an element's own text when it also has children or attributes.
const textKey = "_"

// Node is a generic decoded XML tree. A map node keeps its keys in document
// order. Sibling elements sharing a tag collapse into a list node; a tag that
// occurs once is never wrapped in a list.
type Node struct {
	Kind  Kind
	Text  string
	Items []*Node

	keys   []string
	fields map[string]*Node
}

func newMapNode() *Node {
	return &Node{Kind: KindMap, fields: make(map[string]*Node)}
}

func (n *Node) set(key string, child *Node) {
	existing, ok := n.fields[key]
	if !ok {
		n.keys = append(n.keys, key)
		n.fields[key] = child
		return
	}
	if existing.Kind == KindList {
		existing.Items = append(existing.Items, child)
		return
	}
	n.fields[key] = &Node{Kind: KindList, Items: []*Node{existing, child}}
}

// Keys returns the map keys in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindMap {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Get returns the child under key. A list node delegates to its first item.
func (n *Node) Get(key string) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindMap:
		return n.fields[key]
	case KindList:
		if len(n.Items) == 0 {
			return nil
		}
		return n.Items[0].Get(key)
	default:
		return nil
	}
}

// Lookup walks a key path from n.
func (n *Node) Lookup(path ...string) *Node {
	cur := n
	for _, key := range path {
		cur = cur.Get(key)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Value returns the scalar text carried by the node.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindText:
		return n.Text
	case KindMap:
		return n.fields[textKey].Value()
	case KindList:
		if len(n.Items) == 0 {
			return ""
		}
		return n.Items[0].Value()
	}
	return ""
}

// IsEmpty reports whether the node carries nothing at all.
func (n *Node) IsEmpty() bool {
	if n == nil {
		return true
	}
	switch n.Kind {
	case KindMap:
		return len(n.keys) == 0
	case KindList:
		return len(n.Items) == 0
	default:
		return n.Text == ""
	}
}

type frame struct {
	name string
	node *Node
	text strings.Builder
}

func (f *frame) mapNode() *Node {
	if f.node == nil {
		f.node = newMapNode()
	}
	return f.node
}

func (f *frame) finish() *Node {
	text := strings.TrimSpace(f.text.String())
	if f.node == nil {
		return &Node{Kind: KindText, Text: text}
	}
	if text != "" {
		f.node.set(textKey, &Node{Kind: KindText, Text: text})
	}
	return f.node
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Decode parses well-formed XML of any shape into a Node tree. The returned
// top-level map holds a single key: the root element's local name. Empty or
// whitespace-only input yields an empty map and no error.
func Decode(data []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	top := newMapNode()
	var stack []*frame
	seenRoot := false

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && seenRoot {
				return nil, syntaxError(d, "multiple root elements")
			}
			f := &frame{name: t.Name.Local}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				f.mapNode().set("@"+attr.Name.Local, &Node{Kind: KindText, Text: strings.TrimSpace(attr.Value)})
			}
			stack = append(stack, f)
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, syntaxError(d, "text content outside the root element")
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := f.finish()
			if len(stack) == 0 {
				top.set(f.name, node)
				seenRoot = true
				continue
			}
			stack[len(stack)-1].mapNode().set(f.name, node)
		}
	}

	if len(stack) > 0 {
		return nil, syntaxError(d, "unexpected end of document")
	}
	return top, nil
}

func syntaxError(d *xml.Decoder, msg string) error {
	line, _ := d.InputPos()
	return &xml.SyntaxError{Msg: msg, Line: line}
}
