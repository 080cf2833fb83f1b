package xmlcheck

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

type node struct {
	name     string
	text     strings.Builder
	children []*node
}

func (n *node) value() string {
	return strings.TrimSpace(n.text.String())
}

func (n *node) childrenNamed(name string) []*node {
	var out []*node
	for _, child := range n.children {
		if child.name == name {
			out = append(out, child)
		}
	}
	return out
}

var errEmptyDocument = errors.New("document is empty")

// parse reads the whole document into a tree. Any syntax error, a second root
// element or character data outside the root is reported as an error.
func parse(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var root *node
	var stack []*node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements (%s after %s)", n.name, root.name)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, errors.New("character data outside the root element")
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		}
	}
	if root == nil {
		return nil, errEmptyDocument
	}
	return root, nil
}

type match struct {
	node  *node
	field string
}

// find returns every node at the dotted path below root (the first segment
// names the root). A segment gets an index, Name[i], only when its parent
// holds more than one child of that name. A repeatable element that occurs
// once is reported without an index, so callers must not assume one.
func find(root *node, path string) []match {
	segments := strings.Split(path, ".")
	if root == nil || len(segments) == 0 || root.name != segments[0] {
		return nil
	}
	current := []match{{node: root, field: root.name}}
	for _, segment := range segments[1:] {
		var next []match
		for _, m := range current {
			kids := m.node.childrenNamed(segment)
			for i, kid := range kids {
				field := m.field + "." + segment
				if len(kids) > 1 {
					field = fmt.Sprintf("%s[%d]", field, i)
				}
				next = append(next, match{node: kid, field: field})
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}
