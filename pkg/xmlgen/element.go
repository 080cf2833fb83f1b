package xmlgen

import "strings"

// Attr is one element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the generated tree. Children keep their order.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates an element with children.
func NewElement(name string, children ...*Element) *Element {
	e := &Element{Name: name}
	e.Append(children...)
	return e
}

// Leaf creates a text-only element.
func Leaf(name, text string) *Element {
	return &Element{Name: name, Text: text}
}

// Append adds non-nil children in order.
func (e *Element) Append(children ...*Element) *Element {
	for _, child := range children {
		if child != nil {
			e.Children = append(e.Children, child)
		}
	}
	return e
}

// Child returns the first direct child called name.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ChildrenNamed returns every direct child called name.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, child := range e.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

// Find follows a dotted path of child names below e, taking the first match
// at each level.
func (e *Element) Find(path string) *Element {
	current := e
	for _, name := range strings.Split(path, ".") {
		current = current.Child(name)
		if current == nil {
			return nil
		}
	}
	return current
}

// Empty reports whether the element has no text, attributes or children.
func (e *Element) Empty() bool {
	return strings.TrimSpace(e.Text) == "" && len(e.Attrs) == 0 && len(e.Children) == 0
}

// Optimize removes structurally empty descendants, bottom-up. The receiver is
// kept even if it ends up empty.
func (e *Element) Optimize() *Element {
	if e == nil {
		return nil
	}
	kept := e.Children[:0]
	for _, child := range e.Children {
		child.Optimize()
		if child.Empty() {
			continue
		}
		kept = append(kept, child)
	}
	for i := len(kept); i < len(e.Children); i++ {
		e.Children[i] = nil
	}
	e.Children = kept
	return e
}
