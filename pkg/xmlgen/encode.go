package xmlgen

import (
	"bufio"
	"io"
	"strings"

	"github.com/goliatone/go-offergen/pkg/format"
)

// Declaration is written before the root element.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

const defaultIndent = "  "

// Encode writes the declaration and the tree rooted at root. Unless minified,
// elements are indented with two spaces per level and separated by newlines.
func Encode(w io.Writer, root *Element, opts Options) error {
	bw := bufio.NewWriter(w)
	enc := encoder{w: bw, minify: opts.Minify, indent: defaultIndent}
	enc.writeString(Declaration)
	if !enc.minify {
		enc.writeString("\n")
	}
	if root != nil {
		enc.element(root, 0)
	}
	if enc.err != nil {
		return enc.err
	}
	return bw.Flush()
}

type encoder struct {
	w      *bufio.Writer
	minify bool
	indent string
	err    error
}

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) element(el *Element, depth int) {
	pad := ""
	if !e.minify {
		pad = strings.Repeat(e.indent, depth)
	}
	e.writeString(pad)
	e.writeString("<")
	e.writeString(el.Name)
	for _, attr := range el.Attrs {
		e.writeString(" ")
		e.writeString(attr.Name)
		e.writeString(`="`)
		e.writeString(format.EscapeText(attr.Value))
		e.writeString(`"`)
	}

	switch {
	case len(el.Children) > 0:
		e.writeString(">")
		e.newline()
		for _, child := range el.Children {
			e.element(child, depth+1)
		}
		e.writeString(pad)
		e.closeTag(el.Name)
	case el.Text != "":
		e.writeString(">")
		e.writeString(format.EscapeText(el.Text))
		e.closeTag(el.Name)
	default:
		e.writeString("/>")
	}
	e.newline()
}

func (e *encoder) closeTag(name string) {
	e.writeString("</")
	e.writeString(name)
	e.writeString(">")
}

func (e *encoder) newline() {
	if !e.minify {
		e.writeString("\n")
	}
}
