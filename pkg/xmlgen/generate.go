package xmlgen

import (
	"bytes"
	"io"

	"github.com/goliatone/go-offergen/pkg/offer"
)

// Generate builds and encodes doc. Identical input always yields identical
// bytes.
func Generate(doc *offer.Document, options ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := GenerateTo(&buf, doc, options...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateTo builds doc and streams the encoding to w. Nothing is written
// when building fails.
func GenerateTo(w io.Writer, doc *offer.Document, options ...Option) error {
	opts := collect(options)
	root, err := Build(doc)
	if err != nil {
		return err
	}
	return Encode(w, prepare(root, opts), opts)
}

func prepare(root *Element, opts Options) *Element {
	if opts.Optimize {
		root.Optimize()
	}
	if opts.SchemaLocation != "" {
		root.Attrs = append(root.Attrs,
			Attr{Name: "xmlns:xsi", Value: xsiNamespace},
			Attr{Name: "xsi:noNamespaceSchemaLocation", Value: opts.SchemaLocation},
		)
	}
	return root
}
