// Package svgdoc models a sub-set of SVG as a generic element tree, with the
// transform algebra, style resolution and path traversal needed to inspect,
// render and retile sprite documents.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

const svgNamespace = "http://www.w3.org/2000/svg"

var errNoSVG = errors.New("no svg element in document")

// Read parses an SVG document from stream into an element tree. Foreign
// elements and attributes keep their prefixed names; comments, processing
// instructions and whitespace-only text are dropped.
func Read(stream io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *Element
		stack []*Element
	)
	// Prefixes seen on xmlns declarations, keyed by namespace URI, used to
	// restore the source spelling of qualified names.
	prefixes := map[string]string{"http://www.w3.org/XML/1998/namespace": "xml"}
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			for _, a := range se.Attr {
				if a.Name.Space == "xmlns" {
					prefixes[a.Value] = a.Name.Local
				}
			}
			el := &Element{Tag: elementTag(se.Name, prefixes)}
			if len(se.Attr) > 0 {
				el.Attr = make([]Attr, len(se.Attr))
				for i, a := range se.Attr {
					el.Attr[i] = Attr{Name: attrName(a.Name, prefixes), Value: a.Value}
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 {
				break
			}
			if text := strings.TrimSpace(string(se)); text != "" {
				top := stack[len(stack)-1]
				if top.Text != "" {
					top.Text += " "
				}
				top.Text += text
			}
		}
	}
	if root == nil {
		return nil, errNoSVG
	}
	if root.Tag != "svg" {
		return nil, fmt.Errorf("root element is <%s>, not <svg>", root.Tag)
	}
	return &Document{Root: root}, nil
}

// ReadFile parses the named SVG file.
func ReadFile(path string) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	doc, err := Read(fin)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc.File = path
	return doc, nil
}

// elementTag names an element the way structural code wants to see it:
// bare local names for SVG elements, prefixed names for foreign ones.
func elementTag(n xml.Name, prefixes map[string]string) string {
	if n.Space == "" || n.Space == svgNamespace {
		return n.Local
	}
	if p, ok := prefixes[n.Space]; ok && p != "" {
		return p + ":" + n.Local
	}
	return n.Space + ":" + n.Local
}

func attrName(n xml.Name, prefixes map[string]string) string {
	if n.Space == "" {
		return n.Local
	}
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	if p, ok := prefixes[n.Space]; ok && p != "" {
		return p + ":" + n.Local
	}
	return n.Space + ":" + n.Local
}
