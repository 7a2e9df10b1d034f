package svgdoc

// Attr is one XML attribute. Name keeps the prefixed form found in the
// source ("xlink:href", "inkscape:label"), so lookups use the same spelling
// an author would write.
type Attr struct {
	Name, Value string
}

// Element is one node of a parsed SVG document. Tag keeps namespace
// prefixes for foreign elements ("sodipodi:namedview") but is the bare local
// name for SVG elements, so structural code can match "g" and "path"
// directly.
type Element struct {
	Tag      string
	Attr     []Attr
	Text     string
	Children []*Element
}

// Document binds a parsed tree to the file it came from.
type Document struct {
	Root *Element
	File string
}

// Lookup returns the value of the named attribute and whether it is present.
func (e *Element) Lookup(name string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrVal returns the value of the named attribute, or "" when absent.
func (e *Element) AttrVal(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// SetAttr sets the named attribute, replacing an existing value or
// appending a new attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attr {
		if a.Name == name {
			e.Attr[i].Value = value
			return
		}
	}
	e.Attr = append(e.Attr, Attr{Name: name, Value: value})
}

// DeepCopy returns a fully independent copy of the subtree rooted at e:
// mutating the copy never touches the original.
func (e *Element) DeepCopy() *Element {
	c := &Element{Tag: e.Tag, Text: e.Text}
	if len(e.Attr) > 0 {
		c.Attr = append([]Attr(nil), e.Attr...)
	}
	if len(e.Children) > 0 {
		c.Children = make([]*Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.DeepCopy()
		}
	}
	return c
}
