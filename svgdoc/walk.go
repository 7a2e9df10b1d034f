package svgdoc

// PathRef is one drawable path found by a traversal: the element itself,
// the labels of the groups above it (root to parent, unlabeled groups
// omitted), and the transform accumulated from the root down to and
// including the path's own transform attribute.
type PathRef struct {
	Node  *Element
	Trail []string
	M     Matrix2D
}

// WalkPaths walks the tree under root depth-first in document order and
// calls fn for each drawable path. Only g and path elements take part:
// anything else is neither yielded nor descended into, so defs content
// never reaches fn. Paths without a d attribute are skipped. The traversal
// is a pure function of the tree and can be repeated; the trail passed to
// fn is a copy, safe to retain.
func WalkPaths(root *Element, fn func(PathRef)) {
	walkPaths(root, nil, Identity, fn)
}

func walkPaths(el *Element, trail []string, m Matrix2D, fn func(PathRef)) {
	for _, child := range el.Children {
		switch child.Tag {
		case "g":
			cm := m.Mult(ParseTransform(child.AttrVal("transform")))
			next := trail
			if label := groupLabel(child); label != "" {
				next = append(trail[:len(trail):len(trail)], label)
			}
			walkPaths(child, next, cm, fn)
		case "path":
			if child.AttrVal("d") == "" {
				continue
			}
			fn(PathRef{
				Node:  child,
				Trail: append([]string(nil), trail...),
				M:     m.Mult(ParseTransform(child.AttrVal("transform"))),
			})
		}
	}
}

// CollectPaths materializes a traversal into a slice.
func CollectPaths(root *Element) []PathRef {
	var refs []PathRef
	WalkPaths(root, func(p PathRef) {
		refs = append(refs, p)
	})
	return refs
}

// groupLabel is the reporting name of a group: the Inkscape layer label
// when present, else the id, else empty.
func groupLabel(g *Element) string {
	if label := g.AttrVal("inkscape:label"); label != "" {
		return label
	}
	return g.AttrVal("id")
}
