package svggrid

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tilegrid/svgtile/svgdoc"
)

const sheet = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"
  viewBox="0 0 10 10" preserveAspectRatio="xMidYMid meet">
  <defs><linearGradient id="lg"/></defs>
  <g id="layer1"><path id="p1" d="M0 0h10v10z" fill="url(#lg)"/></g>
</svg>`

func parseDoc(t *testing.T, src string) *svgdoc.Document {
	t.Helper()
	doc, err := svgdoc.Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// cells returns the g children of a tiled root, skipping the defs.
func cells(root *svgdoc.Element) []*svgdoc.Element {
	var gs []*svgdoc.Element
	for _, child := range root.Children {
		if child.Tag == "g" {
			gs = append(gs, child)
		}
	}
	return gs
}

func TestBuildGridLayout(t *testing.T) {
	doc := parseDoc(t, sheet)
	tiled, err := BuildGrid(doc, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	root := tiled.Root
	for _, attr := range [][2]string{
		{"xmlns", "http://www.w3.org/2000/svg"},
		{"version", "1.1"},
		{"width", "30"},
		{"height", "20"},
		{"viewBox", "0 0 30 20"},
		{"preserveAspectRatio", "xMidYMid meet"},
	} {
		if got := root.AttrVal(attr[0]); got != attr[1] {
			t.Errorf("%s = %q, want %q", attr[0], got, attr[1])
		}
	}

	gs := cells(root)
	if len(gs) != 6 {
		t.Fatalf("%d cells, want 6", len(gs))
	}
	// row-major placement in cell size steps
	wantPlacement := []string{
		"translate(0,0)", "translate(10,0)", "translate(20,0)",
		"translate(0,10)", "translate(10,10)", "translate(20,10)",
	}
	for i, g := range gs {
		if got := g.AttrVal("transform"); got != wantPlacement[i] {
			t.Errorf("cell %d transform = %q, want %q", i, got, wantPlacement[i])
		}
	}
	if gs[5].AttrVal("data-row") != "1" || gs[5].AttrVal("data-col") != "2" {
		t.Errorf("last cell tagged (%s,%s)", gs[5].AttrVal("data-row"), gs[5].AttrVal("data-col"))
	}

	// every cell carries the same normalizing group around a body copy
	for i, g := range gs {
		if len(g.Children) != 1 || g.Children[0].Tag != "g" {
			t.Fatalf("cell %d children: %v", i, g.Children)
		}
		inner := g.Children[0]
		if got := inner.AttrVal("transform"); got != "translate(0,0) scale(1,1)" {
			t.Errorf("cell %d normalize = %q", i, got)
		}
		if len(inner.Children) != 1 || inner.Children[0].AttrVal("id") != "layer1" {
			t.Errorf("cell %d content: %v", i, inner.Children)
		}
	}
}

func TestBuildGridHoistsDefsOnce(t *testing.T) {
	doc := parseDoc(t, sheet)
	tiled, err := BuildGrid(doc, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	var defs []*svgdoc.Element
	for _, child := range tiled.Root.Children {
		if child.Tag == "defs" {
			defs = append(defs, child)
		}
	}
	if len(defs) != 1 {
		t.Fatalf("%d defs elements, want 1", len(defs))
	}
	if len(defs[0].Children) != 1 || defs[0].Children[0].AttrVal("id") != "lg" {
		t.Errorf("defs content: %v", defs[0].Children)
	}
	// no cell re-embeds the defs
	for i, g := range cells(tiled.Root) {
		if len(g.Children[0].Children) != 1 {
			t.Errorf("cell %d content: %v", i, g.Children[0].Children)
		}
	}
}

func TestBuildGridCopiesAreIndependent(t *testing.T) {
	doc := parseDoc(t, sheet)
	tiled, err := BuildGrid(doc, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	gs := cells(tiled.Root)
	before := gs[1].DeepCopy()

	gs[0].Children[0].Children[0].Children[0].SetAttr("fill", "red")
	if diff := cmp.Diff(before, gs[1]); diff != "" {
		t.Errorf("editing one tile reached its sibling:\n%s", diff)
	}
	if got := doc.Root.Children[1].Children[0].AttrVal("fill"); got != "url(#lg)" {
		t.Errorf("editing a tile reached the source document: fill = %q", got)
	}
}

func TestBuildGridNormalizesViewBox(t *testing.T) {
	doc := parseDoc(t, `<svg width="20" height="30" viewBox="5 -5 10 10"><path d="M5 -5h10"/></svg>`)
	tiled, err := BuildGrid(doc, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	inner := cells(tiled.Root)[0].Children[0]
	if got := inner.AttrVal("transform"); got != "translate(-5,5) scale(2,3)" {
		t.Errorf("normalize = %q", got)
	}
	if got := tiled.Root.AttrVal("viewBox"); got != "0 0 20 30" {
		t.Errorf("viewBox = %q", got)
	}
}

func TestBuildGridWithoutSizeAttrs(t *testing.T) {
	// cell size falls back to the view box
	doc := parseDoc(t, `<svg viewBox="0 0 8 4"><path d="M0 0h8"/></svg>`)
	tiled, err := BuildGrid(doc, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := tiled.Root.AttrVal("viewBox"); got != "0 0 16 4" {
		t.Errorf("viewBox = %q", got)
	}
	second := cells(tiled.Root)[1]
	if got := second.AttrVal("transform"); got != "translate(8,0)" {
		t.Errorf("second cell at %q", got)
	}
}

func TestBuildGridZeroViewBox(t *testing.T) {
	// a zero area view box cannot define a scale; copies stay unscaled
	doc := parseDoc(t, `<svg width="5" height="5" viewBox="0 0 0 0"><path d="M0 0h1"/></svg>`)
	tiled, err := BuildGrid(doc, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	inner := cells(tiled.Root)[0].Children[0]
	if got := inner.AttrVal("transform"); got != "translate(0,0) scale(1,1)" {
		t.Errorf("normalize = %q", got)
	}
}

func TestBuildGridRejectsEmptyGrid(t *testing.T) {
	doc := parseDoc(t, sheet)
	for _, dims := range [][2]int{{0, 3}, {2, 0}, {-1, 1}} {
		if _, err := BuildGrid(doc, dims[0], dims[1]); err == nil ||
			!strings.Contains(err.Error(), "at least 1x1") {
			t.Errorf("BuildGrid(%d,%d) = %v", dims[0], dims[1], err)
		}
	}
}
