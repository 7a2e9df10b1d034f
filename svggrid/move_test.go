package svggrid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tilegrid/svgtile/svgdoc"
)

// tiledSheet builds a 2x3 grid whose cells are told apart by a marker
// attribute stamped on each copy of the body path.
func tiledSheet(t *testing.T) *svgdoc.Element {
	t.Helper()
	doc := parseDoc(t, sheet)
	tiled, err := BuildGrid(doc, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range cells(tiled.Root) {
		g.Children[0].Children[0].SetAttr("data-marker", string(rune('a'+i)))
	}
	return tiled.Root
}

func marker(t *testing.T, root *svgdoc.Element, idx int) string {
	t.Helper()
	return cells(root)[idx].Children[0].Children[0].AttrVal("data-marker")
}

func TestMoveTile(t *testing.T) {
	root := tiledSheet(t)
	if err := MoveTile(root, 10, 0, 0, 1, 2); err != nil {
		t.Fatal(err)
	}
	// destination now shows the source content; the source keeps its own
	if got := marker(t, root, 5); got != "a" {
		t.Errorf("destination marker %q, want %q", got, "a")
	}
	if got := marker(t, root, 0); got != "a" {
		t.Errorf("source marker %q, want %q", got, "a")
	}
	// the destination placement transform survives the swap
	if got := cells(root)[5].AttrVal("transform"); got != "translate(20,10)" {
		t.Errorf("destination transform = %q", got)
	}
}

func TestMoveTileCopiesDeeply(t *testing.T) {
	root := tiledSheet(t)
	if err := MoveTile(root, 10, 0, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	// editing the moved copy must not reach the source cell
	cells(root)[1].Children[0].Children[0].SetAttr("data-marker", "edited")
	if got := marker(t, root, 0); got != "a" {
		t.Errorf("source marker %q after editing the copy", got)
	}
}

func TestMoveTileNotFound(t *testing.T) {
	root := tiledSheet(t)
	before := root.DeepCopy()
	for _, coords := range [][4]int{
		{5, 5, 0, 0}, // source outside the grid
		{0, 0, 5, 5}, // destination outside the grid
		{2, 0, 0, 0},
		{0, 3, 0, 0},
	} {
		err := MoveTile(root, 10, coords[0], coords[1], coords[2], coords[3])
		if !errors.Is(err, ErrTileNotFound) {
			t.Errorf("MoveTile(%v) = %v, want ErrTileNotFound", coords, err)
		}
	}
	if diff := cmp.Diff(before, root); diff != "" {
		t.Errorf("failed moves changed the document:\n%s", diff)
	}
}

func TestMoveTileOntoItself(t *testing.T) {
	root := tiledSheet(t)
	before := root.DeepCopy()
	if err := MoveTile(root, 10, 1, 1, 1, 1); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, root); diff != "" {
		t.Errorf("no-op move changed the document:\n%s", diff)
	}
}

func TestMoveTileTranslateFallback(t *testing.T) {
	// cells without coordinate tags are located through their translate
	root := &svgdoc.Element{Tag: "svg"}
	for _, tf := range []struct {
		transform string
		mark      string
	}{
		{"translate(0,0)", "origin"},
		{"translate(10,20)", "far"},
	} {
		cell := &svgdoc.Element{Tag: "g"}
		cell.SetAttr("transform", tf.transform)
		inner := &svgdoc.Element{Tag: "g"}
		inner.Children = []*svgdoc.Element{{Tag: "path", Attr: []svgdoc.Attr{
			{Name: "d", Value: "M0 0h1"}, {Name: "data-marker", Value: tf.mark},
		}}}
		cell.Children = []*svgdoc.Element{inner}
		root.Children = append(root.Children, cell)
	}
	// translate(10,20) with cell size 10 decodes to row 2, col 1
	if err := MoveTile(root, 10, 2, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	got := root.Children[0].Children[0].Children[0].AttrVal("data-marker")
	if got != "far" {
		t.Errorf("marker %q, want %q", got, "far")
	}
}

func TestMoveTileFallbackNeedsGridSize(t *testing.T) {
	root := &svgdoc.Element{Tag: "svg"}
	cell := &svgdoc.Element{Tag: "g"}
	cell.SetAttr("transform", "translate(0,0)")
	cell.Children = []*svgdoc.Element{{Tag: "g"}}
	root.Children = []*svgdoc.Element{cell}
	err := MoveTile(root, 0, 0, 0, 1, 1)
	if !errors.Is(err, ErrTileNotFound) {
		t.Errorf("zero grid size located a cell: %v", err)
	}
}

func TestMoveTileWithoutContentGroup(t *testing.T) {
	root := tiledSheet(t)
	// strip the destination's inner group
	cells(root)[3].Children = nil
	err := MoveTile(root, 10, 0, 0, 1, 0)
	if !errors.Is(err, ErrTileNotFound) {
		t.Errorf("got %v, want ErrTileNotFound", err)
	}
}
