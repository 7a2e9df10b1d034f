package svggrid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tilegrid/svgtile/svgdoc"
)

// ErrTileNotFound reports a grid coordinate that maps to no cell.
var ErrTileNotFound = errors.New("tile not found")

// MoveTile copies the content of cell (srcRow, srcCol) into cell
// (dstRow, dstCol), replacing what was there. Cells are the g children of
// root carrying data-row and data-col attributes; a cell without them is
// located by decoding its translate offset, dividing by gridSize. The
// destination keeps its own placement transform. Moving a cell onto
// itself does nothing. The document is left untouched when either
// coordinate resolves to no cell.
func MoveTile(root *svgdoc.Element, gridSize float64, srcRow, srcCol, dstRow, dstCol int) error {
	if srcRow == dstRow && srcCol == dstCol {
		return nil
	}
	var src, dst *svgdoc.Element
	for _, child := range root.Children {
		if child.Tag != "g" {
			continue
		}
		row, col, ok := cellCoord(child, gridSize)
		if !ok {
			continue
		}
		if row == srcRow && col == srcCol {
			src = child
		}
		if row == dstRow && col == dstCol {
			dst = child
		}
	}
	if src == nil {
		return fmt.Errorf("source cell (%d,%d): %w", srcRow, srcCol, ErrTileNotFound)
	}
	if dst == nil {
		return fmt.Errorf("destination cell (%d,%d): %w", dstRow, dstCol, ErrTileNotFound)
	}
	srcInner := innerGroup(src)
	if srcInner == nil {
		return fmt.Errorf("source cell (%d,%d) has no content group: %w", srcRow, srcCol, ErrTileNotFound)
	}
	dstInner := innerGroup(dst)
	if dstInner == nil {
		return fmt.Errorf("destination cell (%d,%d) has no content group: %w", dstRow, dstCol, ErrTileNotFound)
	}
	copied := make([]*svgdoc.Element, len(srcInner.Children))
	for i, child := range srcInner.Children {
		copied[i] = child.DeepCopy()
	}
	dstInner.Children = copied
	return nil
}

// cellCoord resolves the grid coordinate of a cell group. The data-row
// and data-col attributes win; without them the placement translate is
// decoded, which needs a positive gridSize.
func cellCoord(g *svgdoc.Element, gridSize float64) (row, col int, ok bool) {
	rowAttr, okRow := g.Lookup("data-row")
	colAttr, okCol := g.Lookup("data-col")
	if okRow && okCol {
		r, errRow := strconv.Atoi(strings.TrimSpace(rowAttr))
		c, errCol := strconv.Atoi(strings.TrimSpace(colAttr))
		if errRow == nil && errCol == nil {
			return r, c, true
		}
	}
	if gridSize <= 0 {
		return 0, 0, false
	}
	tf, okTf := g.Lookup("transform")
	if !okTf {
		return 0, 0, false
	}
	m := svgdoc.ParseTransform(tf)
	return int(math.Round(m.F / gridSize)), int(math.Round(m.E / gridSize)), true
}

// innerGroup returns the first nested g of a cell, holding its content.
func innerGroup(cell *svgdoc.Element) *svgdoc.Element {
	for _, child := range cell.Children {
		if child.Tag == "g" {
			return child
		}
	}
	return nil
}
