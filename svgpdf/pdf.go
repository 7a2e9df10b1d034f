// Implements a PDF backend rendering documents to a vector page,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/tilegrid/svgtile/svgdoc"
	"github.com/tilegrid/svgtile/svgpath"
	"github.com/tilegrid/svgtile/svgraster"
)

// Options tunes the page layout.
type Options struct {
	// FitGeometry sizes the page on the drawn geometry with a small
	// margin instead of covering the declared view box.
	FitGeometry bool
}

const fitMargin = 0.05

// pather replays path commands onto a pdf page. rasterx hands out
// fixed point coordinates, the pdf wants floats back.
type pather struct {
	pdf *gofpdf.Fpdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b, c, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

type paintedPath struct {
	path  svgpath.Path
	style svgdoc.Style
}

// Render lays every drawable path of the document onto a single pdf
// page, one document unit per point. The page keeps the document's top
// left origin, matching the raster backend.
func Render(doc *svgdoc.Document, opts Options) (*gofpdf.Fpdf, error) {
	var painted []paintedPath
	var geom svgpath.Rect
	haveGeom := false
	for i, ref := range svgdoc.CollectPaths(doc.Root) {
		p, err := svgpath.CompilePath(ref.Node.AttrVal("d"))
		if err != nil {
			return nil, fmt.Errorf("compiling path %d: %w", i, err)
		}
		p = p.Transform(ref.M)
		if r, ok := p.Extents(); ok {
			if haveGeom {
				geom = geom.Union(r)
			} else {
				geom, haveGeom = r, true
			}
		}
		painted = append(painted, paintedPath{path: p, style: svgdoc.ResolveStyle(ref.Node)})
	}

	vb := svgdoc.ParseViewBox(doc.Root)
	window := svgpath.Rect{MinX: vb.MinX, MinY: vb.MinY, MaxX: vb.MinX + vb.W, MaxY: vb.MinY + vb.H}
	if opts.FitGeometry && haveGeom {
		window = padded(geom)
	}
	w := window.MaxX - window.MinX
	h := window.MaxY - window.MinY
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("degenerate page %s x %s", svgdoc.Ftoa(w), svgdoc.Ftoa(h))
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.AddPage()
	pdf.SetLineCapStyle("butt")
	pdf.SetLineJoinStyle("miter")

	device := svgdoc.Identity.Translate(-window.MinX, -window.MinY)
	p := pather{pdf: pdf}
	for i, pp := range painted {
		fill, err := svgraster.ParseColor(pp.style.Fill)
		if err != nil {
			return nil, fmt.Errorf("path %d fill: %w", i, err)
		}
		stroke, err := svgraster.ParseColor(pp.style.Stroke)
		if err != nil {
			return nil, fmt.Errorf("path %d stroke: %w", i, err)
		}
		dp := pp.path.Transform(device)
		if fill != nil {
			c := color.NRGBAModel.Convert(fill).(color.NRGBA)
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			pdf.SetAlpha(pp.style.FillOpacity*float64(c.A)/255, "")
			dp.AddTo(p)
			pdf.DrawPath("f")
		}
		if stroke != nil && pp.style.LineWidth() > 0 {
			c := color.NRGBAModel.Convert(stroke).(color.NRGBA)
			pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
			pdf.SetLineWidth(pp.style.LineWidth())
			pdf.SetAlpha(pp.style.StrokeOpacity*float64(c.A)/255, "")
			dp.AddTo(p)
			pdf.DrawPath("D")
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}
	return pdf, nil
}

// RenderToPDF renders the document and writes the page to outPath,
// creating parent directories as needed.
func RenderToPDF(doc *svgdoc.Document, outPath string, opts Options) error {
	pdf, err := Render(doc, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

// padded grows a tight geometry box by the fit margin, padding a
// collapsed axis by one unit so the page keeps area.
func padded(r svgpath.Rect) svgpath.Rect {
	padX := (r.MaxX - r.MinX) * fitMargin
	if padX == 0 {
		padX = 1
	}
	padY := (r.MaxY - r.MinY) * fitMargin
	if padY == 0 {
		padY = 1
	}
	return svgpath.Rect{MinX: r.MinX - padX, MinY: r.MinY - padY, MaxX: r.MaxX + padX, MaxY: r.MaxY + padY}
}
