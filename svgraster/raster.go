// Implements a raster backend rendering documents to PNG,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/tilegrid/svgtile/svgdoc"
	"github.com/tilegrid/svgtile/svgpath"
)

// Options tunes the raster output.
type Options struct {
	// FitGeometry makes the canvas hug the drawn geometry with a small
	// margin instead of covering the declared view box.
	FitGeometry bool
	// MaxSize bounds the longest image side in pixels. Zero means 900.
	MaxSize int
}

const (
	defaultMaxSize = 900
	fitMargin      = 0.05 // fraction added around tight geometry windows
	miterLimit     = 4
)

type paintedPath struct {
	path  svgpath.Path
	style svgdoc.Style
}

// Render rasterizes every drawable path of the document onto a white
// canvas and returns the image. Geometry arrives here already expressed
// in final coordinates, so the canvas maps the view window directly,
// top-left origin and Y growing downward like the source document.
func Render(doc *svgdoc.Document, opts Options) (*image.RGBA, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}

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

	window := viewBoxRect(doc)
	if opts.FitGeometry && haveGeom {
		window = padded(geom)
	}
	w := window.MaxX - window.MinX
	h := window.MaxY - window.MinY
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("degenerate render window %s x %s", svgdoc.Ftoa(w), svgdoc.Ftoa(h))
	}
	scale := float64(maxSize) / math.Max(w, h)
	wpx := int(math.Round(w * scale))
	hpx := int(math.Round(h * scale))
	if wpx < 1 {
		wpx = 1
	}
	if hpx < 1 {
		hpx = 1
	}
	device := svgdoc.Identity.Scale(scale, scale).Translate(-window.MinX, -window.MinY)

	img := image.NewRGBA(image.Rect(0, 0, wpx, hpx))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(wpx, hpx, img, img.Bounds())
	filler := rasterx.NewFiller(wpx, hpx, scanner)
	filler.SetWinding(true)
	dasher := rasterx.NewDasher(wpx, hpx, scanner)

	for i, pp := range painted {
		fill, err := ParseColor(pp.style.Fill)
		if err != nil {
			return nil, fmt.Errorf("path %d fill: %w", i, err)
		}
		stroke, err := ParseColor(pp.style.Stroke)
		if err != nil {
			return nil, fmt.Errorf("path %d stroke: %w", i, err)
		}
		dp := pp.path.Transform(device)
		if fill != nil {
			filler.Clear()
			filler.SetColor(rasterx.ApplyOpacity(fill, pp.style.FillOpacity))
			dp.AddTo(filler)
			filler.Draw()
		}
		if stroke != nil && pp.style.LineWidth() > 0 {
			dasher.Clear()
			dasher.SetStroke(fixed.Int26_6(pp.style.LineWidth()*scale*64),
				fixed.Int26_6(miterLimit*64), rasterx.ButtCap, rasterx.ButtCap,
				rasterx.FlatGap, rasterx.Miter, nil, 0)
			dasher.SetColor(rasterx.ApplyOpacity(stroke, pp.style.StrokeOpacity))
			dp.AddTo(dasher)
			dasher.Draw()
		}
	}
	return img, nil
}

// RenderToPNG renders the document and writes the image to outPath,
// creating parent directories as needed.
func RenderToPNG(doc *svgdoc.Document, outPath string, opts Options) error {
	img, err := Render(doc, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	fout, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(fout, img); err != nil {
		fout.Close()
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}
	return fout.Close()
}

// viewBoxRect is the declared coordinate window of the document.
func viewBoxRect(doc *svgdoc.Document) svgpath.Rect {
	vb := svgdoc.ParseViewBox(doc.Root)
	return svgpath.Rect{MinX: vb.MinX, MinY: vb.MinY, MaxX: vb.MinX + vb.W, MaxY: vb.MinY + vb.H}
}

// padded grows a tight geometry box by the fit margin, padding a
// collapsed axis by one unit so the window keeps area.
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
